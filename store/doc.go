// Package store provides credential persistence for the biometrics and
// security bridge modules. SecureStore keys items by (service, account);
// the service is conventionally derived from the calling page's origin so
// pages cannot read each other's credentials.
//
// Two backends ship: Memory for tests and ephemeral embedders, and SQLite
// for durable storage. Missing items surface as an item-not-found error
// from the errors package rather than a nil secret, so callers can
// distinguish "no such credential" from an empty one.
package store
