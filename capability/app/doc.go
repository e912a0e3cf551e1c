// Package app exposes application-level functions to pages: version
// lookup, external URL opening, and icon badge control for providers
// that implement BadgeController.
package app
