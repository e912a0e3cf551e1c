// Package security gives pages origin-scoped secure key/value storage.
// Items are namespaced by the page's main-frame origin under a
// module-specific service prefix, and every function replies nothing to
// cross-origin frames.
package security
