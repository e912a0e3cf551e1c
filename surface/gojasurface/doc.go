// Package gojasurface implements a page surface on a goja JavaScript
// runtime driven by a goja_nodejs event loop. It is the reference
// in-process surface: module glue scripts install globalThis.<module>
// objects whose functions post through __bridgePost and return promises
// settled from the dispatch reply, and event delivery lands on a minimal
// window/CustomEvent shim.
package gojasurface
