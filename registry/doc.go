// Package registry implements the per-module function registry at the heart
// of the bridge's routing.
//
// A Registry holds ModuleName -> FunctionName -> handler. Three rules shape
// its API:
//
//   - Add never fails and may overwrite; it exists for incremental wiring.
//   - AddModule fails fast on a duplicate module name and leaves the
//     existing registration untouched: re-registering a module could
//     silently swap handlers out from under live pages.
//   - Execute treats a lookup miss as (nil, nil), not an error. An unknown
//     function is indistinguishable from one the platform does not support.
//
// All mutations and lookups pass through a single mutex, satisfying the
// bridge's single-coordination-point invariant. Handlers themselves run
// outside the lock and may block, suspend, or offload freely.
package registry
