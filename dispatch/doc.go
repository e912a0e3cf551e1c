// Package dispatch implements the bridge's dispatch core: the single place
// where inbound page calls enter the native side.
//
// # Call Path
//
// An inbound message is a flat map carrying at least "functionName" plus
// caller keyword arguments, arriving on a channel named after the target
// module:
//
//	{"functionName": "setBrightness", "level": 0.5}
//
// The core extracts the function name, converts the remaining keys to
// bridge values, builds the per-invocation CallContext (frame URL, computed
// security origin, top-frame flag), consults the policy gate, and executes
// through the registry on a fresh goroutine. The outcome is marshaled into
// the Reply pair.
//
// # Reply Contract
//
// Exactly one of (value, error) is populated per invocation, never both,
// except for the "nothing" reply where both are absent. Nothing
// covers: malformed payloads, unknown modules and functions, and
// policy-denied calls. A native reply channel expects exactly one fire, so
// even garbage input settles the contract instead of leaving the page-side
// promise unresolved.
//
// # Concurrency
//
// HandleMessage is re-entrant; concurrent calls share nothing and observe no
// ordering. There is no cancellation: a handler runs to completion even if
// its surface is destroyed mid-call, and the reply is simply discarded when
// the reply channel is gone.
package dispatch
