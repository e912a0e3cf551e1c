// Package errors provides structured error types for the WebNativeBridgeKit library.
//
// Errors are categorized by Phase (where in the bridge pipeline the error
// occurred) and Kind (error category). The Error type includes rich context:
// field path, Go/JS type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("args", "level").
//		GoType("float64").
//		JSType("string").
//		Detail("cannot convert string to number").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseRegistry, "module", "device")
//	err := errors.ItemNotFound("credentials", "user1")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind agree, which is
// how callers distinguish, for example, a store miss from a store failure
// without parsing the message text.
package errors
