package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Is and As re-export the standard library helpers so callers
// need only one errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Phase indicates where in the bridge pipeline the error occurred
type Phase string

const (
	PhaseRegistry Phase = "registry" // function/module registration and lookup
	PhaseDispatch Phase = "dispatch" // inbound call parsing and routing
	PhaseHandler  Phase = "handler"  // capability handler execution
	PhaseEncode   Phase = "encode"   // Go to script value conversion
	PhaseDecode   Phase = "decode"   // script to Go value conversion
	PhaseScript   Phase = "script"   // glue generation and script evaluation
	PhaseEvent    Phase = "event"    // event subscription and delivery
	PhasePolicy   Phase = "policy"   // bridge policy loading and checks
	PhaseStore    Phase = "store"    // secure storage operations
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch  Kind = "type_mismatch"
	KindInvalidData   Kind = "invalid_data"
	KindUnsupported   Kind = "unsupported"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindRegistration  Kind = "registration"
	KindMalformedCall Kind = "malformed_call"
	KindSurfaceGone   Kind = "surface_gone"
	KindEvaluation    Kind = "evaluation"
	KindStoreFailure  Kind = "store_failure"
	KindDenied        Kind = "denied"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	JSType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.JSType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.JSType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", JS type ")
			b.WriteString(e.JSType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("JS type ")
			b.WriteString(e.JSType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.JSType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// JSType sets the script-side type name
func (b *Builder) JSType(t string) *Builder {
	b.err.JSType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, jsType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		JSType: jsType,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Registration creates a registration error
func Registration(phase Phase, module, name string, cause error) *Error {
	detail := fmt.Sprintf("register %s.%s", module, name)
	if name == "" {
		detail = fmt.Sprintf("register %s", module)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: detail,
		Cause:  cause,
	}
}

// MalformedCall creates a malformed call error. The dispatch core never
// surfaces this to the page; it settles the reply as an empty result.
func MalformedCall(detail string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindMalformedCall,
		Detail: detail,
	}
}

// SurfaceGone creates an error for operations on a destroyed page surface
func SurfaceGone(phase Phase, surfaceID string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSurfaceGone,
		Detail: fmt.Sprintf("surface %s has been destroyed", surfaceID),
	}
}

// Evaluation wraps a script evaluation failure
func Evaluation(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseScript,
		Kind:   KindEvaluation,
		Detail: detail,
		Cause:  cause,
	}
}

// ItemNotFound creates a store miss error. The detail always contains
// "item not found"; page scripts match on that keychain-style message.
func ItemNotFound(service, account string) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("item not found for %s/%s", service, account),
	}
}

// StoreFailure wraps an underlying storage failure
func StoreFailure(op string, cause error) *Error {
	return &Error{
		Phase:  PhaseStore,
		Kind:   KindStoreFailure,
		Detail: op,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
