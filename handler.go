package webnativebridge

import (
	"context"

	"github.com/amosavian/WebNativeBridgeKit/value"
)

// Args is the keyword-argument map of one call. Keys are unique; order
// carries no meaning.
type Args map[ArgumentName]value.Value

// String returns the named argument as a string.
func (a Args) String(name ArgumentName) (string, bool) {
	v, ok := a[name]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Number returns the named argument as a number.
func (a Args) Number(name ArgumentName) (float64, bool) {
	v, ok := a[name]
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// Bool returns the named argument as a boolean.
func (a Args) Bool(name ArgumentName) (bool, bool) {
	v, ok := a[name]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// CallContext is the per-invocation, read-only metadata every handler
// receives alongside its arguments.
type CallContext struct {
	// Surface is the originating page surface. Nil when the surface has
	// been destroyed while the call was in flight.
	Surface Surface
	// URL is the requesting frame's document URL.
	URL string
	// Origin is the requesting frame's computed security origin.
	Origin Origin
	// PageOrigin is the surface's main-frame origin, captured at dispatch
	// time so it survives surface destruction.
	PageOrigin Origin
	// TopFrame reports whether the call originated from the main frame.
	TopFrame bool
}

// TopOriginMatches is the bridge's sole access-control primitive: it reports
// whether the calling frame's origin equals the main-frame origin.
// Security-sensitive handlers must check it before touching any credential
// store, and on mismatch return (nil, nil), the silent "nothing" reply,
// so refusal is indistinguishable from the feature being unsupported.
func (c *CallContext) TopOriginMatches() bool {
	return c.Origin.Equal(c.PageOrigin)
}

// HandlerFunc is the uniform shape of every native capability function,
// regardless of domain. A nil result with a nil error is the "nothing"
// outcome: the page promise resolves to null.
type HandlerFunc func(ctx context.Context, call *CallContext, args Args) (*value.Value, error)
