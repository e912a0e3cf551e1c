package webnativebridge

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// SurfaceID is the stable identifier of one page surface. The event
// manager's registration table is keyed by it, so it must stay valid after
// the surface itself is destroyed.
type SurfaceID string

// NewSurfaceID returns a fresh random surface identifier.
func NewSurfaceID() SurfaceID {
	return SurfaceID(uuid.NewString())
}

func (id SurfaceID) String() string { return string(id) }

// Surface is one live page rendering surface the bridge can talk to.
//
// Implementations must tolerate use after destruction: EvaluateScript on a
// destroyed surface returns an error of kind surface_gone, which callers
// treat as a no-op, never a fault.
type Surface interface {
	ID() SurfaceID
	Info() SurfaceInfo
	EvaluateScript(ctx context.Context, script string) error
}

// SurfaceInfo describes the page currently loaded in a surface.
type SurfaceInfo struct {
	// URL is the main-frame document URL.
	URL string
	// Origin is the main-frame security origin.
	Origin Origin
}

// Origin is a security origin: scheme, host, and port. Default ports are
// normalized away so "https://app.example.com" and
// "https://app.example.com:443" compare equal.
type Origin struct {
	Scheme string
	Host   string
	Port   string
}

// ParseOrigin computes the security origin of a URL. Opaque and unparsable
// URLs yield the zero Origin, which matches nothing.
func ParseOrigin(rawURL string) Origin {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return Origin{}
	}
	o := Origin{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(u.Hostname()),
		Port:   u.Port(),
	}
	switch {
	case o.Scheme == "http" && o.Port == "80":
		o.Port = ""
	case o.Scheme == "https" && o.Port == "443":
		o.Port = ""
	}
	return o
}

// IsZero reports whether the origin is the opaque/unparsable origin.
func (o Origin) IsZero() bool {
	return o.Scheme == "" && o.Host == "" && o.Port == ""
}

// Equal reports same-origin. The zero origin never equals anything,
// including itself: an opaque origin is not a grant.
func (o Origin) Equal(other Origin) bool {
	if o.IsZero() || other.IsZero() {
		return false
	}
	return o.Scheme == other.Scheme && o.Host == other.Host && o.Port == other.Port
}

func (o Origin) String() string {
	if o.IsZero() {
		return "null"
	}
	s := o.Scheme + "://" + o.Host
	if o.Port != "" {
		s += ":" + o.Port
	}
	return s
}
