package module

import (
	"github.com/coreos/go-semver/semver"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/event"
	"github.com/amosavian/WebNativeBridgeKit/registry"
)

// Events maps a module's event publishers to their notification sources.
type Events map[bridge.EventName]event.Source

// Descriptor is one capability unit: a name, a fixed function map, a fixed
// event map, and a generated page glue script. Descriptors are constructed
// once, registered into exactly one registry, and never mutated afterwards.
type Descriptor struct {
	name       bridge.ModuleName
	functions  registry.Functions
	events     Events
	apiVersion *semver.Version
}

// Option configures a Descriptor at construction time.
type Option func(*Descriptor) error

// WithEvents declares the module's event publishers.
func WithEvents(events Events) Option {
	return func(d *Descriptor) error {
		d.events = make(Events, len(events))
		for name, src := range events {
			d.events[name] = src
		}
		return nil
	}
}

// WithAPIVersion stamps a semantic version into the generated glue so pages
// can gate on the script API they were written against.
func WithAPIVersion(version string) Option {
	return func(d *Descriptor) error {
		v, err := semver.NewVersion(version)
		if err != nil {
			return errors.New(errors.PhaseScript, errors.KindInvalidInput).
				Cause(err).
				Detail("invalid API version %q", version).
				Build()
		}
		d.apiVersion = v
		return nil
	}
}

// New creates a module descriptor. The name must be non-empty; the function
// map is copied and its names must be non-empty too.
func New(name bridge.ModuleName, funcs registry.Functions, opts ...Option) (*Descriptor, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegistry, "module name cannot be empty")
	}

	d := &Descriptor{
		name:      name,
		functions: make(registry.Functions, len(funcs)),
	}
	for fname, fn := range funcs {
		if fname == "" {
			return nil, errors.Registration(errors.PhaseRegistry, name.String(), "",
				errors.InvalidInput(errors.PhaseRegistry, "function name cannot be empty"))
		}
		d.functions[fname] = fn
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Name returns the module name, which doubles as its channel name.
func (d *Descriptor) Name() bridge.ModuleName { return d.name }

// Functions returns a copy of the function map.
func (d *Descriptor) Functions() registry.Functions {
	out := make(registry.Functions, len(d.functions))
	for name, fn := range d.functions {
		out[name] = fn
	}
	return out
}

// Events returns a copy of the event map.
func (d *Descriptor) Events() Events {
	out := make(Events, len(d.events))
	for name, src := range d.events {
		out[name] = src
	}
	return out
}

// APIVersion returns the declared glue API version, nil if none.
func (d *Descriptor) APIVersion() *semver.Version {
	if d.apiVersion == nil {
		return nil
	}
	v := *d.apiVersion
	return &v
}

// SupportsAPI reports whether a page written against the required version
// can use this module's glue: same major version, required no newer than
// declared. Modules without a declared version support nothing explicitly.
func (d *Descriptor) SupportsAPI(required string) bool {
	if d.apiVersion == nil {
		return false
	}
	req, err := semver.NewVersion(required)
	if err != nil {
		return false
	}
	if req.Major != d.apiVersion.Major {
		return false
	}
	return !d.apiVersion.LessThan(*req)
}

// RegisterInto registers the module's function map. Fails fast if the
// module name is already present in the registry.
func (d *Descriptor) RegisterInto(reg *registry.Registry) error {
	return reg.AddModule(d.name, d.functions)
}

// AttachEvents subscribes one page surface to every event publisher the
// module declares.
func (d *Descriptor) AttachEvents(mgr *event.Manager, surface bridge.Surface) {
	for name, src := range d.events {
		mgr.Attach(surface, d.name, name, src)
	}
}
