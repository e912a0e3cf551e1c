package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// Functions is a module's function map.
type Functions map[bridge.FunctionName]bridge.HandlerFunc

// Registry maps (module, function) pairs to native handlers. It is
// explicitly constructed and dependency-injected; a process-wide Default()
// exists as a top-level convenience.
//
// Every mutation and lookup is serialized through the registry mutex, the
// single coordination point the bridge's concurrency model requires.
// Handler invocation happens outside the lock.
type Registry struct {
	mu      sync.RWMutex
	modules map[bridge.ModuleName]Functions
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		modules: make(map[bridge.ModuleName]Functions),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry instance, created on first use
// and alive for the process lifetime. Prefer constructing and injecting a
// Registry; Default exists for the hosting application's top level.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Add inserts or overwrites a single function inside a module's function
// map, creating the module entry if it is unknown. Never fails.
func (r *Registry) Add(module bridge.ModuleName, name bridge.FunctionName, fn bridge.HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	funcs := r.modules[module]
	if funcs == nil {
		funcs = make(Functions)
		r.modules[module] = funcs
	}
	funcs[name] = fn
	r.logger.Debug("function registered",
		zap.String("module", module.String()),
		zap.String("function", name.String()))
}

// AddModule inserts a full function map under the module's name.
// Re-registration is never valid: it could silently replace handlers still
// referenced by live pages, so a duplicate name fails fast and leaves the
// existing module's functions untouched.
func (r *Registry) AddModule(module bridge.ModuleName, funcs Functions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[module]; exists {
		return errors.Registration(errors.PhaseRegistry, module.String(), "",
			errors.InvalidInput(errors.PhaseRegistry, "module name already registered"))
	}

	copied := make(Functions, len(funcs))
	for name, fn := range funcs {
		copied[name] = fn
	}
	r.modules[module] = copied
	r.logger.Debug("module registered",
		zap.String("module", module.String()),
		zap.Int("functions", len(copied)))
	return nil
}

// Remove deletes one function entry if present; no-op otherwise.
func (r *Registry) Remove(module bridge.ModuleName, name bridge.FunctionName) {
	r.mu.Lock()
	defer r.mu.Unlock()

	funcs, ok := r.modules[module]
	if !ok {
		return
	}
	delete(funcs, name)
}

// RemoveModule deletes a module and all its functions; no-op on miss.
func (r *Registry) RemoveModule(module bridge.ModuleName) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, module)
}

// Execute looks up registry[module][name] and invokes the handler.
// A lookup miss, unknown module or unknown function, is not an error:
// it returns (nil, nil), the "nothing" outcome an unsupported platform
// feature would also produce.
func (r *Registry) Execute(ctx context.Context, call *bridge.CallContext, module bridge.ModuleName, name bridge.FunctionName, args bridge.Args) (*value.Value, error) {
	r.mu.RLock()
	var fn bridge.HandlerFunc
	if funcs, ok := r.modules[module]; ok {
		fn = funcs[name]
	}
	r.mu.RUnlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx, call, args)
}

// Has reports whether a module name is registered.
func (r *Registry) Has(module bridge.ModuleName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[module]
	return ok
}

// Modules returns the registered module names.
func (r *Registry) Modules() []bridge.ModuleName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]bridge.ModuleName, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}

// Functions returns the function names of a module, nil if unknown.
func (r *Registry) Functions(module bridge.ModuleName) []bridge.FunctionName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	funcs, ok := r.modules[module]
	if !ok {
		return nil
	}
	names := make([]bridge.FunctionName, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	return names
}
