package gojasurface

import (
	"context"
	"sync/atomic"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"go.uber.org/zap"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/dispatch"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
)

// windowShim is the minimal DOM surface pages need for event delivery:
// a window with addEventListener/dispatchEvent and a CustomEvent type.
const windowShim = `
(function() {
	var listeners = {};
	globalThis.window = globalThis.window || globalThis;
	globalThis.CustomEvent = function(type, init) {
		this.type = type;
		this.detail = init ? init.detail : undefined;
	};
	window.addEventListener = function(type, fn) {
		(listeners[type] = listeners[type] || []).push(fn);
	};
	window.removeEventListener = function(type, fn) {
		var fns = listeners[type] || [];
		var i = fns.indexOf(fn);
		if (i >= 0) fns.splice(i, 1);
	};
	window.dispatchEvent = function(ev) {
		var fns = (listeners[ev.type] || []).slice();
		for (var i = 0; i < fns.length; i++) fns[i](ev);
		return true;
	};
})();
`

// Surface runs a page inside a goja runtime on a goja_nodejs event loop.
// All script evaluation happens on the loop; EvaluateScript may be called
// from any goroutine.
type Surface struct {
	id     bridge.SurfaceID
	loop   *eventloop.EventLoop
	url    string
	origin bridge.Origin
	logger *zap.Logger

	ownLoop bool
	closed  atomic.Bool
	onClose func(bridge.SurfaceID)
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the surface's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventLoop runs the surface on a caller-owned loop. The caller is
// responsible for starting and stopping it; Close will not stop it.
func WithEventLoop(loop *eventloop.EventLoop) Option {
	return func(s *Surface) {
		s.loop = loop
		s.ownLoop = false
	}
}

// OnClose registers a callback invoked once when the surface closes,
// typically event.Manager.Detach.
func OnClose(fn func(bridge.SurfaceID)) Option {
	return func(s *Surface) { s.onClose = fn }
}

// New creates a surface for the page at pageURL and starts its event
// loop. The window shim is queued as the loop's first job, so it runs
// before any script the surface later evaluates. With WithEventLoop the
// shim installs once the caller starts the loop; New never blocks on it.
func New(pageURL string, opts ...Option) *Surface {
	s := &Surface{
		id:      bridge.NewSurfaceID(),
		url:     pageURL,
		origin:  bridge.ParseOrigin(pageURL),
		logger:  zap.NewNop(),
		ownLoop: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loop == nil {
		s.loop = eventloop.NewEventLoop(eventloop.EnableConsole(false))
	}
	if s.ownLoop {
		s.loop.Start()
	}
	s.loop.RunOnLoop(func(vm *goja.Runtime) {
		if _, err := vm.RunString(windowShim); err != nil {
			s.logger.Error("window shim install failed", zap.Error(err))
		}
	})
	return s
}

func (s *Surface) ID() bridge.SurfaceID { return s.id }

func (s *Surface) Info() bridge.SurfaceInfo {
	return bridge.SurfaceInfo{URL: s.url, Origin: s.origin}
}

// run executes fn on the loop and waits for it, guarding against panics
// escaping into the loop goroutine.
func (s *Surface) run(fn func(vm *goja.Runtime) error) error {
	done := make(chan error, 1)
	s.loop.RunOnLoop(func(vm *goja.Runtime) {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.Evaluation("script panicked", nil)
				s.logger.Error("script panic", zap.Any("panic", r))
			}
		}()
		done <- fn(vm)
	})
	return <-done
}

// EvaluateScript runs script on the loop. A closed surface fails with a
// surface-gone error without touching the loop.
func (s *Surface) EvaluateScript(ctx context.Context, script string) error {
	if s.closed.Load() {
		return errors.SurfaceGone(errors.PhaseScript, string(s.id))
	}
	done := make(chan error, 1)
	s.loop.RunOnLoop(func(vm *goja.Runtime) {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.Evaluation("script panicked", nil)
			}
		}()
		_, err := vm.RunString(script)
		if err != nil {
			err = errors.Evaluation("evaluate script", err)
		}
		done <- err
	})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InjectModules binds the __bridgePost host function to core and installs
// the glue script of every descriptor, giving the page its
// globalThis.<module> objects.
func (s *Surface) InjectModules(core *dispatch.Core, descs ...*module.Descriptor) error {
	if s.closed.Load() {
		return errors.SurfaceGone(errors.PhaseScript, string(s.id))
	}
	err := s.run(func(vm *goja.Runtime) error {
		return vm.Set("__bridgePost", func(fc goja.FunctionCall) goja.Value {
			return s.post(vm, core, fc)
		})
	})
	if err != nil {
		return errors.Evaluation("bind bridge post", err)
	}

	glue, err := module.Scripts(module.ScriptOptions{}, descs...)
	if err != nil {
		return err
	}
	return s.EvaluateScript(context.Background(), glue)
}

// post is the host side of __bridgePost(channel, payload). It returns a
// promise settled from the dispatch reply on the loop.
func (s *Surface) post(vm *goja.Runtime, core *dispatch.Core, fc goja.FunctionCall) goja.Value {
	promise, resolve, reject := vm.NewPromise()

	channel := fc.Argument(0).String()
	payload, _ := fc.Argument(1).Export().(map[string]any)

	core.HandleMessage(context.Background(), s, bridge.ModuleName(channel), payload, func(reply dispatch.Reply) {
		s.loop.RunOnLoop(func(vm *goja.Runtime) {
			switch {
			case reply.Err != "":
				reject(vm.NewGoError(errors.Evaluation(reply.Err, nil)))
			case reply.Value != nil:
				resolve(vm.ToValue(reply.Value.Export()))
			default:
				resolve(goja.Null())
			}
		})
	})
	return vm.ToValue(promise)
}

// Close marks the surface destroyed, fires the OnClose callback, and
// stops the loop when the surface owns it. Further EvaluateScript calls
// fail with surface-gone. Close is idempotent.
func (s *Surface) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.onClose != nil {
		s.onClose(s.id)
	}
	if s.ownLoop {
		s.loop.Stop()
	}
}
