package dispatch

import (
	"context"
	"sync"

	"go.uber.org/zap"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/registry"
)

// Gate is the policy hook consulted before any handler runs. A nil Gate
// allows everything.
type Gate interface {
	// AllowModule reports whether the module may be dispatched at all.
	AllowModule(module bridge.ModuleName) bool
	// AllowOrigin reports whether calls from origin may reach the module.
	AllowOrigin(module bridge.ModuleName, origin bridge.Origin) bool
}

// FrameInfo identifies the frame a call originated from. The zero value
// means "the surface's main frame".
type FrameInfo struct {
	// URL is the requesting frame's document URL.
	URL string
	// TopFrame reports whether the frame is the main frame.
	TopFrame bool
}

// Options configures a Core.
type Options struct {
	// Gate is consulted per call; nil allows all modules and origins.
	Gate Gate
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Core bridges inbound page calls to registered native handlers and settles
// the reply pair. It is the single entry point for calls crossing into the
// native side and is fully re-entrant: any number of calls may be in flight
// concurrently, with no ordering between them.
type Core struct {
	reg    *registry.Registry
	gate   Gate
	logger *zap.Logger
}

// NewCore creates a dispatch core over a registry.
func NewCore(reg *registry.Registry, opts Options) *Core {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Core{
		reg:    reg,
		gate:   opts.Gate,
		logger: logger,
	}
}

// HandleMessage processes one inbound message that arrived on the channel
// named by module, attributed to the surface's main frame.
//
// The reply fires exactly once, always: a malformed payload, an unknown
// module or function, and a policy-denied call all settle the empty
// "nothing" reply rather than leaving the page-side promise pending or
// surfacing a distinguishable error.
func (c *Core) HandleMessage(ctx context.Context, surface bridge.Surface, module bridge.ModuleName, payload map[string]any, reply ReplyFunc) {
	frame := FrameInfo{TopFrame: true}
	if surface != nil {
		frame.URL = surface.Info().URL
	}
	c.HandleMessageFrom(ctx, surface, frame, module, payload, reply)
}

// HandleMessageFrom is HandleMessage with explicit frame identity, for
// surfaces that host sub-frames.
func (c *Core) HandleMessageFrom(ctx context.Context, surface bridge.Surface, frame FrameInfo, module bridge.ModuleName, payload map[string]any, reply ReplyFunc) {
	settle := settleOnce(reply)

	call, err := ParseMessage(module, payload)
	if err != nil {
		// Malformed calls still settle the reply contract; the page sees
		// a null resolution, same as an unsupported feature.
		c.logger.Debug("malformed call dropped",
			zap.String("module", module.String()),
			zap.Error(err))
		settle(Nothing())
		return
	}

	if c.gate != nil && !c.gate.AllowModule(module) {
		c.logger.Debug("module denied by policy", zap.String("module", module.String()))
		settle(Nothing())
		return
	}

	callCtx := &bridge.CallContext{
		Surface:  surface,
		URL:      frame.URL,
		Origin:   bridge.ParseOrigin(frame.URL),
		TopFrame: frame.TopFrame,
	}
	if surface != nil {
		callCtx.PageOrigin = surface.Info().Origin
	}

	if c.gate != nil && !c.gate.AllowOrigin(module, callCtx.Origin) {
		c.logger.Debug("origin denied by policy",
			zap.String("module", module.String()),
			zap.String("origin", callCtx.Origin.String()))
		settle(Nothing())
		return
	}

	go c.invoke(ctx, callCtx, call, settle)
}

// invoke runs the handler and marshals its outcome into the reply pair.
func (c *Core) invoke(ctx context.Context, callCtx *bridge.CallContext, call *Call, settle ReplyFunc) {
	result, err := c.reg.Execute(ctx, callCtx, call.Module, call.Function, call.Args)
	switch {
	case err != nil:
		c.logger.Debug("handler failed",
			zap.String("module", call.Module.String()),
			zap.String("function", call.Function.String()),
			zap.Error(err))
		settle(Reply{Err: err.Error()})
	case result != nil:
		settle(Reply{Value: result})
	default:
		settle(Nothing())
	}
}

// Call dispatches synchronously and returns the settled reply. Intended for
// embedding hosts and tests; page surfaces use HandleMessage.
func (c *Core) Call(ctx context.Context, surface bridge.Surface, module bridge.ModuleName, payload map[string]any) Reply {
	done := make(chan Reply, 1)
	c.HandleMessage(ctx, surface, module, payload, func(r Reply) {
		done <- r
	})
	return <-done
}

// settleOnce wraps a ReplyFunc so the reply channel fires exactly once even
// if settlement races. A nil ReplyFunc discards the reply, which is the
// behavior when the originating channel is gone.
func settleOnce(reply ReplyFunc) ReplyFunc {
	var once sync.Once
	return func(r Reply) {
		once.Do(func() {
			if reply != nil {
				reply(r)
			}
		})
	}
}
