package view

import (
	"context"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/event"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "view"

// Events raised by this module.
const (
	EventKeyboardShow bridge.EventName = "keyboardShow"
	EventKeyboardHide bridge.EventName = "keyboardHide"
)

// Provider renders the hosting view: screenshots and print jobs.
type Provider interface {
	CaptureScreenshot(ctx context.Context) ([]byte, error)
	Print(ctx context.Context) error
}

// New builds the view module descriptor. Keyboard events flow from hub;
// the hosting application posts them via PostKeyboard.
func New(provider Provider, hub *event.Hub) (*module.Descriptor, error) {
	m := &viewModule{provider: provider}
	return module.New(ModuleName, registry.Functions{
		"captureScreenshot": m.captureScreenshot,
		"print":             m.print,
	},
		module.WithAPIVersion("1.0.0"),
		module.WithEvents(module.Events{
			EventKeyboardShow: hub.Source(EventKeyboardShow),
			EventKeyboardHide: hub.Source(EventKeyboardHide),
		}),
	)
}

type viewModule struct {
	provider Provider
}

func (m *viewModule) captureScreenshot(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	png, err := m.provider.CaptureScreenshot(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "capture screenshot")
	}
	v := value.Bytes(png)
	return &v, nil
}

func (m *viewModule) print(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	if err := m.provider.Print(ctx); err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "print")
	}
	return nil, nil
}

// Rect is a keyboard frame in page coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) value() value.Value {
	return value.Map(map[string]value.Value{
		"x":      value.Number(r.X),
		"y":      value.Number(r.Y),
		"width":  value.Number(r.Width),
		"height": value.Number(r.Height),
	})
}

// KeyboardInfo describes one keyboard transition.
type KeyboardInfo struct {
	BeginRect Rect
	EndRect   Rect
	// Duration is the animation length in seconds.
	Duration float64
	// Curve is the animation curve name, e.g. "easeInOut".
	Curve string
}

// PostKeyboard raises a keyboard show or hide notification into hub.
// The hosting application calls this from its keyboard observers.
func PostKeyboard(hub *event.Hub, name bridge.EventName, info KeyboardInfo) {
	hub.Post(name, value.Map(map[string]value.Value{
		"beginRect": info.BeginRect.value(),
		"endRect":   info.EndRect.value(),
		"duration":  value.Number(info.Duration),
		"curve":     value.String(info.Curve),
	}))
}
