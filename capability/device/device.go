package device

import (
	"context"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "device"

// Info is a snapshot of the host device as reported to pages.
type Info struct {
	Model        string
	OSName       string
	OSVersion    string
	Locale       string
	ScreenWidth  float64
	ScreenHeight float64
	ScreenScale  float64
	ReduceMotion bool
	BoldText     bool
}

// InfoSource supplies device information to the getInfo function.
type InfoSource interface {
	Info(ctx context.Context) (Info, error)
}

// BrightnessController is implemented by providers that can drive the
// screen brightness. Providers without it make setBrightness a no-op
// that replies nothing.
type BrightnessController interface {
	SetBrightness(ctx context.Context, level float64) error
}

// New builds the device module descriptor around the given provider.
func New(provider InfoSource) (*module.Descriptor, error) {
	m := &deviceModule{provider: provider}
	return module.New(ModuleName, registry.Functions{
		"getInfo":       m.getInfo,
		"setBrightness": m.setBrightness,
	}, module.WithAPIVersion("1.0.0"))
}

type deviceModule struct {
	provider InfoSource
}

func (m *deviceModule) getInfo(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	info, err := m.provider.Info(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "device info unavailable")
	}
	v := value.Map(map[string]value.Value{
		"model":        value.String(info.Model),
		"osName":       value.String(info.OSName),
		"osVersion":    value.String(info.OSVersion),
		"locale":       value.String(info.Locale),
		"screenWidth":  value.Number(info.ScreenWidth),
		"screenHeight": value.Number(info.ScreenHeight),
		"screenScale":  value.Number(info.ScreenScale),
		"reduceMotion": value.Bool(info.ReduceMotion),
		"boldText":     value.Bool(info.BoldText),
	})
	return &v, nil
}

// setBrightness replies nothing on success and on providers without
// brightness support, so pages cannot probe the host's capabilities.
func (m *deviceModule) setBrightness(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	ctrl, ok := m.provider.(BrightnessController)
	if !ok {
		return nil, nil
	}
	level, ok := args.Number("level")
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setBrightness requires a numeric level")
	}
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	if err := ctrl.SetBrightness(ctx, level); err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "set brightness")
	}
	return nil, nil
}
