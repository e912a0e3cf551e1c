package app

import (
	"context"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "app"

// Provider is the hosting application's surface for the app module.
type Provider interface {
	// Version returns the marketing version and build identifier.
	Version(ctx context.Context) (version, build string, err error)
	// OpenURL asks the host to open url externally. It reports whether
	// the host accepted the request.
	OpenURL(ctx context.Context, url string) (bool, error)
}

// BadgeController is implemented by providers that can set the
// application icon badge.
type BadgeController interface {
	SetBadge(ctx context.Context, count int) error
}

// New builds the app module descriptor around the given provider.
func New(provider Provider) (*module.Descriptor, error) {
	m := &appModule{provider: provider}
	return m.descriptor()
}

type appModule struct {
	provider Provider
}

func (m *appModule) descriptor() (*module.Descriptor, error) {
	return module.New(ModuleName, registry.Functions{
		"getVersion": m.getVersion,
		"openURL":    m.openURL,
		"setBadge":   m.setBadge,
	}, module.WithAPIVersion("1.0.0"))
}

func (m *appModule) getVersion(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	version, build, err := m.provider.Version(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "app version unavailable")
	}
	v := value.Map(map[string]value.Value{
		"version": value.String(version),
		"build":   value.String(build),
	})
	return &v, nil
}

func (m *appModule) openURL(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	raw, ok := args.String("url")
	if !ok || raw == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "openURL requires a url argument")
	}
	opened, err := m.provider.OpenURL(ctx, raw)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "open url")
	}
	v := value.Bool(opened)
	return &v, nil
}

// setBadge replies nothing whether or not the provider supports badges.
func (m *appModule) setBadge(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	ctrl, ok := m.provider.(BadgeController)
	if !ok {
		return nil, nil
	}
	count, ok := args.Number("count")
	if !ok || count < 0 {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setBadge requires a non-negative count")
	}
	if err := ctrl.SetBadge(ctx, int(count)); err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "set badge")
	}
	return nil, nil
}
