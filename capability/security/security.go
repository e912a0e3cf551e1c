package security

import (
	"context"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/store"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "security"

// servicePrefix keeps this module's items apart from credentials stored
// through the biometrics module, even though both share one SecureStore.
const servicePrefix = "security:"

// New builds the security module descriptor: origin-scoped key/value
// secure storage for pages.
func New(s store.SecureStore) (*module.Descriptor, error) {
	m := &secModule{store: s}
	return module.New(ModuleName, registry.Functions{
		"getValue":    m.getValue,
		"setValue":    m.setValue,
		"deleteValue": m.deleteValue,
		"listKeys":    m.listKeys,
	}, module.WithAPIVersion("1.0.0"))
}

type secModule struct {
	store store.SecureStore
}

func (m *secModule) service(call *bridge.CallContext) string {
	return servicePrefix + call.PageOrigin.String()
}

func (m *secModule) getValue(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	key, ok := args.String("key")
	if !ok || key == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "getValue requires a key argument")
	}
	secret, err := m.store.Get(ctx, m.service(call), key)
	if err != nil {
		return nil, err
	}
	v := value.String(string(secret))
	return &v, nil
}

func (m *secModule) setValue(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	key, ok := args.String("key")
	if !ok || key == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setValue requires a key argument")
	}
	val, ok := args.String("value")
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setValue requires a value argument")
	}
	if err := m.store.Set(ctx, m.service(call), key, []byte(val)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *secModule) deleteValue(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	key, ok := args.String("key")
	if !ok || key == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "deleteValue requires a key argument")
	}
	if err := m.store.Delete(ctx, m.service(call), key); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *secModule) listKeys(ctx context.Context, call *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	items, err := m.store.Items(ctx, m.service(call))
	if err != nil {
		return nil, err
	}
	keys := make([]value.Value, len(items))
	for i, item := range items {
		keys[i] = value.String(item.Account)
	}
	v := value.List(keys...)
	return &v, nil
}
