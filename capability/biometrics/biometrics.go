package biometrics

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
const ModuleName bridge.ModuleName = "biometrics"

// Evaluator performs the biometric prompt. Authenticate may block on user
// interaction; it honors ctx cancellation.
type Evaluator interface {
	Authenticate(ctx context.Context, reason string) (bool, error)
}

// Option configures the biometrics module.
type Option func(*bioModule)

// WithEvaluator gates credential reads behind a biometric prompt. Without
// it, authenticate replies nothing and credential reads skip the prompt.
func WithEvaluator(e Evaluator) Option {
	return func(m *bioModule) { m.evaluator = e }
}

// New builds the biometrics module descriptor over the given credential
// store. Credentials are keyed by the calling page's main-frame origin, so
// pages can only ever see their own.
func New(creds store.SecureStore, opts ...Option) (*module.Descriptor, error) {
	m := &bioModule{creds: creds}
	for _, opt := range opts {
		opt(m)
	}
	return module.New(ModuleName, registry.Functions{
		"authenticate":     m.authenticate,
		"getCredential":    m.getCredential,
		"setCredential":    m.setCredential,
		"deleteCredential": m.deleteCredential,
	}, module.WithAPIVersion("1.0.0"))
}

type bioModule struct {
	creds     store.SecureStore
	evaluator Evaluator
}

func (m *bioModule) authenticate(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if m.evaluator == nil {
		return nil, nil
	}
	reason, _ := args.String("reason")
	ok, err := m.evaluator.Authenticate(ctx, reason)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindDenied, err, "biometric evaluation")
	}
	v := value.Bool(ok)
	return &v, nil
}

// getCredential returns {account, secret} for the page's own origin.
// A cross-origin frame gets the silent nothing reply; a failed biometric
// prompt gets the same, so a probing page learns nothing. Only a
// genuinely missing credential is an explicit error.
func (m *bioModule) getCredential(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	account, ok := args.String("account")
	if !ok || account == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "getCredential requires an account argument")
	}
	if m.evaluator != nil {
		reason, _ := args.String("reason")
		passed, err := m.evaluator.Authenticate(ctx, reason)
		if err != nil || !passed {
			return nil, nil
		}
	}
	secret, err := m.creds.Get(ctx, call.PageOrigin.String(), account)
	if err != nil {
		return nil, err
	}
	v := value.Map(map[string]value.Value{
		"account": value.String(account),
		"secret":  value.String(string(secret)),
	})
	return &v, nil
}

func (m *bioModule) setCredential(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	account, ok := args.String("account")
	if !ok || account == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setCredential requires an account argument")
	}
	secret, ok := args.String("secret")
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseHandler, "setCredential requires a secret argument")
	}
	if err := m.creds.Set(ctx, call.PageOrigin.String(), account, []byte(secret)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *bioModule) deleteCredential(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	if !call.TopOriginMatches() {
		return nil, nil
	}
	account, ok := args.String("account")
	if !ok || account == "" {
		return nil, errors.InvalidInput(errors.PhaseHandler, "deleteCredential requires an account argument")
	}
	if err := m.creds.Delete(ctx, call.PageOrigin.String(), account); err != nil {
		return nil, err
	}
	return nil, nil
}
