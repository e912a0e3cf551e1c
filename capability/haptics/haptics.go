package haptics

import (
	"context"
	"sync"
	"time"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "haptics"

// Patterns accepted by play.
const (
	PatternSelection = "selection"
	PatternLight     = "light"
	PatternMedium    = "medium"
	PatternHeavy     = "heavy"
	PatternSuccess   = "success"
	PatternWarning   = "warning"
	PatternError     = "error"
)

// Engine drives the physical actuator. There is one engine handle per
// host; the module serializes access to it because the bridge itself
// imposes no ordering between concurrent calls.
type Engine interface {
	Play(ctx context.Context, pattern string) error
	Vibrate(ctx context.Context, d time.Duration) error
}

// New builds the haptics module descriptor around the given engine.
func New(engine Engine) (*module.Descriptor, error) {
	m := &hapticsModule{engine: engine}
	return module.New(ModuleName, registry.Functions{
		"play":    m.play,
		"vibrate": m.vibrate,
	}, module.WithAPIVersion("1.0.0"))
}

type hapticsModule struct {
	mu     sync.Mutex
	engine Engine
}

func validPattern(p string) bool {
	switch p {
	case PatternSelection, PatternLight, PatternMedium, PatternHeavy,
		PatternSuccess, PatternWarning, PatternError:
		return true
	}
	return false
}

func (m *hapticsModule) play(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	pattern, ok := args.String("pattern")
	if !ok || !validPattern(pattern) {
		return nil, errors.InvalidInput(errors.PhaseHandler, "play requires a known pattern")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.Play(ctx, pattern); err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "haptic playback")
	}
	return nil, nil
}

// vibrate takes a duration in milliseconds, capped at ten seconds.
func (m *hapticsModule) vibrate(ctx context.Context, _ *bridge.CallContext, args bridge.Args) (*value.Value, error) {
	ms, ok := args.Number("duration")
	if !ok || ms <= 0 {
		return nil, errors.InvalidInput(errors.PhaseHandler, "vibrate requires a positive duration in milliseconds")
	}
	d := time.Duration(ms) * time.Millisecond
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.Vibrate(ctx, d); err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "vibration")
	}
	return nil, nil
}
