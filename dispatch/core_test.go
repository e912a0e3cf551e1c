package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// fakeSurface is an in-memory page surface for dispatch tests.
type fakeSurface struct {
	id   bridge.SurfaceID
	info bridge.SurfaceInfo
}

func newFakeSurface(pageURL string) *fakeSurface {
	return &fakeSurface{
		id: bridge.NewSurfaceID(),
		info: bridge.SurfaceInfo{
			URL:    pageURL,
			Origin: bridge.ParseOrigin(pageURL),
		},
	}
}

func (s *fakeSurface) ID() bridge.SurfaceID       { return s.id }
func (s *fakeSurface) Info() bridge.SurfaceInfo   { return s.info }
func (s *fakeSurface) EvaluateScript(ctx context.Context, script string) error {
	return nil
}

// denyGate denies a fixed module and a fixed origin.
type denyGate struct {
	module bridge.ModuleName
	origin bridge.Origin
}

func (g *denyGate) AllowModule(m bridge.ModuleName) bool { return m != g.module }
func (g *denyGate) AllowOrigin(m bridge.ModuleName, o bridge.Origin) bool {
	return !o.Equal(g.origin)
}

func deviceRegistry(t *testing.T, infoCalls *int) *registry.Registry {
	t.Helper()
	reg := registry.New()
	err := reg.AddModule("device", registry.Functions{
		"getInfo": func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
			if infoCalls != nil {
				*infoCalls++
			}
			v, err := value.FromGo(map[string]any{"model": "pixel-8", "os": "android"})
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
		"setBrightness": func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
			// Platform has no screen-brightness concept here.
			return nil, nil
		},
		"fail": func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
			return nil, errors.New("haptic engine busy")
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestCore_GetInfo(t *testing.T) {
	calls := 0
	core := NewCore(deviceRegistry(t, &calls), Options{})
	surface := newFakeSurface("https://app.example.com/")

	reply := core.Call(context.Background(), surface, "device", map[string]any{"functionName": "getInfo"})

	if calls != 1 {
		t.Fatalf("handler invoked %d times, want exactly 1", calls)
	}
	if reply.Err != "" {
		t.Fatalf("unexpected error: %s", reply.Err)
	}
	if reply.Value == nil {
		t.Fatal("expected a device info value")
	}
	m, _ := reply.Value.AsMap()
	if s, _ := m["model"].AsString(); s != "pixel-8" {
		t.Fatalf("model = %q", s)
	}
}

func TestCore_NothingReplies(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{})
	surface := newFakeSurface("https://app.example.com/")

	tests := []struct {
		name    string
		module  bridge.ModuleName
		payload map[string]any
	}{
		{"unknown module", "nosuch", map[string]any{"functionName": "getInfo"}},
		{"unknown function", "device", map[string]any{"functionName": "nosuch"}},
		{"missing functionName", "device", map[string]any{"level": 0.5}},
		{"blank functionName", "device", map[string]any{"functionName": ""}},
		{"non-string functionName", "device", map[string]any{"functionName": 42}},
		{"empty payload", "device", map[string]any{}},
		{"nil payload", "device", nil},
		{"unsupported feature", "device", map[string]any{"functionName": "setBrightness", "level": 0.5}},
		{"unserializable argument", "device", map[string]any{"functionName": "getInfo", "bad": make(chan int)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := core.Call(context.Background(), surface, tt.module, tt.payload)
			if !reply.IsNothing() {
				t.Fatalf("expected nothing reply, got value=%v err=%q", reply.Value, reply.Err)
			}
		})
	}
}

func TestCore_HandlerFailure(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{})
	surface := newFakeSurface("https://app.example.com/")

	reply := core.Call(context.Background(), surface, "device", map[string]any{"functionName": "fail"})

	if reply.Value != nil {
		t.Fatal("failing handler must not populate the value slot")
	}
	if !strings.Contains(reply.Err, "haptic engine busy") {
		t.Fatalf("error description lost: %q", reply.Err)
	}
}

func TestCore_ReplyExclusivity(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{})
	surface := newFakeSurface("https://app.example.com/")

	for _, fn := range []string{"getInfo", "fail", "setBrightness", "nosuch"} {
		reply := core.Call(context.Background(), surface, "device", map[string]any{"functionName": fn})
		if reply.Value != nil && reply.Err != "" {
			t.Fatalf("%s: both reply slots populated", fn)
		}
	}
}

func TestCore_ArgumentsReachHandler(t *testing.T) {
	reg := registry.New()
	var got bridge.Args
	reg.Add("device", "setBrightness", func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
		got = args
		return nil, nil
	})
	core := NewCore(reg, Options{})

	core.Call(context.Background(), nil, "device", map[string]any{
		"functionName": "setBrightness",
		"level":        0.5,
		"animated":     true,
	})

	if len(got) != 2 {
		t.Fatalf("args = %v, want 2 entries without functionName", got)
	}
	if _, exists := got["functionName"]; exists {
		t.Fatal("functionName must be stripped from the argument map")
	}
	if n, ok := got.Number("level"); !ok || n != 0.5 {
		t.Fatalf("level = %v, %v", n, ok)
	}
	if b, ok := got.Bool("animated"); !ok || !b {
		t.Fatal("animated flag lost")
	}
}

func TestCore_CallContext(t *testing.T) {
	reg := registry.New()
	var got *bridge.CallContext
	reg.Add("m", "fn", func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
		got = call
		return nil, nil
	})
	core := NewCore(reg, Options{})
	surface := newFakeSurface("https://app.example.com/home")

	core.Call(context.Background(), surface, "m", map[string]any{"functionName": "fn"})

	if got.Surface != surface {
		t.Error("surface reference lost")
	}
	if !got.TopFrame {
		t.Error("main-frame call should be top frame")
	}
	if !got.TopOriginMatches() {
		t.Error("main-frame origin should match page origin")
	}
}

func TestCore_SubFrameOriginMismatch(t *testing.T) {
	reg := registry.New()
	var got *bridge.CallContext
	reg.Add("m", "fn", func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
		got = call
		return nil, nil
	})
	core := NewCore(reg, Options{})
	surface := newFakeSurface("https://app.example.com/")

	done := make(chan struct{})
	core.HandleMessageFrom(context.Background(), surface,
		FrameInfo{URL: "https://evil.example.net/frame", TopFrame: false},
		"m", map[string]any{"functionName": "fn"},
		func(Reply) { close(done) })
	<-done

	if got.TopFrame {
		t.Error("sub-frame call reported as top frame")
	}
	if got.TopOriginMatches() {
		t.Error("cross-origin sub-frame must not match the page origin")
	}
}

func TestCore_GateDenials(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{
		Gate: &denyGate{
			module: "device",
			origin: bridge.ParseOrigin("https://blocked.example.com/"),
		},
	})

	reply := core.Call(context.Background(), newFakeSurface("https://app.example.com/"), "device",
		map[string]any{"functionName": "getInfo"})
	if !reply.IsNothing() {
		t.Fatal("policy-denied module must settle the nothing reply")
	}
}

func TestCore_GateOriginDenial(t *testing.T) {
	reg := deviceRegistry(t, nil)
	core := NewCore(reg, Options{
		Gate: &denyGate{
			module: "other",
			origin: bridge.ParseOrigin("https://blocked.example.com/"),
		},
	})

	reply := core.Call(context.Background(), newFakeSurface("https://blocked.example.com/"), "device",
		map[string]any{"functionName": "getInfo"})
	if !reply.IsNothing() {
		t.Fatal("policy-denied origin must settle the nothing reply")
	}
}

func TestCore_NilSurface(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{})

	// A call whose surface is already gone still settles its reply.
	reply := core.Call(context.Background(), nil, "device", map[string]any{"functionName": "getInfo"})
	if reply.Value == nil {
		t.Fatal("expected a value even without a live surface")
	}
}

func TestCore_ConcurrentCalls(t *testing.T) {
	reg := registry.New()
	reg.Add("m", "slow", func(ctx context.Context, call *bridge.CallContext, args bridge.Args) (*value.Value, error) {
		time.Sleep(time.Millisecond)
		v := value.Bool(true)
		return &v, nil
	})
	core := NewCore(reg, Options{})
	surface := newFakeSurface("https://app.example.com/")

	var wg sync.WaitGroup
	var mu sync.Mutex
	settled := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		core.HandleMessage(context.Background(), surface, "m",
			map[string]any{"functionName": "slow"},
			func(r Reply) {
				mu.Lock()
				settled++
				mu.Unlock()
				wg.Done()
			})
	}
	wg.Wait()

	if settled != 32 {
		t.Fatalf("settled %d replies, want 32 (exactly once each)", settled)
	}
}

func TestCore_NilReplyFuncDiscards(t *testing.T) {
	core := NewCore(deviceRegistry(t, nil), Options{})
	// Reply channel gone: the call still runs without panicking.
	core.HandleMessage(context.Background(), nil, "device", map[string]any{"functionName": "getInfo"}, nil)
	time.Sleep(5 * time.Millisecond)
}

func TestParseMessage(t *testing.T) {
	call, err := ParseMessage("device", map[string]any{
		"functionName": "getCredential",
		"id":           "user1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if call.Module != "device" || call.Function != "getCredential" {
		t.Fatalf("call = %+v", call)
	}
	if s, ok := call.Args.String("id"); !ok || s != "user1" {
		t.Fatalf("id arg = %q, %v", s, ok)
	}

	if _, err := ParseMessage("device", map[string]any{"other": 1}); err == nil {
		t.Fatal("missing functionName must be malformed")
	}
}
