package event

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// recordingSurface captures evaluated scripts; destroyed surfaces fail.
type recordingSurface struct {
	id        bridge.SurfaceID
	mu        sync.Mutex
	scripts   []string
	destroyed bool
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{id: bridge.NewSurfaceID()}
}

func (s *recordingSurface) ID() bridge.SurfaceID { return s.id }

func (s *recordingSurface) Info() bridge.SurfaceInfo {
	return bridge.SurfaceInfo{URL: "https://app.example.com/", Origin: bridge.ParseOrigin("https://app.example.com/")}
}

func (s *recordingSurface) EvaluateScript(ctx context.Context, script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return errors.SurfaceGone(errors.PhaseScript, s.id.String())
	}
	s.scripts = append(s.scripts, script)
	return nil
}

func (s *recordingSurface) destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()
}

func (s *recordingSurface) evaluated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.scripts))
	copy(out, s.scripts)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestManager_DeliversExactlyOnce(t *testing.T) {
	hub := NewHub()
	mgr := NewManager(nil)
	defer mgr.Close()
	surface := newRecordingSurface()

	mgr.Attach(surface, "view", "keyboardShow", hub.Source("keyboardShow"))

	hub.Post("keyboardShow", value.Map(map[string]value.Value{
		"duration": value.Number(0.25),
		"curve":    value.String("easeInOut"),
	}))

	waitFor(t, func() bool { return len(surface.evaluated()) == 1 })
	script := surface.evaluated()[0]

	if !strings.Contains(script, `"view.keyboardShow"`) {
		t.Errorf("script missing qualified event name: %s", script)
	}
	if !strings.Contains(script, `"duration":0.25`) || !strings.Contains(script, `"curve":"easeInOut"`) {
		t.Errorf("script missing detail fields: %s", script)
	}

	// No further notifications, no further dispatches.
	time.Sleep(10 * time.Millisecond)
	if n := len(surface.evaluated()); n != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", n)
	}
}

func TestManager_DetachStopsDelivery(t *testing.T) {
	hub := NewHub()
	mgr := NewManager(nil)
	defer mgr.Close()
	surface := newRecordingSurface()

	mgr.Attach(surface, "view", "keyboardHide", hub.Source("keyboardHide"))
	mgr.Detach(surface.ID())

	hub.Post("keyboardHide", value.Null())
	time.Sleep(10 * time.Millisecond)

	if n := len(surface.evaluated()); n != 0 {
		t.Fatalf("detached surface received %d dispatches", n)
	}
	if mgr.Attached(surface.ID()) {
		t.Error("surface still attached after Detach")
	}

	// Detaching twice is a no-op.
	mgr.Detach(surface.ID())
}

func TestManager_DestroyedSurfaceIsNoOp(t *testing.T) {
	hub := NewHub()
	mgr := NewManager(nil)
	defer mgr.Close()
	surface := newRecordingSurface()

	mgr.Attach(surface, "view", "keyboardShow", hub.Source("keyboardShow"))
	surface.destroy()

	// Teardown was missed; delivery must degrade to a no-op, not a fault.
	hub.Post("keyboardShow", value.Null())
	time.Sleep(10 * time.Millisecond)

	if n := len(surface.evaluated()); n != 0 {
		t.Fatalf("destroyed surface recorded %d dispatches", n)
	}
}

func TestManager_PerSurfaceOrdering(t *testing.T) {
	hub := NewHub()
	mgr := NewManager(nil)
	defer mgr.Close()
	surface := newRecordingSurface()

	mgr.Attach(surface, "device", "orientation", hub.Source("orientation"))

	for i := 0; i < 20; i++ {
		hub.Post("orientation", value.Int(int64(i)))
	}

	waitFor(t, func() bool { return len(surface.evaluated()) == 20 })
	scripts := surface.evaluated()
	for i, script := range scripts {
		want, err := DeliveryScript("device.orientation", Notification{Name: "orientation", Detail: value.Int(int64(i))})
		if err != nil {
			t.Fatal(err)
		}
		if script != want {
			t.Fatalf("dispatch %d out of order:\ngot  %s\nwant %s", i, script, want)
		}
	}
}

func TestManager_IndependentSurfaces(t *testing.T) {
	hub := NewHub()
	mgr := NewManager(nil)
	defer mgr.Close()
	a := newRecordingSurface()
	b := newRecordingSurface()

	mgr.Attach(a, "view", "keyboardShow", hub.Source("keyboardShow"))
	mgr.Attach(b, "view", "keyboardShow", hub.Source("keyboardShow"))

	hub.Post("keyboardShow", value.Null())

	waitFor(t, func() bool { return len(a.evaluated()) == 1 && len(b.evaluated()) == 1 })

	// Destroying one page must not affect the other.
	mgr.Detach(a.ID())
	hub.Post("keyboardShow", value.Null())
	waitFor(t, func() bool { return len(b.evaluated()) == 2 })
	if len(a.evaluated()) != 1 {
		t.Fatal("detached surface kept receiving events")
	}
}

func TestHub_SourceFiltersByName(t *testing.T) {
	hub := NewHub()
	var got []Notification
	var mu sync.Mutex

	cancel := hub.Source("keyboardShow").Subscribe(func(n Notification) {
		mu.Lock()
		got = append(got, n)
		mu.Unlock()
	})
	defer cancel()

	hub.Post("keyboardShow", value.String("a"))
	hub.Post("keyboardHide", value.String("b"))

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("got %d notifications, want 1", len(got))
	}
	if got[0].Name != "keyboardShow" {
		t.Fatalf("name = %s", got[0].Name)
	}
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := NewHub()
	calls := 0
	cancel := hub.Source("e").Subscribe(func(Notification) { calls++ })

	cancel()
	cancel()
	hub.Post("e", value.Null())

	if calls != 0 {
		t.Fatalf("cancelled subscriber invoked %d times", calls)
	}
}

func TestDeliveryScript(t *testing.T) {
	script, err := DeliveryScript("view.keyboardShow", Notification{
		Name: "keyboardShow",
		Detail: value.Map(map[string]value.Value{
			"beginRect": value.String("0,0,390,0"),
			"endRect":   value.String("0,548,390,296"),
		}),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `window.dispatchEvent(new CustomEvent("view.keyboardShow", {detail: {"beginRect":"0,0,390,0","endRect":"0,548,390,296"}}));`
	if script != want {
		t.Fatalf("script = %s\nwant   = %s", script, want)
	}
}
