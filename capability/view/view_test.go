package view

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/event"
)

type fakeProvider struct {
	png     []byte
	printed int
}

func (f *fakeProvider) CaptureScreenshot(context.Context) ([]byte, error) { return f.png, nil }
func (f *fakeProvider) Print(context.Context) error                      { f.printed++; return nil }

type recordingSurface struct {
	id bridge.SurfaceID

	mu      sync.Mutex
	scripts []string
}

func (s *recordingSurface) ID() bridge.SurfaceID { return s.id }
func (s *recordingSurface) Info() bridge.SurfaceInfo {
	return bridge.SurfaceInfo{URL: "https://page.test", Origin: bridge.ParseOrigin("https://page.test")}
}
func (s *recordingSurface) EvaluateScript(_ context.Context, script string) error {
	s.mu.Lock()
	s.scripts = append(s.scripts, script)
	s.mu.Unlock()
	return nil
}

func (s *recordingSurface) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scripts...)
}

func TestCaptureScreenshot(t *testing.T) {
	p := &fakeProvider{png: []byte{0x89, 'P', 'N', 'G'}}
	desc, err := New(p, event.NewHub())
	if err != nil {
		t.Fatal(err)
	}
	result, err := desc.Functions()["captureScreenshot"](context.Background(), &bridge.CallContext{}, nil)
	if err != nil {
		t.Fatalf("captureScreenshot: %v", err)
	}
	b, ok := result.AsBytes()
	if !ok || len(b) != 4 {
		t.Fatalf("result = %v", result)
	}
}

func TestPrint(t *testing.T) {
	p := &fakeProvider{}
	desc, err := New(p, event.NewHub())
	if err != nil {
		t.Fatal(err)
	}
	result, err := desc.Functions()["print"](context.Background(), &bridge.CallContext{}, nil)
	if result != nil || err != nil {
		t.Fatalf("print = (%v, %v), want nothing", result, err)
	}
	if p.printed != 1 {
		t.Errorf("printed %d times", p.printed)
	}
}

func TestKeyboardEventReachesAttachedSurface(t *testing.T) {
	hub := event.NewHub()
	desc, err := New(&fakeProvider{}, hub)
	if err != nil {
		t.Fatal(err)
	}

	mgr := event.NewManager(nil)
	defer mgr.Close()
	surface := &recordingSurface{id: bridge.NewSurfaceID()}
	desc.AttachEvents(mgr, surface)

	PostKeyboard(hub, EventKeyboardShow, KeyboardInfo{
		BeginRect: Rect{Y: 800, Width: 390, Height: 0},
		EndRect:   Rect{Y: 500, Width: 390, Height: 300},
		Duration:  0.25,
		Curve:     "easeInOut",
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		scripts := surface.all()
		if len(scripts) == 1 {
			s := scripts[0]
			if !strings.Contains(s, `"view.keyboardShow"`) {
				t.Errorf("script should carry the qualified event name: %s", s)
			}
			if !strings.Contains(s, `"duration":0.25`) || !strings.Contains(s, `"curve":"easeInOut"`) {
				t.Errorf("script should carry the keyboard detail: %s", s)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("keyboard event never reached the surface")
}
