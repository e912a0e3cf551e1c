package value

import (
	"errors"
	"testing"

	bridgeerrors "github.com/amosavian/WebNativeBridgeKit/errors"
)

func TestFromGo_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"bool", true, Bool(true)},
		{"int", 42, Int(42)},
		{"int64", int64(-7), Int(-7)},
		{"uint32", uint32(9), Number(9)},
		{"float64", 0.5, Number(0.5)},
		{"string", "hi", String("hi")},
		{"bytes", []byte{1, 2}, Bytes([]byte{1, 2})},
		{"value passthrough", String("x"), String("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("FromGo(%v) = %v kind %s, want kind %s", tt.in, got.Export(), got.Kind(), tt.want.Kind())
			}
		})
	}
}

func TestFromGo_Composite(t *testing.T) {
	got, err := FromGo(map[string]any{
		"id":    "user1",
		"count": 3,
		"tags":  []any{"a", "b"},
	})
	if err != nil {
		t.Fatal(err)
	}

	m, ok := got.AsMap()
	if !ok {
		t.Fatalf("expected map, got %s", got.Kind())
	}
	if s, _ := m["id"].AsString(); s != "user1" {
		t.Errorf("id = %q", s)
	}
	tags, _ := m["tags"].AsList()
	if len(tags) != 2 {
		t.Errorf("tags = %v", tags)
	}
}

func TestFromGo_Struct(t *testing.T) {
	type deviceInfo struct {
		Model  string  `json:"model"`
		OS     string  `json:"os"`
		Scale  float64 `json:"scale"`
		Hidden string  `json:"-"`
	}

	got, err := FromGo(deviceInfo{Model: "pixel-8", OS: "android", Scale: 2.5, Hidden: "x"})
	if err != nil {
		t.Fatal(err)
	}

	m, ok := got.AsMap()
	if !ok {
		t.Fatalf("expected map, got %s", got.Kind())
	}
	if s, _ := m["model"].AsString(); s != "pixel-8" {
		t.Errorf("model = %q", s)
	}
	if n, _ := m["scale"].AsNumber(); n != 2.5 {
		t.Errorf("scale = %v", n)
	}
	if _, exists := m["Hidden"]; exists {
		t.Error("json:\"-\" field leaked through conversion")
	}
}

func TestFromGo_Unserializable(t *testing.T) {
	_, err := FromGo(make(chan int))
	if err == nil {
		t.Fatal("expected error for chan")
	}
	if !errors.Is(err, &bridgeerrors.Error{Phase: bridgeerrors.PhaseEncode, Kind: bridgeerrors.KindTypeMismatch}) {
		t.Fatalf("expected encode/type_mismatch, got %v", err)
	}
}

func TestExport_RoundTrip(t *testing.T) {
	v := Map(map[string]Value{
		"ok":   Bool(true),
		"n":    Number(1.5),
		"list": List(String("a"), Null()),
	})

	exported := v.Export()
	back, err := FromGo(exported)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(v) {
		t.Fatalf("round trip changed value: %v", exported)
	}
}
