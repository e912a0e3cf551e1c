package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/amosavian/WebNativeBridgeKit/errors"
)

func backends(t *testing.T) map[string]SecureStore {
	t.Helper()
	sq, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]SecureStore{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "https://app.example.com", "alice", []byte("s3cret")); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(ctx, "https://app.example.com", "alice")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, []byte("s3cret")) {
				t.Errorf("Get = %q, want %q", got, "s3cret")
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "svc", "nobody")
			if err == nil {
				t.Fatal("expected error for missing item")
			}
			if !errors.Is(err, errors.ItemNotFound("", "")) {
				t.Errorf("error %v should match item-not-found", err)
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "svc", "bob", []byte("old")); err != nil {
				t.Fatal(err)
			}
			if err := s.Set(ctx, "svc", "bob", []byte("new")); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, "svc", "bob")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "new" {
				t.Errorf("Get = %q, want %q", got, "new")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "svc", "carol", []byte("x")); err != nil {
				t.Fatal(err)
			}
			if err := s.Delete(ctx, "svc", "carol"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "svc", "carol"); err == nil {
				t.Error("Get after Delete should fail")
			}
			if err := s.Delete(ctx, "svc", "carol"); !errors.Is(err, errors.ItemNotFound("", "")) {
				t.Errorf("double Delete = %v, want item-not-found", err)
			}
		})
	}
}

func TestItemsScopedToService(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, pair := range [][2]string{
				{"https://a.test", "zoe"},
				{"https://a.test", "amy"},
				{"https://b.test", "eve"},
			} {
				if err := s.Set(ctx, pair[0], pair[1], []byte("v")); err != nil {
					t.Fatal(err)
				}
			}

			items, err := s.Items(ctx, "https://a.test")
			if err != nil {
				t.Fatalf("Items: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("Items returned %d entries, want 2", len(items))
			}
			if items[0].Account != "amy" || items[1].Account != "zoe" {
				t.Errorf("accounts = %q, %q; want amy, zoe", items[0].Account, items[1].Account)
			}
			for _, item := range items {
				if len(item.Secret) != 0 {
					t.Errorf("Items must not include secret material, got %q", item.Secret)
				}
				if item.ModifiedAt.IsZero() {
					t.Error("ModifiedAt should be set")
				}
			}
		})
	}
}

func TestMemoryCopiesSecret(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	secret := []byte("mutable")
	if err := s.Set(ctx, "svc", "dan", secret); err != nil {
		t.Fatal(err)
	}
	secret[0] = 'X'

	got, err := s.Get(ctx, "svc", "dan")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "mutable" {
		t.Errorf("stored secret mutated through caller slice: %q", got)
	}
	got[0] = 'Y'
	again, _ := s.Get(ctx, "svc", "dan")
	if string(again) != "mutable" {
		t.Errorf("stored secret mutated through returned slice: %q", again)
	}
}
