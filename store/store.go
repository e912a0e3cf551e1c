package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amosavian/WebNativeBridgeKit/errors"
)

// Item is a stored credential. Secret is omitted from Items listings so
// enumeration never leaks secret material.
type Item struct {
	Service    string
	Account    string
	Secret     []byte
	ModifiedAt time.Time
}

// SecureStore persists credentials keyed by (service, account).
// Get on a missing pair returns an item-not-found error that callers can
// check with errors.Is against errors.ItemNotFound("", "").
type SecureStore interface {
	Get(ctx context.Context, service, account string) ([]byte, error)
	Set(ctx context.Context, service, account string, secret []byte) error
	Delete(ctx context.Context, service, account string) error
	Items(ctx context.Context, service string) ([]Item, error)
}

type memoryKey struct {
	service string
	account string
}

type memoryItem struct {
	secret     []byte
	modifiedAt time.Time
}

// Memory is an in-process SecureStore for tests and ephemeral embedders.
type Memory struct {
	mu    sync.RWMutex
	items map[memoryKey]memoryItem
	now   func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[memoryKey]memoryItem),
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, service, account string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[memoryKey{service, account}]
	if !ok {
		return nil, errors.ItemNotFound(service, account)
	}
	secret := make([]byte, len(item.secret))
	copy(secret, item.secret)
	return secret, nil
}

func (m *Memory) Set(_ context.Context, service, account string, secret []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(secret))
	copy(stored, secret)
	m.items[memoryKey{service, account}] = memoryItem{secret: stored, modifiedAt: m.now()}
	return nil
}

func (m *Memory) Delete(_ context.Context, service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey{service, account}
	if _, ok := m.items[key]; !ok {
		return errors.ItemNotFound(service, account)
	}
	delete(m.items, key)
	return nil
}

func (m *Memory) Items(_ context.Context, service string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Item
	for key, item := range m.items {
		if key.service != service {
			continue
		}
		out = append(out, Item{
			Service:    key.service,
			Account:    key.account,
			ModifiedAt: item.modifiedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out, nil
}
