package contacts

import (
	"context"
	"sort"
	"sync"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/module"
	"github.com/amosavian/WebNativeBridgeKit/registry"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// ModuleName is the channel pages call this module on.
const ModuleName bridge.ModuleName = "contacts"

// Contact is one address-book entry as exposed to pages.
type Contact struct {
	ID     string
	Name   string
	Emails []string
	Phones []string
}

// Store is the host's address book. Pick presents the host's contact
// picker and returns nil when the user cancels.
type Store interface {
	Pick(ctx context.Context) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
}

// New builds the contacts module descriptor around the given store.
func New(s Store) (*module.Descriptor, error) {
	m := &contactsModule{store: s}
	return module.New(ModuleName, registry.Functions{
		"pick": m.pick,
		"list": m.list,
	}, module.WithAPIVersion("1.0.0"))
}

type contactsModule struct {
	store Store
}

// pick replies nothing when the user cancels the picker; cancellation is
// not an error the page gets to see.
func (m *contactsModule) pick(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	contact, err := m.store.Pick(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "contact picker")
	}
	if contact == nil {
		return nil, nil
	}
	v := contactValue(*contact)
	return &v, nil
}

func (m *contactsModule) list(ctx context.Context, _ *bridge.CallContext, _ bridge.Args) (*value.Value, error) {
	contacts, err := m.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHandler, errors.KindUnsupported, err, "list contacts")
	}
	items := make([]value.Value, len(contacts))
	for i, c := range contacts {
		items[i] = contactValue(c)
	}
	v := value.List(items...)
	return &v, nil
}

func contactValue(c Contact) value.Value {
	return value.Map(map[string]value.Value{
		"id":     value.String(c.ID),
		"name":   value.String(c.Name),
		"emails": stringList(c.Emails),
		"phones": stringList(c.Phones),
	})
}

func stringList(ss []string) value.Value {
	items := make([]value.Value, len(ss))
	for i, s := range ss {
		items[i] = value.String(s)
	}
	return value.List(items...)
}

// MemoryStore is an in-process Store for tests and examples. Pick returns
// the contact selected by Select, or nil to simulate user cancellation.
type MemoryStore struct {
	mu       sync.Mutex
	contacts map[string]Contact
	selected string
}

func NewMemoryStore(contacts ...Contact) *MemoryStore {
	s := &MemoryStore{contacts: make(map[string]Contact, len(contacts))}
	for _, c := range contacts {
		s.contacts[c.ID] = c
	}
	return s
}

// Select sets which contact the next Pick returns. An empty id simulates
// the user cancelling.
func (s *MemoryStore) Select(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

func (s *MemoryStore) Pick(context.Context) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return nil, nil
	}
	c, ok := s.contacts[s.selected]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *MemoryStore) List(context.Context) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
