package event

import (
	"sync"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// Notification is one native state-change emission: an event name scoped to
// its module at delivery time, plus an optional structured detail.
type Notification struct {
	Name   bridge.EventName
	Detail value.Value
}

// Source is a native notification source an event publisher subscribes to.
// Subscribe returns a cancel function releasing the subscription; cancel is
// idempotent.
type Source interface {
	Subscribe(fn func(Notification)) (cancel func())
}

// Hub is the in-process notification center. The hosting application posts
// native state changes into it; module descriptors expose per-event Sources
// drawn from it.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[bridge.EventName]map[uint64]func(Notification)
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[bridge.EventName]map[uint64]func(Notification)),
	}
}

// Post raises a notification. Every subscriber of the event name is invoked
// synchronously, in subscription order relative to itself; Post preserves
// the order notifications were raised in.
func (h *Hub) Post(name bridge.EventName, detail value.Value) {
	h.mu.RLock()
	fns := make([]func(Notification), 0, len(h.subs[name]))
	for _, fn := range h.subs[name] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	n := Notification{Name: name, Detail: detail}
	for _, fn := range fns {
		fn(n)
	}
}

// Source returns a Source emitting only notifications posted under name.
func (h *Hub) Source(name bridge.EventName) Source {
	return &hubSource{hub: h, name: name}
}

func (h *Hub) subscribe(name bridge.EventName, fn func(Notification)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[name] == nil {
		h.subs[name] = make(map[uint64]func(Notification))
	}
	h.subs[name][id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[name], id)
			h.mu.Unlock()
		})
	}
}

type hubSource struct {
	hub  *Hub
	name bridge.EventName
}

func (s *hubSource) Subscribe(fn func(Notification)) func() {
	return s.hub.subscribe(s.name, fn)
}

// FuncSource adapts a subscribe function into a Source.
type FuncSource func(fn func(Notification)) (cancel func())

func (f FuncSource) Subscribe(fn func(Notification)) func() { return f(fn) }
