package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	bridge "github.com/amosavian/WebNativeBridgeKit"
)

// deliveryQueueSize bounds the per-surface delivery backlog. A surface that
// stops evaluating scripts sheds events instead of stalling every publisher.
const deliveryQueueSize = 128

// Manager forwards native notifications into live page surfaces as custom
// script events.
//
// Subscriptions live in an explicit registration table keyed by SurfaceID.
// The hosting surface calls Detach when it is destroyed; delivery to a
// surface that died without detaching degrades to logged no-ops, never a
// fault. Each surface drains its own FIFO queue, so distinct events for one
// page arrive in the order the notifications were raised; ordering between
// pages is unspecified.
type Manager struct {
	mu       sync.Mutex
	logger   *zap.Logger
	surfaces map[bridge.SurfaceID]*surfaceEntry
	closed   bool
}

type surfaceEntry struct {
	surface bridge.Surface
	cancels []func()
	queue   chan string
	done    chan struct{}
}

// NewManager creates an event manager. A nil logger means no-op logging.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:   logger,
		surfaces: make(map[bridge.SurfaceID]*surfaceEntry),
	}
}

// Attach subscribes the surface to one (module, event) publisher. Each call
// creates an independent subscription; all of a surface's subscriptions are
// released together by Detach.
func (m *Manager) Attach(surface bridge.Surface, module bridge.ModuleName, event bridge.EventName, src Source) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	entry, ok := m.surfaces[surface.ID()]
	if !ok {
		entry = &surfaceEntry{
			surface: surface,
			queue:   make(chan string, deliveryQueueSize),
			done:    make(chan struct{}),
		}
		m.surfaces[surface.ID()] = entry
		go m.drain(entry)
	}

	eventType := module.Qualify(event)
	cancel := src.Subscribe(func(n Notification) {
		m.enqueue(entry, eventType, n)
	})
	entry.cancels = append(entry.cancels, cancel)
	m.mu.Unlock()

	m.logger.Debug("event attached",
		zap.String("surface", surface.ID().String()),
		zap.String("event", eventType))
}

// Detach is the teardown hook for a destroyed surface: it releases every
// subscription registered for the surface and stops its delivery queue.
// Unknown surface IDs are a no-op.
func (m *Manager) Detach(id bridge.SurfaceID) {
	m.mu.Lock()
	entry, ok := m.surfaces[id]
	if ok {
		delete(m.surfaces, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	for _, cancel := range entry.cancels {
		cancel()
	}
	close(entry.done)
	m.logger.Debug("surface detached", zap.String("surface", id.String()))
}

// Close detaches every surface.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	entries := make([]*surfaceEntry, 0, len(m.surfaces))
	for _, entry := range m.surfaces {
		entries = append(entries, entry)
	}
	m.surfaces = make(map[bridge.SurfaceID]*surfaceEntry)
	m.mu.Unlock()

	for _, entry := range entries {
		for _, cancel := range entry.cancels {
			cancel()
		}
		close(entry.done)
	}
}

// Attached reports whether a surface currently has subscriptions.
func (m *Manager) Attached(id bridge.SurfaceID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.surfaces[id]
	return ok
}

func (m *Manager) enqueue(entry *surfaceEntry, eventType string, n Notification) {
	script, err := DeliveryScript(eventType, n)
	if err != nil {
		m.logger.Warn("event detail not serializable",
			zap.String("event", eventType),
			zap.Error(err))
		return
	}
	select {
	case entry.queue <- script:
	case <-entry.done:
	default:
		m.logger.Warn("event delivery queue full, dropping",
			zap.String("surface", entry.surface.ID().String()),
			zap.String("event", eventType))
	}
}

func (m *Manager) drain(entry *surfaceEntry) {
	for {
		select {
		case <-entry.done:
			return
		case script := <-entry.queue:
			if err := entry.surface.EvaluateScript(context.Background(), script); err != nil {
				// Dead or dying surface: delivery is a no-op.
				m.logger.Debug("event delivery skipped",
					zap.String("surface", entry.surface.ID().String()),
					zap.Error(err))
			}
		}
	}
}

// DeliveryScript renders the script that dispatches one custom event into a
// page. The detail is serialized as a JSON literal.
func DeliveryScript(eventType string, n Notification) (string, error) {
	detail, err := json.Marshal(n.Detail)
	if err != nil {
		return "", err
	}
	nameLit, err := json.Marshal(eventType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"window.dispatchEvent(new CustomEvent(%s, {detail: %s}));",
		nameLit, detail), nil
}
