// Package event pushes native state-change notifications back into pages as
// custom script events.
//
// # Sources and the Hub
//
// A Source is any subscribable native notification stream. The Hub is the
// in-process implementation: the hosting application posts notifications by
// name, and module descriptors declare their event publishers as
// hub.Source(name).
//
//	hub := event.NewHub()
//	hub.Post("keyboardShow", value.Map(map[string]value.Value{
//	    "duration": value.Number(0.25),
//	}))
//
// # Delivery
//
// The Manager keeps an explicit registration table keyed by surface ID,
// the bridge's replacement for weak-reference bookkeeping. Attach wires a
// (surface, module, event) triple to a Source; Detach is the teardown hook
// the surface owner invokes on destruction. A notification becomes one
//
//	window.dispatchEvent(new CustomEvent("module.event", {detail: ...}))
//
// evaluation per attached surface. Per-surface delivery is FIFO; a surface
// that fails evaluation (destroyed mid-flight) drops the event silently.
package event
