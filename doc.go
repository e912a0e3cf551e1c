// Package webnativebridge exposes native device capabilities to JavaScript
// running inside an embedded page surface.
//
// A page script calls a generated stub, the call crosses the bridge as a
// flat {functionName, ...namedArgs} message on a channel named after the
// target module, a registry routes it to the registered native handler, and
// the result or error is marshaled back to settle the page-side promise.
// Native state changes travel the other way as custom script events.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	webnativebridge/     Root package with identifier types, Surface, and the handler contract
//	├── value/           Tagged-variant value exchanged across the boundary
//	├── registry/        Module/function registry with single-point coordination
//	├── module/          Module descriptors and generated page glue scripts
//	├── dispatch/        The dispatch core: call parsing, routing, reply settlement
//	├── event/           Native notification sources and per-surface event delivery
//	├── policy/          HCL bridge policy: module allowlists, origin rules
//	├── store/           Secure credential storage backends
//	├── surface/         Page surface implementations (goja-backed engine)
//	├── capability/      Built-in capability modules (device, biometrics, ...)
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Register a module and dispatch a call:
//
//	desc, err := device.New(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg := registry.New()
//	if err := desc.RegisterInto(reg); err != nil {
//	    log.Fatal(err)
//	}
//
//	core := dispatch.NewCore(reg, dispatch.Options{})
//	core.HandleMessage(ctx, surface, "device",
//	    map[string]any{"functionName": "getInfo"},
//	    func(r dispatch.Reply) { ... })
//
// # Reply Contract
//
// Every inbound message settles its reply exactly once with one of three
// shapes: (value, absent) on success, (absent, error text) on handler
// failure, or (absent, absent), the "nothing" reply, for unknown modules
// or functions, malformed payloads, and refused privileged calls. The page
// cannot distinguish "nothing" from "not supported here"; that is the
// design.
//
// # Thread Safety
//
// Registry and the dispatch core are safe for concurrent use; all registry
// access is serialized through one coordination point. Handlers run
// concurrently with no ordering between distinct calls. Surface
// implementations decide their own evaluation threading; the goja surface
// funnels everything through its event loop.
package webnativebridge
