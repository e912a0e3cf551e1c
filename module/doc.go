// Package module defines capability module descriptors and their generated
// page glue.
//
// A Descriptor declares a module's identity, its function map, and its
// event publishers. It is built once, typically at application startup,
// registered into exactly one registry, and never mutated:
//
//	desc, err := module.New("clipboard",
//	    registry.Functions{
//	        "readText":  readText,
//	        "writeText": writeText,
//	    },
//	    module.WithAPIVersion("1.0.0"),
//	)
//
// Script derives the page-side companion from the function map: a namespace
// object with one thin message-posting stub per function, injected into
// every page before its own code runs. The generation is purely mechanical
// and idempotent; regenerate whenever the function map changes. Pass
// ScriptOptions{Minify: true} to run the output through esbuild.
package module
