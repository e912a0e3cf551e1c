package module

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"

	"github.com/amosavian/WebNativeBridgeKit/errors"
)

// ScriptOptions configures glue generation.
type ScriptOptions struct {
	// Minify runs the generated source through esbuild.
	Minify bool
}

// Script generates the module's page glue: a namespace object named after
// the module with one message-posting stub per function. The script is
// injected before any page code runs and is safe to evaluate repeatedly:
// each evaluation redefines the namespace, last definition wins.
//
// Each stub packages its keyword arguments as {functionName, ...args} and
// posts them through __bridgePost on the channel named after the module,
// returning whatever the channel returns (a promise on every provided
// surface).
func (d *Descriptor) Script(opts ScriptOptions) (string, error) {
	channelLit, err := json.Marshal(d.name.String())
	if err != nil {
		return "", errors.Evaluation("encode channel name", err)
	}

	names := make([]string, 0, len(d.functions))
	for fname := range d.functions {
		names = append(names, fname.String())
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("(function() {\n")
	b.WriteString("\t\"use strict\";\n")
	fmt.Fprintf(&b, "\tvar channel = %s;\n", channelLit)
	b.WriteString("\tvar api = {};\n")
	if d.apiVersion != nil {
		fmt.Fprintf(&b, "\tapi.__apiVersion = %q;\n", d.apiVersion.String())
	}
	for _, fname := range names {
		nameLit, err := json.Marshal(fname)
		if err != nil {
			return "", errors.Evaluation("encode function name", err)
		}
		fmt.Fprintf(&b, "\tapi[%s] = function(args) {\n", nameLit)
		b.WriteString("\t\tvar payload = Object.assign({}, args || {});\n")
		fmt.Fprintf(&b, "\t\tpayload.functionName = %s;\n", nameLit)
		b.WriteString("\t\treturn globalThis.__bridgePost(channel, payload);\n")
		b.WriteString("\t};\n")
	}
	fmt.Fprintf(&b, "\tglobalThis[%s] = api;\n", channelLit)
	b.WriteString("})();\n")

	script := b.String()
	if !opts.Minify {
		return script, nil
	}

	result := esbuild.Transform(script, esbuild.TransformOptions{
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
	})
	if len(result.Errors) > 0 {
		return "", errors.Evaluation("minify glue script",
			fmt.Errorf("%s", result.Errors[0].Text))
	}
	return string(result.Code), nil
}

// Scripts concatenates the glue of several descriptors in order, for
// surfaces that inject one combined user script.
func Scripts(opts ScriptOptions, descriptors ...*Descriptor) (string, error) {
	var b strings.Builder
	for _, d := range descriptors {
		script, err := d.Script(opts)
		if err != nil {
			return "", err
		}
		b.WriteString(script)
	}
	return b.String(), nil
}
