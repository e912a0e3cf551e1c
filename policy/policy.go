package policy

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
)

// hclPolicyFile is the top-level structure of a policy document.
type hclPolicyFile struct {
	Bridge  *hclBridgeBlock   `hcl:"bridge,block"`
	Modules []*hclModuleBlock `hcl:"module,block"`
}

type hclBridgeBlock struct {
	DefaultAllow *bool `hcl:"default_allow,optional"`
}

type hclModuleBlock struct {
	Name           string   `hcl:"name,label"`
	Enabled        *bool    `hcl:"enabled,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

type moduleRule struct {
	enabled bool
	origins []bridge.Origin
}

// Policy is the bridge's declarative gate: which modules may be dispatched,
// and from which origins. The zero value allows everything.
type Policy struct {
	defaultAllow bool
	hasRules     bool
	modules      map[bridge.ModuleName]moduleRule
}

// Option configures policy decoding.
type Option func(*decodeConfig)

type decodeConfig struct {
	variables map[string]cty.Value
}

// WithVariables exposes host-supplied values to the policy document under
// the var.* namespace, e.g. allowed_origins = [var.app_origin].
func WithVariables(vars map[string]cty.Value) Option {
	return func(c *decodeConfig) {
		c.variables = vars
	}
}

// Load reads and decodes a policy file.
func Load(path string, opts ...Option) (*Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhasePolicy, errors.KindInvalidInput, err, "read policy file")
	}
	return Decode(src, path, opts...)
}

// Decode parses an HCL policy document.
func Decode(src []byte, filename string, opts ...Option) (*Policy, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.PhasePolicy, errors.KindInvalidData, diags, "parse policy document")
	}

	evalCtx := &hcl.EvalContext{}
	if len(cfg.variables) > 0 {
		evalCtx.Variables = map[string]cty.Value{
			"var": cty.ObjectVal(cfg.variables),
		}
	}

	var parsed hclPolicyFile
	diags = gohcl.DecodeBody(file.Body, evalCtx, &parsed)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.PhasePolicy, errors.KindInvalidData, diags, "decode policy document")
	}

	p := &Policy{
		defaultAllow: true,
		hasRules:     true,
		modules:      make(map[bridge.ModuleName]moduleRule, len(parsed.Modules)),
	}
	if parsed.Bridge != nil && parsed.Bridge.DefaultAllow != nil {
		p.defaultAllow = *parsed.Bridge.DefaultAllow
	}

	for _, block := range parsed.Modules {
		if block.Name == "" {
			return nil, errors.InvalidInput(errors.PhasePolicy, "module block requires a name label")
		}
		rule := moduleRule{enabled: true}
		if block.Enabled != nil {
			rule.enabled = *block.Enabled
		}
		for _, raw := range block.AllowedOrigins {
			origin := bridge.ParseOrigin(raw)
			if origin.IsZero() {
				return nil, errors.New(errors.PhasePolicy, errors.KindInvalidData).
					Path("module", block.Name, "allowed_origins").
					Detail("invalid origin %q", raw).
					Build()
			}
			rule.origins = append(rule.origins, origin)
		}
		p.modules[bridge.ModuleName(block.Name)] = rule
	}
	return p, nil
}

// AllowModule reports whether the module may be dispatched at all.
func (p *Policy) AllowModule(name bridge.ModuleName) bool {
	if p == nil || !p.hasRules {
		return true
	}
	if rule, ok := p.modules[name]; ok {
		return rule.enabled
	}
	return p.defaultAllow
}

// AllowOrigin reports whether calls from origin may reach the module.
// Modules without an allowed_origins list accept every origin; a listed
// module refuses the zero origin unconditionally.
func (p *Policy) AllowOrigin(name bridge.ModuleName, origin bridge.Origin) bool {
	if p == nil || !p.hasRules {
		return true
	}
	rule, ok := p.modules[name]
	if !ok || len(rule.origins) == 0 {
		return true
	}
	for _, allowed := range rule.origins {
		if allowed.Equal(origin) {
			return true
		}
	}
	return false
}
