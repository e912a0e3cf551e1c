// Package policy decodes declarative bridge access policies from HCL and
// serves as the dispatch gate: per-module enable switches and per-module
// origin allowlists.
//
// A policy document looks like:
//
//	bridge {
//	  default_allow = true
//	}
//
//	module "biometrics" {
//	  enabled         = true
//	  allowed_origins = ["https://app.example.com"]
//	}
//
// Modules without a block follow bridge.default_allow; modules without an
// allowed_origins list accept calls from any origin. A nil or zero-value
// Policy allows everything, so embedders can wire the gate unconditionally
// and tighten it later.
package policy
