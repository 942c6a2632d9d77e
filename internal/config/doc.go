// Package config defines the format-agnostic configuration model: the
// manifest-declared operation definitions with their typed, defaulted
// parameters.
//
// The model deliberately knows nothing about HCL. Parsing lives in
// internal/hcl; the registry consumes the model to validate Go generator
// code against the manifests and to assemble invocation arguments.
package config
