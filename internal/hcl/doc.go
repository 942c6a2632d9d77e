// Package hcl parses the two HCL surfaces of the application: the settings
// profile (pulser hardware plus experiment parameters) and the operation
// manifests that declare each generate operation's parameters with types and
// literal defaults.
//
// Parsing translates into the format-agnostic types of internal/config and
// internal/generation; nothing outside this package touches HCL syntax.
package hcl
