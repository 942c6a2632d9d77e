// Package registry is the glue between generator plugins and their operation
// manifests.
//
// Generator instances are registered explicitly; the registry harvests their
// Generate-prefixed methods into named operations. The public name of an
// operation is the snake_case of the method suffix, so GeneratePulsedODMR
// becomes "pulsed_odmr". When two generators provide the same operation the
// later registration wins, which lets a bench-specific plugin shadow a stock
// one.
//
// Manifests declare each operation's parameters with types and literal
// defaults. After startup the registry is validated: every harvested
// operation must have a manifest definition, every definition a method, and
// every declared parameter a matching, type-compatible field on the method's
// argument struct. Invocation then assembles the argument struct from caller
// values plus manifest defaults.
package registry
