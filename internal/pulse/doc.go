// Package pulse defines the hardware-agnostic object model for pulsed
// experiments.
//
// The model is a three-level hierarchy. An Element is an atomic timed unit
// assigning one output per channel for a duration. A Block is an ordered list
// of Elements sharing a single channel set, with derived totals. A Block
// Ensemble references Blocks by name and adds per-step repetition counts; a
// Sequence references Ensembles by name and adds per-step playback control
// parameters. The by-name references are deliberately weak: container objects
// stay valid when a referenced entity is renamed or deleted, and resolution
// against a live table happens elsewhere (see internal/store).
//
// Every entity converts to and from a declarative record made of plain data,
// so the whole hierarchy can be serialized without code references.
package pulse
