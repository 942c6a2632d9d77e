// Package generation provides the context that predefined pulse generators
// run in: a read-through view of the hardware and experiment settings plus
// element constructors for the recurring building blocks (laser pulses,
// microwave drives, triggers, delays).
//
// Generator plugins embed Base and produce a Result holding every block,
// ensemble and sequence they created. Settings are read through a provider on
// every access, so a generator always sees the current values of the session
// it serves.
package generation
