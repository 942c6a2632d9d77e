// Package waveform defines the opaque, named, parameterized description of an
// analog signal shape assigned to a channel for the duration of an element.
//
// A Spec never synthesizes samples; it only carries the shape name and its
// numeric parameters, and round-trips losslessly through a declarative
// {name, params} record. Reconstruction from records goes through a Catalog,
// which maps shape names to their expected parameter sets.
package waveform

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for record reconstruction.
var (
	// ErrUnknownShape indicates a record named a shape the catalog does not know.
	ErrUnknownShape = errors.New("waveform: unknown shape")

	// ErrShapeParams indicates a record's parameter set does not match the
	// shape's declared parameters.
	ErrShapeParams = errors.New("waveform: parameter set does not match shape")
)

// Spec is an immutable waveform description: a shape name plus its parameters.
// The zero value is not a valid Spec; use the shape constructors or a Catalog.
type Spec struct {
	name   string
	params map[string]float64
}

func newSpec(name string, params map[string]float64) Spec {
	copied := make(map[string]float64, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Spec{name: name, params: copied}
}

// Idle is the "output nothing" shape.
func Idle() Spec {
	return newSpec("Idle", nil)
}

// DC is a constant voltage level.
func DC(voltage float64) Spec {
	return newSpec("DC", map[string]float64{"voltage": voltage})
}

// Sin is a single sine tone. Amplitude in volts, frequency in Hz, phase in degrees.
func Sin(amplitude, frequency, phase float64) Spec {
	return newSpec("Sin", map[string]float64{
		"amplitude": amplitude,
		"frequency": frequency,
		"phase":     phase,
	})
}

// DoubleSin is the sum of two sine tones.
func DoubleSin(amplitude1, amplitude2, frequency1, frequency2, phase1, phase2 float64) Spec {
	return newSpec("DoubleSin", map[string]float64{
		"amplitude_1": amplitude1,
		"amplitude_2": amplitude2,
		"frequency_1": frequency1,
		"frequency_2": frequency2,
		"phase_1":     phase1,
		"phase_2":     phase2,
	})
}

// TripleSin is the sum of three sine tones.
func TripleSin(amplitude1, amplitude2, amplitude3, frequency1, frequency2, frequency3, phase1, phase2, phase3 float64) Spec {
	return newSpec("TripleSin", map[string]float64{
		"amplitude_1": amplitude1,
		"amplitude_2": amplitude2,
		"amplitude_3": amplitude3,
		"frequency_1": frequency1,
		"frequency_2": frequency2,
		"frequency_3": frequency3,
		"phase_1":     phase1,
		"phase_2":     phase2,
		"phase_3":     phase3,
	})
}

// Name returns the shape name, e.g. "Sin".
func (s Spec) Name() string { return s.name }

// Params returns a copy of the parameter mapping.
func (s Spec) Params() map[string]float64 {
	copied := make(map[string]float64, len(s.params))
	for k, v := range s.params {
		copied[k] = v
	}
	return copied
}

// Param returns a single parameter value and whether it is present.
func (s Spec) Param(name string) (float64, bool) {
	v, ok := s.params[name]
	return v, ok
}

// Equal reports value equality: same shape name and identical parameters.
func (s Spec) Equal(other Spec) bool {
	if s.name != other.name || len(s.params) != len(other.params) {
		return false
	}
	for k, v := range s.params {
		ov, ok := other.params[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Record is the declarative representation of a Spec.
type Record struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params"`
}

// Record returns the declarative representation of the Spec.
func (s Spec) Record() Record {
	return Record{Name: s.name, Params: s.Params()}
}

// Catalog maps shape names to their expected parameter names. It is the
// lookup used to reconstruct Specs from records.
type Catalog struct {
	shapes map[string][]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{shapes: make(map[string][]string)}
}

// Register declares a shape and its exact parameter names. Registering the
// same shape name twice is a programmer error and panics.
func (c *Catalog) Register(name string, paramNames ...string) {
	if _, exists := c.shapes[name]; exists {
		panic(fmt.Sprintf("waveform shape %q already registered", name))
	}
	c.shapes[name] = paramNames
}

// Shapes returns the sorted names of all registered shapes.
func (c *Catalog) Shapes() []string {
	names := make([]string, 0, len(c.shapes))
	for name := range c.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromRecord reconstructs a Spec from its declarative record. The record's
// shape name must be registered and its parameter keys must match the
// registered parameter set exactly.
func (c *Catalog) FromRecord(rec Record) (Spec, error) {
	want, ok := c.shapes[rec.Name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownShape, rec.Name)
	}
	if len(rec.Params) != len(want) {
		return Spec{}, fmt.Errorf("%w: %q expects %d parameters, record has %d",
			ErrShapeParams, rec.Name, len(want), len(rec.Params))
	}
	for _, name := range want {
		if _, ok := rec.Params[name]; !ok {
			return Spec{}, fmt.Errorf("%w: %q is missing parameter %q", ErrShapeParams, rec.Name, name)
		}
	}
	return newSpec(rec.Name, rec.Params), nil
}

// Default returns a catalog preloaded with the standard shapes.
func Default() *Catalog {
	c := NewCatalog()
	c.Register("Idle")
	c.Register("DC", "voltage")
	c.Register("Sin", "amplitude", "frequency", "phase")
	c.Register("DoubleSin",
		"amplitude_1", "amplitude_2",
		"frequency_1", "frequency_2",
		"phase_1", "phase_2")
	c.Register("TripleSin",
		"amplitude_1", "amplitude_2", "amplitude_3",
		"frequency_1", "frequency_2", "frequency_3",
		"phase_1", "phase_2", "phase_3")
	return c
}
