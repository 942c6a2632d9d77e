package pulse

import "fmt"

// EnsembleStep references a block by name and says how often it repeats.
// Repetitions counts extra playbacks: 0 plays the block once, 1 twice.
type EnsembleStep struct {
	BlockName   string
	Repetitions int
}

// Ensemble is the construction plan for one sampled waveform: an ordered list
// of by-name block references with repetition counts. The references are
// weak; renaming or deleting a block elsewhere does not touch the ensemble.
//
// SamplingInfo and MeasurementInfo are free-form metadata populated by later
// pipeline stages. The ensemble itself never interprets them, it only carries
// them through serialization.
type Ensemble struct {
	name          string
	steps         []EnsembleStep
	RotatingFrame bool

	SamplingInfo    map[string]any
	MeasurementInfo map[string]any
}

// NewEnsemble builds an ensemble over the given steps. Steps are taken as
// given; only the mutating operations validate repetition counts.
func NewEnsemble(name string, rotatingFrame bool, steps ...EnsembleStep) *Ensemble {
	e := &Ensemble{
		name:            name,
		steps:           make([]EnsembleStep, len(steps)),
		RotatingFrame:   rotatingFrame,
		SamplingInfo:    make(map[string]any),
		MeasurementInfo: make(map[string]any),
	}
	copy(e.steps, steps)
	return e
}

// Name returns the ensemble name.
func (e *Ensemble) Name() string { return e.name }

// Len returns the number of steps.
func (e *Ensemble) Len() int { return len(e.steps) }

// StepAt returns the step at the given position.
func (e *Ensemble) StepAt(position int) (EnsembleStep, error) {
	if position < 0 || position >= len(e.steps) {
		return EnsembleStep{}, fmt.Errorf("%w: step %d of ensemble %q (len %d)",
			ErrPositionOutOfRange, position, e.name, len(e.steps))
	}
	return e.steps[position], nil
}

// Steps returns a copy of the step list.
func (e *Ensemble) Steps() []EnsembleStep {
	copied := make([]EnsembleStep, len(e.steps))
	copy(copied, e.steps)
	return copied
}

// Insert places a step at the given position, shifting the step at that
// position and all following ones to higher indices. Position len(ensemble)
// appends.
func (e *Ensemble) Insert(position int, blockName string, repetitions int) error {
	if position < 0 || position > len(e.steps) {
		return fmt.Errorf("%w: insert at %d in ensemble %q (len %d)",
			ErrPositionOutOfRange, position, e.name, len(e.steps))
	}
	if repetitions < 0 {
		return fmt.Errorf("%w: %d for block %q", ErrNegativeRepetitions, repetitions, blockName)
	}
	e.steps = append(e.steps, EnsembleStep{})
	copy(e.steps[position+1:], e.steps[position:])
	e.steps[position] = EnsembleStep{BlockName: blockName, Repetitions: repetitions}
	return nil
}

// Replace changes the step at the given position. Without a repetitions
// argument only the block name changes and the current count is kept.
func (e *Ensemble) Replace(position int, blockName string, repetitions ...int) error {
	if position < 0 || position >= len(e.steps) {
		return fmt.Errorf("%w: replace at %d in ensemble %q (len %d)",
			ErrPositionOutOfRange, position, e.name, len(e.steps))
	}
	if len(repetitions) == 0 {
		e.steps[position].BlockName = blockName
		return nil
	}
	if repetitions[0] < 0 {
		return fmt.Errorf("%w: %d for block %q", ErrNegativeRepetitions, repetitions[0], blockName)
	}
	e.steps[position] = EnsembleStep{BlockName: blockName, Repetitions: repetitions[0]}
	return nil
}

// Delete removes the step at the given position.
func (e *Ensemble) Delete(position int) error {
	if position < 0 || position >= len(e.steps) {
		return fmt.Errorf("%w: delete at %d in ensemble %q (len %d)",
			ErrPositionOutOfRange, position, e.name, len(e.steps))
	}
	e.steps = append(e.steps[:position], e.steps[position+1:]...)
	return nil
}

// Append adds a step at the end of the ensemble.
func (e *Ensemble) Append(blockName string, repetitions int) error {
	return e.Insert(len(e.steps), blockName, repetitions)
}

// Prepend adds a step at the beginning of the ensemble.
func (e *Ensemble) Prepend(blockName string, repetitions int) error {
	return e.Insert(0, blockName, repetitions)
}
