package pulse

import "fmt"

// StepParams controls the playback of one sequence step on sequencer-capable
// hardware.
type StepParams struct {
	// Repetitions counts extra playbacks of the step: 0 plays it once.
	// -1 loops the step forever.
	Repetitions int
	// GoTo is the zero-based step index to jump to after the repetitions are
	// done. -1 continues with the next step.
	GoTo int
	// EventJumpTo is the zero-based trigger input that forces the jump.
	// -1 ignores triggers.
	EventJumpTo int
}

// DefaultStepParams returns the neutral parameter set: play once, continue
// with the next step, ignore triggers.
func DefaultStepParams() StepParams {
	return StepParams{Repetitions: 0, GoTo: -1, EventJumpTo: -1}
}

// SequenceStep references an ensemble by name together with its playback
// parameters.
type SequenceStep struct {
	EnsembleName string
	Params       StepParams
}

// Sequence is an ordered list of by-name ensemble references with playback
// parameters, for pulse generators with sequencing capability. Like the
// ensemble's block references, the ensemble references are weak.
//
// The sequence tracks whether its playback is finite: it is infinite as soon
// as any step loops forever (repetitions of -1). Operations keep this flag
// current without a full rescan where one step's change decides the answer.
type Sequence struct {
	name          string
	steps         []SequenceStep
	finite        bool
	RotatingFrame bool

	SamplingInfo    map[string]any
	MeasurementInfo map[string]any
}

// NewSequence builds a sequence over the given steps. Steps are taken as
// given and the finiteness flag is derived from them.
func NewSequence(name string, rotatingFrame bool, steps ...SequenceStep) *Sequence {
	s := &Sequence{
		name:            name,
		steps:           make([]SequenceStep, len(steps)),
		RotatingFrame:   rotatingFrame,
		SamplingInfo:    make(map[string]any),
		MeasurementInfo: make(map[string]any),
	}
	copy(s.steps, steps)
	s.refreshFinite()
	return s
}

// Name returns the sequence name.
func (s *Sequence) Name() string { return s.name }

// Len returns the number of steps.
func (s *Sequence) Len() int { return len(s.steps) }

// IsFinite reports whether every step has a finite repetition count.
func (s *Sequence) IsFinite() bool { return s.finite }

// StepAt returns the step at the given position.
func (s *Sequence) StepAt(position int) (SequenceStep, error) {
	if position < 0 || position >= len(s.steps) {
		return SequenceStep{}, fmt.Errorf("%w: step %d of sequence %q (len %d)",
			ErrPositionOutOfRange, position, s.name, len(s.steps))
	}
	return s.steps[position], nil
}

// Steps returns a copy of the step list.
func (s *Sequence) Steps() []SequenceStep {
	copied := make([]SequenceStep, len(s.steps))
	copy(copied, s.steps)
	return copied
}

// Insert places a step at the given position, shifting the step at that
// position and all following ones to higher indices. Position len(sequence)
// appends. An infinitely looping step flips the sequence to infinite.
func (s *Sequence) Insert(position int, ensembleName string, params StepParams) error {
	if position < 0 || position > len(s.steps) {
		return fmt.Errorf("%w: insert at %d in sequence %q (len %d)",
			ErrPositionOutOfRange, position, s.name, len(s.steps))
	}
	s.steps = append(s.steps, SequenceStep{})
	copy(s.steps[position+1:], s.steps[position:])
	s.steps[position] = SequenceStep{EnsembleName: ensembleName, Params: params}
	if params.Repetitions < 0 {
		s.finite = false
	}
	return nil
}

// Replace changes the step at the given position. Without a params argument
// only the ensemble name changes; the current parameters and the finiteness
// flag stay untouched. With params, the flag is updated: a now-infinite step
// settles it immediately, while a now-finite step on an infinite sequence
// forces a rescan of the remaining steps.
func (s *Sequence) Replace(position int, ensembleName string, params ...StepParams) error {
	if position < 0 || position >= len(s.steps) {
		return fmt.Errorf("%w: replace at %d in sequence %q (len %d)",
			ErrPositionOutOfRange, position, s.name, len(s.steps))
	}
	if len(params) == 0 {
		s.steps[position].EnsembleName = ensembleName
		return nil
	}
	s.steps[position] = SequenceStep{EnsembleName: ensembleName, Params: params[0]}
	if params[0].Repetitions < 0 {
		s.finite = false
	} else if !s.finite {
		s.refreshFinite()
	}
	return nil
}

// Delete removes the step at the given position. Removing an infinitely
// looping step forces a rescan; removing a finite one cannot change the flag.
func (s *Sequence) Delete(position int) error {
	if position < 0 || position >= len(s.steps) {
		return fmt.Errorf("%w: delete at %d in sequence %q (len %d)",
			ErrPositionOutOfRange, position, s.name, len(s.steps))
	}
	rescan := s.steps[position].Params.Repetitions < 0
	s.steps = append(s.steps[:position], s.steps[position+1:]...)
	if rescan {
		s.refreshFinite()
	}
	return nil
}

// Append adds a step at the end of the sequence.
func (s *Sequence) Append(ensembleName string, params StepParams) error {
	return s.Insert(len(s.steps), ensembleName, params)
}

// Prepend adds a step at the beginning of the sequence.
func (s *Sequence) Prepend(ensembleName string, params StepParams) error {
	return s.Insert(0, ensembleName, params)
}

func (s *Sequence) refreshFinite() {
	s.finite = true
	for _, step := range s.steps {
		if step.Params.Repetitions < 0 {
			s.finite = false
			return
		}
	}
}
