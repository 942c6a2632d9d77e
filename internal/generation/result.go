package generation

import "github.com/byavkin/pulsegen/internal/pulse"

// Result holds everything one generator invocation created, in creation
// order. Most generators fill only Blocks and Ensembles; sequence generators
// add Sequences on top.
type Result struct {
	Blocks    []*pulse.Block
	Ensembles []*pulse.Ensemble
	Sequences []*pulse.Sequence
}

// AddBlock appends a created block.
func (r *Result) AddBlock(b *pulse.Block) { r.Blocks = append(r.Blocks, b) }

// AddEnsemble appends a created ensemble.
func (r *Result) AddEnsemble(e *pulse.Ensemble) { r.Ensembles = append(r.Ensembles, e) }

// AddSequence appends a created sequence.
func (r *Result) AddSequence(s *pulse.Sequence) { r.Sequences = append(r.Sequences, s) }
