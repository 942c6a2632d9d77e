// Package store provides the thread-safe, in-memory session tables holding
// saved pulse entities by name.
//
// Saving overwrites any previous entity of the same name. References between
// entities stay by-name only: deleting a block that an ensemble still names
// is allowed, and the dangling reference surfaces when the ensemble is
// resolved, not before.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/pulse"
)

var (
	// ErrBlockNotFound reports a block name with no saved block behind it.
	ErrBlockNotFound = errors.New("store: block not found")
	// ErrEnsembleNotFound reports an ensemble name with no saved ensemble.
	ErrEnsembleNotFound = errors.New("store: ensemble not found")
	// ErrSequenceNotFound reports a sequence name with no saved sequence.
	ErrSequenceNotFound = errors.New("store: sequence not found")
)

// Store holds the saved blocks, ensembles and sequences of one session.
type Store struct {
	mu        sync.RWMutex
	blocks    map[string]*pulse.Block
	ensembles map[string]*pulse.Ensemble
	sequences map[string]*pulse.Sequence
}

// New creates an empty session store.
func New() *Store {
	return &Store{
		blocks:    make(map[string]*pulse.Block),
		ensembles: make(map[string]*pulse.Ensemble),
		sequences: make(map[string]*pulse.Sequence),
	}
}

// SaveBlock files a block under its name, replacing any previous one.
func (s *Store) SaveBlock(b *pulse.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[b.Name()] = b
}

// Block retrieves a saved block by name.
func (s *Store) Block(name string) (*pulse.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[name]
	return b, ok
}

// DeleteBlock removes a saved block and reports whether it existed.
// Ensembles referencing the name are left untouched.
func (s *Store) DeleteBlock(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blocks[name]
	delete(s.blocks, name)
	return ok
}

// BlockNames returns the sorted names of all saved blocks.
func (s *Store) BlockNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.blocks)
}

// SaveEnsemble files an ensemble under its name, replacing any previous one.
// The blocks it references do not have to be saved.
func (s *Store) SaveEnsemble(e *pulse.Ensemble) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensembles[e.Name()] = e
}

// Ensemble retrieves a saved ensemble by name.
func (s *Store) Ensemble(name string) (*pulse.Ensemble, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.ensembles[name]
	return e, ok
}

// DeleteEnsemble removes a saved ensemble and reports whether it existed.
func (s *Store) DeleteEnsemble(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ensembles[name]
	delete(s.ensembles, name)
	return ok
}

// EnsembleNames returns the sorted names of all saved ensembles.
func (s *Store) EnsembleNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.ensembles)
}

// SaveSequence files a sequence under its name, replacing any previous one.
func (s *Store) SaveSequence(seq *pulse.Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[seq.Name()] = seq
}

// Sequence retrieves a saved sequence by name.
func (s *Store) Sequence(name string) (*pulse.Sequence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.sequences[name]
	return seq, ok
}

// DeleteSequence removes a saved sequence and reports whether it existed.
func (s *Store) DeleteSequence(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sequences[name]
	delete(s.sequences, name)
	return ok
}

// SequenceNames returns the sorted names of all saved sequences.
func (s *Store) SequenceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.sequences)
}

// Absorb files every entity of a generation result. A nil result is a no-op.
func (s *Store) Absorb(result *generation.Result) {
	if result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range result.Blocks {
		s.blocks[b.Name()] = b
	}
	for _, e := range result.Ensembles {
		s.ensembles[e.Name()] = e
	}
	for _, seq := range result.Sequences {
		s.sequences[seq.Name()] = seq
	}
}

// EnsembleBlocks resolves the blocks an ensemble references, in first-use
// order with duplicates removed. A step naming a block that is not saved
// makes the resolution fail.
func (s *Store) EnsembleBlocks(e *pulse.Ensemble) ([]*pulse.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blocks []*pulse.Block
	seen := make(map[string]struct{})
	for _, step := range e.Steps() {
		if _, done := seen[step.BlockName]; done {
			continue
		}
		seen[step.BlockName] = struct{}{}

		b, ok := s.blocks[step.BlockName]
		if !ok {
			return nil, fmt.Errorf("%w: %q referenced by ensemble %q", ErrBlockNotFound, step.BlockName, e.Name())
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
