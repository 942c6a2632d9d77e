package pulse

import (
	"fmt"

	"github.com/byavkin/pulsegen/internal/waveform"
)

// The record types are the declarative representations of the entity
// hierarchy: plain data with no code references, suitable for JSON. Records
// of containers embed the records of what they own directly (elements inside
// blocks) and plain names for what they reference weakly (blocks inside
// ensembles, ensembles inside sequences).

// ElementRecord is the declarative form of an Element.
type ElementRecord struct {
	DurationS     float64                    `json:"duration_s"`
	IncrementS    float64                    `json:"increment_s"`
	DigitalHigh   map[string]bool            `json:"digital_high"`
	PulseFunction map[string]waveform.Record `json:"pulse_function"`
}

// Record returns the declarative form of the element.
func (e Element) Record() ElementRecord {
	rec := ElementRecord{
		DurationS:     e.durationS,
		IncrementS:    e.incrementS,
		DigitalHigh:   make(map[string]bool, len(e.digital)),
		PulseFunction: make(map[string]waveform.Record, len(e.analog)),
	}
	for ch, high := range e.digital {
		rec.DigitalHigh[string(ch)] = high
	}
	for ch, spec := range e.analog {
		rec.PulseFunction[string(ch)] = spec.Record()
	}
	return rec
}

// ElementFromRecord rebuilds an Element, resolving waveform shapes through
// the given catalog.
func ElementFromRecord(rec ElementRecord, shapes *waveform.Catalog) (Element, error) {
	analog := make(map[Channel]waveform.Spec, len(rec.PulseFunction))
	for name, waveRec := range rec.PulseFunction {
		spec, err := shapes.FromRecord(waveRec)
		if err != nil {
			return Element{}, fmt.Errorf("channel %q: %w", name, err)
		}
		analog[Channel(name)] = spec
	}
	digital := make(map[Channel]bool, len(rec.DigitalHigh))
	for name, high := range rec.DigitalHigh {
		digital[Channel(name)] = high
	}
	return NewElement(rec.DurationS, rec.IncrementS, analog, digital)
}

// BlockRecord is the declarative form of a Block.
type BlockRecord struct {
	Name        string          `json:"name"`
	ElementList []ElementRecord `json:"element_list"`
}

// Record returns the declarative form of the block.
func (b *Block) Record() BlockRecord {
	rec := BlockRecord{
		Name:        b.name,
		ElementList: make([]ElementRecord, 0, len(b.elements)),
	}
	for _, el := range b.elements {
		rec.ElementList = append(rec.ElementList, el.Record())
	}
	return rec
}

// BlockFromRecord rebuilds a Block including its derived totals.
func BlockFromRecord(rec BlockRecord, shapes *waveform.Catalog) (*Block, error) {
	elements := make([]Element, 0, len(rec.ElementList))
	for i, elRec := range rec.ElementList {
		el, err := ElementFromRecord(elRec, shapes)
		if err != nil {
			return nil, fmt.Errorf("element %d of block %q: %w", i, rec.Name, err)
		}
		elements = append(elements, el)
	}
	return NewBlock(rec.Name, elements...)
}

// EnsembleStepRecord is the declarative form of one ensemble step.
type EnsembleStepRecord struct {
	BlockName   string `json:"block_name"`
	Repetitions int    `json:"repetitions"`
}

// EnsembleRecord is the declarative form of an Ensemble.
type EnsembleRecord struct {
	Name                   string               `json:"name"`
	RotatingFrame          bool                 `json:"rotating_frame"`
	BlockList              []EnsembleStepRecord `json:"block_list"`
	SamplingInformation    map[string]any       `json:"sampling_information"`
	MeasurementInformation map[string]any       `json:"measurement_information"`
}

// Record returns the declarative form of the ensemble, metadata included.
func (e *Ensemble) Record() EnsembleRecord {
	rec := EnsembleRecord{
		Name:                   e.name,
		RotatingFrame:          e.RotatingFrame,
		BlockList:              make([]EnsembleStepRecord, 0, len(e.steps)),
		SamplingInformation:    copyMetadata(e.SamplingInfo),
		MeasurementInformation: copyMetadata(e.MeasurementInfo),
	}
	for _, step := range e.steps {
		rec.BlockList = append(rec.BlockList, EnsembleStepRecord{
			BlockName:   step.BlockName,
			Repetitions: step.Repetitions,
		})
	}
	return rec
}

// EnsembleFromRecord rebuilds an Ensemble, metadata included.
func EnsembleFromRecord(rec EnsembleRecord) *Ensemble {
	steps := make([]EnsembleStep, 0, len(rec.BlockList))
	for _, stepRec := range rec.BlockList {
		steps = append(steps, EnsembleStep{
			BlockName:   stepRec.BlockName,
			Repetitions: stepRec.Repetitions,
		})
	}
	e := NewEnsemble(rec.Name, rec.RotatingFrame, steps...)
	e.SamplingInfo = copyMetadata(rec.SamplingInformation)
	e.MeasurementInfo = copyMetadata(rec.MeasurementInformation)
	return e
}

// StepParamsRecord is the declarative form of StepParams.
type StepParamsRecord struct {
	Repetitions int `json:"repetitions"`
	GoTo        int `json:"go_to"`
	EventJumpTo int `json:"event_jump_to"`
}

// SequenceStepRecord is the declarative form of one sequence step.
type SequenceStepRecord struct {
	EnsembleName string           `json:"ensemble_name"`
	Params       StepParamsRecord `json:"params"`
}

// SequenceRecord is the declarative form of a Sequence.
type SequenceRecord struct {
	Name                   string               `json:"name"`
	RotatingFrame          bool                 `json:"rotating_frame"`
	EnsembleList           []SequenceStepRecord `json:"ensemble_list"`
	SamplingInformation    map[string]any       `json:"sampling_information"`
	MeasurementInformation map[string]any       `json:"measurement_information"`
}

// Record returns the declarative form of the sequence, metadata included.
func (s *Sequence) Record() SequenceRecord {
	rec := SequenceRecord{
		Name:                   s.name,
		RotatingFrame:          s.RotatingFrame,
		EnsembleList:           make([]SequenceStepRecord, 0, len(s.steps)),
		SamplingInformation:    copyMetadata(s.SamplingInfo),
		MeasurementInformation: copyMetadata(s.MeasurementInfo),
	}
	for _, step := range s.steps {
		rec.EnsembleList = append(rec.EnsembleList, SequenceStepRecord{
			EnsembleName: step.EnsembleName,
			Params: StepParamsRecord{
				Repetitions: step.Params.Repetitions,
				GoTo:        step.Params.GoTo,
				EventJumpTo: step.Params.EventJumpTo,
			},
		})
	}
	return rec
}

// SequenceFromRecord rebuilds a Sequence, rederiving the finiteness flag.
func SequenceFromRecord(rec SequenceRecord) *Sequence {
	steps := make([]SequenceStep, 0, len(rec.EnsembleList))
	for _, stepRec := range rec.EnsembleList {
		steps = append(steps, SequenceStep{
			EnsembleName: stepRec.EnsembleName,
			Params: StepParams{
				Repetitions: stepRec.Params.Repetitions,
				GoTo:        stepRec.Params.GoTo,
				EventJumpTo: stepRec.Params.EventJumpTo,
			},
		})
	}
	s := NewSequence(rec.Name, rec.RotatingFrame, steps...)
	s.SamplingInfo = copyMetadata(rec.SamplingInformation)
	s.MeasurementInfo = copyMetadata(rec.MeasurementInformation)
	return s
}

// copyMetadata makes a shallow copy of a free-form metadata map, normalizing
// nil to an empty map.
func copyMetadata(meta map[string]any) map[string]any {
	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
