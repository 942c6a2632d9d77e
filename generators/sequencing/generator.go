// Package sequencing provides generate operations for hardware with
// sequencing capability, where each sweep point is its own ensemble chained
// by a sequence instead of one long waveform.
package sequencing

import (
	"context"
	"fmt"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/pulse"
)

// Generator builds sequence-based measurement entities from the active
// hardware settings.
type Generator struct {
	generation.Base
}

// New creates the sequencing generator reading its settings from provider.
func New(provider generation.SettingsProvider) *Generator {
	return &Generator{Base: generation.NewBase(provider)}
}

// T1SequencingArgs are the arguments of the t1_sequencing operation.
type T1SequencingArgs struct {
	Name      string  `gen:"name"`
	TauStart  float64 `gen:"tau_start"`
	TauStep   float64 `gen:"tau_step"`
	NumPoints int     `gen:"num_of_points"`
}

// GenerateT1Sequencing creates the T1 relaxation measurement as a sequence:
// one ensemble per relaxation time tau, each waiting for tau and reading out
// with the laser, chained into a finite sequence. A configured sync channel
// adds a final marker step.
func (g *Generator) GenerateT1Sequencing(ctx context.Context, args *T1SequencingArgs) (*generation.Result, error) {
	if args.NumPoints < 1 {
		return nil, fmt.Errorf("t1 sequencing needs at least one sweep point, got %d", args.NumPoints)
	}
	s := g.Settings()

	result := &generation.Result{}
	sequence := pulse.NewSequence(args.Name, false)

	taus := generation.Sweep(args.TauStart, args.TauStep, args.NumPoints)
	for i, tau := range taus {
		partName := fmt.Sprintf("%s_pt%02d", args.Name, i)

		relax, err := g.IdleElement(tau, 0)
		if err != nil {
			return nil, err
		}
		laser, err := g.LaserGateElement(s.LaserLength, 0)
		if err != nil {
			return nil, err
		}
		delay, err := g.DelayGateElement()
		if err != nil {
			return nil, err
		}
		wait, err := g.IdleElement(s.WaitTime, 0)
		if err != nil {
			return nil, err
		}

		block, err := pulse.NewBlock(partName, relax, laser, delay, wait)
		if err != nil {
			return nil, err
		}
		result.AddBlock(block)
		result.AddEnsemble(pulse.NewEnsemble(partName, false,
			pulse.EnsembleStep{BlockName: block.Name()}))

		if err := sequence.Append(partName, pulse.DefaultStepParams()); err != nil {
			return nil, err
		}
	}

	if s.SyncChannel != "" {
		if err := g.appendSyncEnsemble(result, sequence, args.Name+"_sync"); err != nil {
			return nil, err
		}
	}

	sequence.MeasurementInfo["alternating"] = false
	sequence.MeasurementInfo["laser_ignore_list"] = []int{}
	sequence.MeasurementInfo["controlled_variable"] = taus
	sequence.MeasurementInfo["units"] = []string{"s", ""}
	sequence.MeasurementInfo["labels"] = []string{"Tau relaxation time", "Signal"}
	sequence.MeasurementInfo["number_of_lasers"] = args.NumPoints
	result.AddSequence(sequence)

	ctxlog.FromContext(ctx).Debug("Generated T1 sequence measurement.",
		"name", args.Name, "points", args.NumPoints)
	return result, nil
}

// appendSyncEnsemble files a one-element sync marker block and ensemble and
// chains it as the final sequence step.
func (g *Generator) appendSyncEnsemble(result *generation.Result, sequence *pulse.Sequence, name string) error {
	el, err := g.SyncElement()
	if err != nil {
		return err
	}
	block, err := pulse.NewBlock(name, el)
	if err != nil {
		return err
	}
	result.AddBlock(block)
	result.AddEnsemble(pulse.NewEnsemble(name, false,
		pulse.EnsembleStep{BlockName: block.Name()}))
	return sequence.Append(name, pulse.DefaultStepParams())
}
