// Package basic provides the stock generate operations: continuous outputs
// for alignment and the standard single-tone pulsed measurements.
package basic

import (
	"context"
	"fmt"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/pulse"
)

// Generator builds the basic measurement entities from the active hardware
// settings.
type Generator struct {
	generation.Base
}

// New creates the basic generator reading its settings from provider.
func New(provider generation.SettingsProvider) *Generator {
	return &Generator{Base: generation.NewBase(provider)}
}

// LaserOnArgs are the arguments of the laser_on operation.
type LaserOnArgs struct {
	Name   string  `gen:"name"`
	Length float64 `gen:"length"`
}

// GenerateLaserOn creates a single continuous laser pulse and an ensemble
// playing it once.
func (g *Generator) GenerateLaserOn(ctx context.Context, args *LaserOnArgs) (*generation.Result, error) {
	laser, err := g.LaserElement(args.Length, 0)
	if err != nil {
		return nil, err
	}
	block, err := pulse.NewBlock(args.Name, laser)
	if err != nil {
		return nil, err
	}

	result := &generation.Result{}
	result.AddBlock(block)
	result.AddEnsemble(pulse.NewEnsemble(args.Name, false,
		pulse.EnsembleStep{BlockName: block.Name()}))

	ctxlog.FromContext(ctx).Debug("Generated continuous laser output.",
		"name", args.Name, "length_s", args.Length)
	return result, nil
}

// LaserMWOnArgs are the arguments of the laser_mw_on operation.
type LaserMWOnArgs struct {
	Name   string  `gen:"name"`
	Length float64 `gen:"length"`
}

// GenerateLaserMWOn creates a continuous laser pulse with the microwave tone
// on throughout, for CW alignment.
func (g *Generator) GenerateLaserMWOn(ctx context.Context, args *LaserMWOnArgs) (*generation.Result, error) {
	s := g.Settings()
	laserMW, err := g.MWLaserElement(args.Length, 0, s.MicrowaveAmplitude, s.MicrowaveFrequency, 0)
	if err != nil {
		return nil, err
	}
	block, err := pulse.NewBlock(args.Name, laserMW)
	if err != nil {
		return nil, err
	}

	result := &generation.Result{}
	result.AddBlock(block)
	result.AddEnsemble(pulse.NewEnsemble(args.Name, false,
		pulse.EnsembleStep{BlockName: block.Name()}))

	ctxlog.FromContext(ctx).Debug("Generated CW laser and microwave output.",
		"name", args.Name, "length_s", args.Length)
	return result, nil
}

// RabiArgs are the arguments of the rabi operation.
type RabiArgs struct {
	Name      string  `gen:"name"`
	TauStart  float64 `gen:"tau_start"`
	TauStep   float64 `gen:"tau_step"`
	NumPoints int     `gen:"num_of_points"`
}

// GenerateRabi creates the Rabi oscillation measurement: one block driving
// the microwave for an incremented spacing tau followed by the laser readout,
// repeated once per sweep point.
func (g *Generator) GenerateRabi(ctx context.Context, args *RabiArgs) (*generation.Result, error) {
	if args.NumPoints < 1 {
		return nil, fmt.Errorf("rabi needs at least one sweep point, got %d", args.NumPoints)
	}
	s := g.Settings()

	mw, err := g.MWElement(args.TauStart, args.TauStep, s.MicrowaveAmplitude, s.MicrowaveFrequency, 0)
	if err != nil {
		return nil, err
	}
	readout, err := g.readoutElements()
	if err != nil {
		return nil, err
	}

	block, err := pulse.NewBlock(args.Name, append([]pulse.Element{mw}, readout...)...)
	if err != nil {
		return nil, err
	}

	result := &generation.Result{}
	result.AddBlock(block)

	ensemble := pulse.NewEnsemble(args.Name, false)
	if err := ensemble.Append(block.Name(), args.NumPoints-1); err != nil {
		return nil, err
	}
	if err := g.AppendSyncStep(result, ensemble); err != nil {
		return nil, err
	}

	taus := generation.Sweep(args.TauStart, args.TauStep, args.NumPoints)
	if err := g.fillMeasurementInfo(ensemble, result.Blocks, taus, "s", "Tau pulse spacing", args.NumPoints); err != nil {
		return nil, err
	}
	result.AddEnsemble(ensemble)

	ctxlog.FromContext(ctx).Debug("Generated Rabi measurement.",
		"name", args.Name, "points", args.NumPoints)
	return result, nil
}

// PulsedODMRArgs are the arguments of the pulsed_odmr operation.
type PulsedODMRArgs struct {
	Name      string  `gen:"name"`
	FreqStart float64 `gen:"freq_start"`
	FreqStep  float64 `gen:"freq_step"`
	NumPoints int     `gen:"num_of_points"`
}

// GeneratePulsedODMR creates the pulsed ODMR measurement: one pi pulse and
// laser readout per frequency point, all in a single block played once.
func (g *Generator) GeneratePulsedODMR(ctx context.Context, args *PulsedODMRArgs) (*generation.Result, error) {
	if args.NumPoints < 1 {
		return nil, fmt.Errorf("pulsed ODMR needs at least one frequency point, got %d", args.NumPoints)
	}
	s := g.Settings()

	readout, err := g.readoutElements()
	if err != nil {
		return nil, err
	}

	freqs := generation.Sweep(args.FreqStart, args.FreqStep, args.NumPoints)
	elements := make([]pulse.Element, 0, 4*args.NumPoints)
	for _, freq := range freqs {
		pi, err := g.MWElement(s.RabiPeriod/2, 0, s.MicrowaveAmplitude, freq, 0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, pi)
		elements = append(elements, readout...)
	}

	block, err := pulse.NewBlock(args.Name, elements...)
	if err != nil {
		return nil, err
	}

	result := &generation.Result{}
	result.AddBlock(block)

	ensemble := pulse.NewEnsemble(args.Name, false)
	if err := ensemble.Append(block.Name(), 0); err != nil {
		return nil, err
	}
	if err := g.AppendSyncStep(result, ensemble); err != nil {
		return nil, err
	}

	if err := g.fillMeasurementInfo(ensemble, result.Blocks, freqs, "Hz", "Frequency", args.NumPoints); err != nil {
		return nil, err
	}
	result.AddEnsemble(ensemble)

	ctxlog.FromContext(ctx).Debug("Generated pulsed ODMR measurement.",
		"name", args.Name, "points", args.NumPoints)
	return result, nil
}

// readoutElements builds the fixed tail of one measurement point: gated laser
// pulse, gated delay, then idle waiting time.
func (g *Generator) readoutElements() ([]pulse.Element, error) {
	s := g.Settings()

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
	return []pulse.Element{laser, delay, wait}, nil
}

// fillMeasurementInfo writes the acquisition metadata every measurement
// ensemble carries.
func (g *Generator) fillMeasurementInfo(ensemble *pulse.Ensemble, blocks []*pulse.Block,
	variable []float64, unit, label string, lasers int) error {

	countingLength, err := g.EnsemblePlaybackDuration(ensemble, blocks)
	if err != nil {
		return err
	}
	ensemble.MeasurementInfo["alternating"] = false
	ensemble.MeasurementInfo["laser_ignore_list"] = []int{}
	ensemble.MeasurementInfo["controlled_variable"] = variable
	ensemble.MeasurementInfo["units"] = []string{unit, ""}
	ensemble.MeasurementInfo["labels"] = []string{label, "Signal"}
	ensemble.MeasurementInfo["number_of_lasers"] = lasers
	ensemble.MeasurementInfo["counting_length"] = countingLength
	return nil
}
