package generation

import (
	"fmt"

	"github.com/byavkin/pulsegen/internal/pulse"
	"github.com/byavkin/pulsegen/internal/waveform"
)

// syncLengthS is the fixed duration of a sync marker pulse.
const syncLengthS = 50e-9

// Base is the embeddable foundation of every generator plugin. It carries the
// settings provider and the element constructors shared by all generators.
//
// Every constructor spans the full active channel set: channels not involved
// in the element idle low. Constructors read the settings provider once per
// call.
type Base struct {
	provider SettingsProvider
}

// NewBase wraps a settings provider.
func NewBase(provider SettingsProvider) Base {
	return Base{provider: provider}
}

// Settings returns the current settings snapshot.
func (b Base) Settings() Settings {
	return b.provider.GenerationSettings()
}

// IdleElement creates an element with all channels turned off.
func (b Base) IdleElement(durationS, incrementS float64) (pulse.Element, error) {
	s := b.Settings()
	analog, digital := idleOutputs(s)
	return pulse.NewElement(durationS, incrementS, analog, digital)
}

// TriggerElement creates an element that fires the given channels: digital
// channels go high, analog ones carry the configured trigger voltage.
func (b Base) TriggerElement(durationS, incrementS float64, channels ...pulse.Channel) (pulse.Element, error) {
	return triggerElement(b.Settings(), durationS, incrementS, channels...)
}

// LaserElement creates a laser pulse of the given length.
func (b Base) LaserElement(durationS, incrementS float64) (pulse.Element, error) {
	s := b.Settings()
	el, err := triggerElement(s, durationS, incrementS, s.LaserChannel)
	if err != nil {
		return pulse.Element{}, fmt.Errorf("laser element: %w", err)
	}
	return el, nil
}

// LaserGateElement creates a laser pulse that also opens the counter gate.
// Without a gate channel it is a plain laser pulse.
func (b Base) LaserGateElement(durationS, incrementS float64) (pulse.Element, error) {
	s := b.Settings()
	channels := []pulse.Channel{s.LaserChannel}
	if s.GateChannel != "" {
		channels = append(channels, s.GateChannel)
	}
	el, err := triggerElement(s, durationS, incrementS, channels...)
	if err != nil {
		return pulse.Element{}, fmt.Errorf("laser gate element: %w", err)
	}
	return el, nil
}

// DelayElement creates an idle element spanning the laser delay, so that
// emitted light and counted photons line up.
func (b Base) DelayElement() (pulse.Element, error) {
	s := b.Settings()
	analog, digital := idleOutputs(s)
	return pulse.NewElement(s.LaserDelay, 0, analog, digital)
}

// DelayGateElement creates a delay element that keeps the counter gate open.
// Without a gate channel it degrades to a plain delay.
func (b Base) DelayGateElement() (pulse.Element, error) {
	s := b.Settings()
	if s.GateChannel == "" {
		analog, digital := idleOutputs(s)
		return pulse.NewElement(s.LaserDelay, 0, analog, digital)
	}
	el, err := triggerElement(s, s.LaserDelay, 0, s.GateChannel)
	if err != nil {
		return pulse.Element{}, fmt.Errorf("delay gate element: %w", err)
	}
	return el, nil
}

// SyncElement creates the fixed-length sync marker pulse.
func (b Base) SyncElement() (pulse.Element, error) {
	s := b.Settings()
	if s.SyncChannel == "" {
		return pulse.Element{}, fmt.Errorf("sync element: %w", ErrChannelUnset)
	}
	return triggerElement(s, syncLengthS, 0, s.SyncChannel)
}

// MWElement creates a single-tone microwave drive. On a digital microwave
// channel the tone parameters are ignored and the channel simply gates an
// external source.
func (b Base) MWElement(durationS, incrementS, amplitude, frequency, phase float64) (pulse.Element, error) {
	s := b.Settings()
	analog, digital, err := mwOutputs(s, amplitude, frequency, phase)
	if err != nil {
		return pulse.Element{}, err
	}
	return pulse.NewElement(durationS, incrementS, analog, digital)
}

// MultiMWElement creates a microwave drive of up to three simultaneous
// tones. The tone count is the shortest of the three parameter lists; surplus
// entries are ignored and anything beyond three tones is truncated.
func (b Base) MultiMWElement(durationS, incrementS float64, amplitudes, frequencies, phases []float64) (pulse.Element, error) {
	s := b.Settings()
	if s.MicrowaveChannel == "" {
		return pulse.Element{}, fmt.Errorf("microwave element: %w", ErrChannelUnset)
	}
	if s.MicrowaveChannel.IsDigital() {
		return triggerElement(s, durationS, incrementS, s.MicrowaveChannel)
	}

	analog, digital := idleOutputs(s)
	switch tones := min(len(amplitudes), len(frequencies), len(phases)); {
	case tones == 0:
		return pulse.Element{}, ErrNoTones
	case tones == 1:
		analog[s.MicrowaveChannel] = waveform.Sin(amplitudes[0], frequencies[0], phases[0])
	case tones == 2:
		analog[s.MicrowaveChannel] = waveform.DoubleSin(
			amplitudes[0], amplitudes[1],
			frequencies[0], frequencies[1],
			phases[0], phases[1])
	default:
		analog[s.MicrowaveChannel] = waveform.TripleSin(
			amplitudes[0], amplitudes[1], amplitudes[2],
			frequencies[0], frequencies[1], frequencies[2],
			phases[0], phases[1], phases[2])
	}
	return pulse.NewElement(durationS, incrementS, analog, digital)
}

// MWLaserElement creates a simultaneous microwave drive and laser pulse.
func (b Base) MWLaserElement(durationS, incrementS, amplitude, frequency, phase float64) (pulse.Element, error) {
	s := b.Settings()
	analog, digital, err := mwOutputs(s, amplitude, frequency, phase)
	if err != nil {
		return pulse.Element{}, err
	}
	if s.LaserChannel == "" {
		return pulse.Element{}, fmt.Errorf("laser channel: %w", ErrChannelUnset)
	}
	if s.LaserChannel.IsDigital() {
		digital[s.LaserChannel] = true
	} else {
		analog[s.LaserChannel] = waveform.DC(s.AnalogTriggerVoltage)
	}
	return pulse.NewElement(durationS, incrementS, analog, digital)
}

// EnsemblePlaybackDuration computes how long one playback of the ensemble
// takes. Gated acquisition counts only the laser window (laser length plus
// delay). Ungated acquisition sums every block playback, where repetition r
// of a block lasts its total duration plus r times its total increment.
func (b Base) EnsemblePlaybackDuration(ensemble *pulse.Ensemble, blocks []*pulse.Block) (float64, error) {
	s := b.Settings()
	if s.Gated() {
		return s.LaserLength + s.LaserDelay, nil
	}

	byName := make(map[string]*pulse.Block, len(blocks))
	for _, blk := range blocks {
		byName[blk.Name()] = blk
	}

	var total float64
	for _, step := range ensemble.Steps() {
		blk, ok := byName[step.BlockName]
		if !ok {
			return 0, fmt.Errorf("%w: %q in ensemble %q", ErrUnknownBlock, step.BlockName, ensemble.Name())
		}
		reps := float64(step.Repetitions)
		total += blk.TotalDuration() * (reps + 1)
		total += blk.TotalIncrement() * (reps*reps + reps) / 2
	}
	return total, nil
}

// SyncBlockName is the name under which AppendSyncStep files the sync marker
// block.
const SyncBlockName = "sync_trigger"

// AppendSyncStep closes a measurement ensemble with the sync marker: a
// one-element block filed into result plus a final step playing it once.
// Without a configured sync channel nothing happens.
func (b Base) AppendSyncStep(result *Result, ensemble *pulse.Ensemble) error {
	if b.Settings().SyncChannel == "" {
		return nil
	}
	el, err := b.SyncElement()
	if err != nil {
		return err
	}
	block, err := pulse.NewBlock(SyncBlockName, el)
	if err != nil {
		return err
	}
	result.AddBlock(block)
	return ensemble.Append(block.Name(), 0)
}

// idleOutputs primes the full active channel set with silence: Idle waveforms
// on analog channels, low levels on digital ones.
func idleOutputs(s Settings) (map[pulse.Channel]waveform.Spec, map[pulse.Channel]bool) {
	analog := make(map[pulse.Channel]waveform.Spec)
	digital := make(map[pulse.Channel]bool)
	for ch := range s.Channels {
		if ch.IsAnalog() {
			analog[ch] = waveform.Idle()
		} else {
			digital[ch] = false
		}
	}
	return analog, digital
}

func triggerElement(s Settings, durationS, incrementS float64, channels ...pulse.Channel) (pulse.Element, error) {
	analog, digital := idleOutputs(s)
	for _, ch := range channels {
		if ch == "" {
			return pulse.Element{}, ErrChannelUnset
		}
		if ch.IsDigital() {
			digital[ch] = true
		} else {
			analog[ch] = waveform.DC(s.AnalogTriggerVoltage)
		}
	}
	return pulse.NewElement(durationS, incrementS, analog, digital)
}

func mwOutputs(s Settings, amplitude, frequency, phase float64) (map[pulse.Channel]waveform.Spec, map[pulse.Channel]bool, error) {
	if s.MicrowaveChannel == "" {
		return nil, nil, fmt.Errorf("microwave channel: %w", ErrChannelUnset)
	}
	analog, digital := idleOutputs(s)
	if s.MicrowaveChannel.IsDigital() {
		digital[s.MicrowaveChannel] = true
	} else {
		analog[s.MicrowaveChannel] = waveform.Sin(amplitude, frequency, phase)
	}
	return analog, digital, nil
}
