package generation

import "github.com/byavkin/pulsegen/internal/pulse"

// Settings collects the pulser hardware configuration and the experiment
// parameters that predefined generators read. Optional channels use the empty
// string for "not wired".
type Settings struct {
	// ActivationName names the active hardware channel configuration.
	ActivationName string
	// Channels is the set of channels the active configuration drives. Every
	// generated element spans exactly this set.
	Channels pulse.ChannelSet

	// LaserChannel triggers the laser. Required by most generators.
	LaserChannel pulse.Channel
	// MicrowaveChannel carries the microwave drive, either as an analog
	// waveform or as a digital gate for an external source. Optional.
	MicrowaveChannel pulse.Channel
	// SyncChannel pulses at the end of an ensemble for downstream hardware.
	// Optional.
	SyncChannel pulse.Channel
	// GateChannel gates a photon counter. Optional; when set, acquisition is
	// considered gated.
	GateChannel pulse.Channel

	// AnalogTriggerVoltage is the level driven on analog channels used as
	// triggers.
	AnalogTriggerVoltage float64
	// LaserDelay is the lag between the laser trigger and actual light, in
	// seconds.
	LaserDelay float64
	// LaserLength is the default laser pulse duration in seconds.
	LaserLength float64
	// WaitTime is the default relaxation wait between pulses in seconds.
	WaitTime float64
	// RabiPeriod is the calibrated Rabi period in seconds; pi pulses last half
	// of it.
	RabiPeriod float64
	// MicrowaveAmplitude is the drive amplitude in volts.
	MicrowaveAmplitude float64
	// MicrowaveFrequency is the drive frequency in Hz.
	MicrowaveFrequency float64
}

// AnalogChannels returns the analog subset of the active channels.
func (s Settings) AnalogChannels() pulse.ChannelSet { return s.Channels.Analog() }

// DigitalChannels returns the digital subset of the active channels.
func (s Settings) DigitalChannels() pulse.ChannelSet { return s.Channels.Digital() }

// Gated reports whether a counter gate channel is wired.
func (s Settings) Gated() bool { return s.GateChannel != "" }

// SettingsProvider hands out the current settings. Implementations are free
// to change values between calls; generators read through the provider so
// they always see the latest state.
type SettingsProvider interface {
	GenerationSettings() Settings
}

// Static wraps fixed settings in a provider.
func Static(s Settings) SettingsProvider { return staticProvider{s: s} }

type staticProvider struct{ s Settings }

func (p staticProvider) GenerationSettings() Settings { return p.s }
