package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/byavkin/pulsegen/internal/ctxlog"
	"github.com/byavkin/pulsegen/internal/generation"
	"github.com/byavkin/pulsegen/internal/pulse"
)

// ErrChannelNotActive indicates a settings attribute names a channel outside
// the activation configuration.
var ErrChannelNotActive = errors.New("hcl: channel not in activation config")

// settingsFile is the decode target for a settings profile.
type settingsFile struct {
	Pulser     *pulserBlock     `hcl:"pulser,block"`
	Generation *generationBlock `hcl:"generation,block"`
}

type pulserBlock struct {
	ActivationConfig string   `hcl:"activation_config"`
	AnalogChannels   []string `hcl:"analog_channels"`
	DigitalChannels  []string `hcl:"digital_channels"`
}

// generationBlock uses pointers for the optional attributes so an absent
// attribute falls back to its default rather than to zero.
type generationBlock struct {
	LaserChannel         string   `hcl:"laser_channel"`
	MicrowaveChannel     *string  `hcl:"microwave_channel,optional"`
	SyncChannel          *string  `hcl:"sync_channel,optional"`
	GateChannel          *string  `hcl:"gate_channel,optional"`
	AnalogTriggerVoltage *float64 `hcl:"analog_trigger_voltage,optional"`
	LaserDelay           *float64 `hcl:"laser_delay,optional"`
	LaserLength          *float64 `hcl:"laser_length,optional"`
	WaitTime             *float64 `hcl:"wait_time,optional"`
	RabiPeriod           *float64 `hcl:"rabi_period,optional"`
	MicrowaveAmplitude   *float64 `hcl:"microwave_amplitude,optional"`
	MicrowaveFrequency   *float64 `hcl:"microwave_frequency,optional"`
}

// defaultSettings are the values optional attributes fall back to: a typical
// NV center bench.
func defaultSettings() generation.Settings {
	return generation.Settings{
		AnalogTriggerVoltage: 1.0,
		LaserDelay:           500e-9,
		LaserLength:          3e-6,
		WaitTime:             1e-6,
		RabiPeriod:           200e-9,
		MicrowaveAmplitude:   0.25,
		MicrowaveFrequency:   2.87e9,
	}
}

// LoadSettings reads and validates a settings profile. Channel names must
// follow the naming convention and sit on the right side of the
// analog/digital split; channels referenced by the generation block must be
// part of the activation configuration.
func LoadSettings(ctx context.Context, path string) (generation.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings profile", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return generation.Settings{}, fmt.Errorf("parsing settings profile %s: %w", path, diags)
	}

	var raw settingsFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return generation.Settings{}, fmt.Errorf("decoding settings profile %s: %w", path, diags)
	}
	if raw.Pulser == nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: missing required 'pulser' block", path)
	}
	if raw.Generation == nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: missing required 'generation' block", path)
	}

	s := defaultSettings()
	s.ActivationName = raw.Pulser.ActivationConfig
	s.Channels = make(pulse.ChannelSet, len(raw.Pulser.AnalogChannels)+len(raw.Pulser.DigitalChannels))

	for _, name := range raw.Pulser.AnalogChannels {
		ch, err := pulse.ParseChannel(name)
		if err != nil {
			return generation.Settings{}, fmt.Errorf("settings profile %s: analog_channels: %w", path, err)
		}
		if !ch.IsAnalog() {
			return generation.Settings{}, fmt.Errorf("settings profile %s: %q listed under analog_channels is digital", path, name)
		}
		s.Channels[ch] = struct{}{}
	}
	for _, name := range raw.Pulser.DigitalChannels {
		ch, err := pulse.ParseChannel(name)
		if err != nil {
			return generation.Settings{}, fmt.Errorf("settings profile %s: digital_channels: %w", path, err)
		}
		if !ch.IsDigital() {
			return generation.Settings{}, fmt.Errorf("settings profile %s: %q listed under digital_channels is analog", path, name)
		}
		s.Channels[ch] = struct{}{}
	}

	gen := raw.Generation
	var err error
	if s.LaserChannel, err = activeChannel(s.Channels, gen.LaserChannel); err != nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: laser_channel: %w", path, err)
	}
	if s.LaserChannel == "" {
		return generation.Settings{}, fmt.Errorf("settings profile %s: laser_channel must not be empty", path)
	}
	if s.MicrowaveChannel, err = optionalChannel(s.Channels, gen.MicrowaveChannel); err != nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: microwave_channel: %w", path, err)
	}
	if s.SyncChannel, err = optionalChannel(s.Channels, gen.SyncChannel); err != nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: sync_channel: %w", path, err)
	}
	if s.GateChannel, err = optionalChannel(s.Channels, gen.GateChannel); err != nil {
		return generation.Settings{}, fmt.Errorf("settings profile %s: gate_channel: %w", path, err)
	}

	overrideFloat(&s.AnalogTriggerVoltage, gen.AnalogTriggerVoltage)
	overrideFloat(&s.LaserDelay, gen.LaserDelay)
	overrideFloat(&s.LaserLength, gen.LaserLength)
	overrideFloat(&s.WaitTime, gen.WaitTime)
	overrideFloat(&s.RabiPeriod, gen.RabiPeriod)
	overrideFloat(&s.MicrowaveAmplitude, gen.MicrowaveAmplitude)
	overrideFloat(&s.MicrowaveFrequency, gen.MicrowaveFrequency)

	logger.Debug("Settings profile loaded",
		"activation_config", s.ActivationName,
		"channels", len(s.Channels))
	return s, nil
}

// activeChannel validates a required channel name against the activation set.
func activeChannel(active pulse.ChannelSet, name string) (pulse.Channel, error) {
	ch, err := pulse.ParseChannel(name)
	if err != nil {
		return "", err
	}
	if !active.Contains(ch) {
		return "", fmt.Errorf("%w: %q not in %s", ErrChannelNotActive, name, active)
	}
	return ch, nil
}

// optionalChannel resolves a channel attribute that may be absent or empty.
func optionalChannel(active pulse.ChannelSet, name *string) (pulse.Channel, error) {
	if name == nil || *name == "" {
		return "", nil
	}
	return activeChannel(active, *name)
}

func overrideFloat(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}
