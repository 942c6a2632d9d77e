package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byavkin/pulsegen/internal/pulse"
)

func writeSettings(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const fullProfile = `
pulser {
  activation_config = "bench_6ch"
  analog_channels   = ["a_ch1", "a_ch2"]
  digital_channels  = ["d_ch1", "d_ch2", "d_ch3", "d_ch4"]
}

generation {
  laser_channel          = "d_ch1"
  microwave_channel      = "a_ch1"
  sync_channel           = "d_ch2"
  gate_channel           = ""
  analog_trigger_voltage = 2.5
  laser_delay            = 510e-9
  laser_length           = 3.5e-6
  wait_time              = 1.5e-6
  rabi_period            = 180e-9
  microwave_amplitude    = 0.125
  microwave_frequency    = 2.8e9
}
`

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("decodes a full profile", func(t *testing.T) {
		t.Parallel()
		s, err := LoadSettings(context.Background(), writeSettings(t, fullProfile))
		require.NoError(t, err)

		assert.Equal(t, "bench_6ch", s.ActivationName)
		assert.True(t, s.Channels.Equal(pulse.NewChannelSet(
			"a_ch1", "a_ch2", "d_ch1", "d_ch2", "d_ch3", "d_ch4")))
		assert.Equal(t, pulse.Channel("d_ch1"), s.LaserChannel)
		assert.Equal(t, pulse.Channel("a_ch1"), s.MicrowaveChannel)
		assert.Equal(t, pulse.Channel("d_ch2"), s.SyncChannel)
		assert.Equal(t, pulse.Channel(""), s.GateChannel)
		assert.False(t, s.Gated())
		assert.Equal(t, 2.5, s.AnalogTriggerVoltage)
		assert.Equal(t, 510e-9, s.LaserDelay)
		assert.Equal(t, 3.5e-6, s.LaserLength)
		assert.Equal(t, 1.5e-6, s.WaitTime)
		assert.Equal(t, 180e-9, s.RabiPeriod)
		assert.Equal(t, 0.125, s.MicrowaveAmplitude)
		assert.Equal(t, 2.8e9, s.MicrowaveFrequency)
	})

	t.Run("fills omitted attributes with defaults", func(t *testing.T) {
		t.Parallel()
		src := `
pulser {
  activation_config = "minimal"
  analog_channels   = []
  digital_channels  = ["d_ch1"]
}

generation {
  laser_channel = "d_ch1"
}
`
		s, err := LoadSettings(context.Background(), writeSettings(t, src))
		require.NoError(t, err)

		assert.Equal(t, pulse.Channel(""), s.MicrowaveChannel)
		assert.Equal(t, pulse.Channel(""), s.SyncChannel)
		assert.Equal(t, 1.0, s.AnalogTriggerVoltage)
		assert.Equal(t, 500e-9, s.LaserDelay)
		assert.Equal(t, 3e-6, s.LaserLength)
		assert.Equal(t, 2.87e9, s.MicrowaveFrequency)
	})

	t.Run("rejects a malformed channel name", func(t *testing.T) {
		t.Parallel()
		src := `
pulser {
  activation_config = "broken"
  analog_channels   = ["analog1"]
  digital_channels  = ["d_ch1"]
}

generation {
  laser_channel = "d_ch1"
}
`
		_, err := LoadSettings(context.Background(), writeSettings(t, src))
		require.ErrorIs(t, err, pulse.ErrInvalidChannel)
	})

	t.Run("rejects a digital channel in the analog list", func(t *testing.T) {
		t.Parallel()
		src := `
pulser {
  activation_config = "broken"
  analog_channels   = ["d_ch2"]
  digital_channels  = ["d_ch1"]
}

generation {
  laser_channel = "d_ch1"
}
`
		_, err := LoadSettings(context.Background(), writeSettings(t, src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is digital")
	})

	t.Run("rejects a laser channel outside the activation config", func(t *testing.T) {
		t.Parallel()
		src := `
pulser {
  activation_config = "broken"
  analog_channels   = ["a_ch1"]
  digital_channels  = ["d_ch1"]
}

generation {
  laser_channel = "d_ch7"
}
`
		_, err := LoadSettings(context.Background(), writeSettings(t, src))
		require.ErrorIs(t, err, ErrChannelNotActive)
	})

	t.Run("rejects a profile without a pulser block", func(t *testing.T) {
		t.Parallel()
		src := `
generation {
  laser_channel = "d_ch1"
}
`
		_, err := LoadSettings(context.Background(), writeSettings(t, src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pulser")
	})

	t.Run("fails on an unreadable path", func(t *testing.T) {
		t.Parallel()
		_, err := LoadSettings(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})
}
