package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultSettingsHCL is a complete settings profile for a typical six channel
// bench: digital laser and sync, analog microwave, no counter gate.
const DefaultSettingsHCL = `
pulser {
  activation_config = "bench_6ch"
  analog_channels   = ["a_ch1", "a_ch2"]
  digital_channels  = ["d_ch1", "d_ch2", "d_ch3", "d_ch4"]
}

generation {
  laser_channel          = "d_ch1"
  microwave_channel      = "a_ch1"
  sync_channel           = "d_ch2"
  analog_trigger_voltage = 1.0
  laser_delay            = 500e-9
  laser_length           = 3e-6
  wait_time              = 1e-6
  rabi_period            = 200e-9
  microwave_amplitude    = 0.25
  microwave_frequency    = 2.87e9
}
`

// WriteFiles lays the given relative-path-to-content mapping out under a new
// temporary directory and returns its root. Parent directories are created as
// needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return tmpDir
}
