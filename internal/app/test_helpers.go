package app

import (
	"os"
	"testing"

	"github.com/byavkin/pulsegen/internal/registry"
	"github.com/byavkin/pulsegen/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Log and command
// output are captured in the returned buffer.
func SetupAppTest(t *testing.T, cfg *Config, plugins ...registry.Plugin) (*App, *testutil.SafeBuffer) {
	t.Helper()

	buffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(buffer, cfg, plugins...)

	t.Cleanup(func() {
		if os.Getenv("PULSEGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buffer.String())
		}
	})

	return testApp, buffer
}
