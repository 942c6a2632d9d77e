package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/byavkin/pulsegen/internal/generation"
)

// stubManifest matches the generate methods of stubGenerator.
const stubManifest = `
operation "laser_on" {
  description = "Continuous laser output."

  param "length" {
    type    = number
    default = 3e-6
  }
}

operation "pulsed_odmr" {
  description = "Frequency sweep with laser readout."

  param "freq_start" {
    type = number
  }

  param "freq_step" {
    type    = number
    default = 2e6
  }

  param "num_points" {
    type    = number
    default = 50
  }

  param "name" {
    type    = string
    default = "pulsedODMR"
  }
}
`

type laserOnArgs struct {
	Length float64 `gen:"length"`
}

type odmrArgs struct {
	Start  float64 `gen:"freq_start"`
	Step   float64 `gen:"freq_step"`
	Points int     `gen:"num_points"`
	Name   string  `gen:"name"`
}

// stubGenerator records the arguments of its last invocations so tests can
// observe what Invoke delivered.
type stubGenerator struct {
	generation.Base

	lastLaser *laserOnArgs
	lastODMR  *odmrArgs
	fail      error
}

func (g *stubGenerator) GenerateLaserOn(_ context.Context, args *laserOnArgs) (*generation.Result, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	g.lastLaser = args
	return &generation.Result{}, nil
}

func (g *stubGenerator) GeneratePulsedODMR(_ context.Context, args *odmrArgs) (*generation.Result, error) {
	g.lastODMR = args
	return &generation.Result{}, nil
}

// loadManifest writes source to a temporary manifest file and loads it into r.
func loadManifest(t *testing.T, r *Registry, source string) {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "operations.hcl"), []byte(source), 0o644)
	require.NoError(t, err)
	require.NoError(t, r.LoadDefinitions(context.Background(), dir))
}
