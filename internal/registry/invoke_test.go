package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestInvoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fills missing arguments from defaults", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{}
		r := New()
		r.RegisterGenerator(gen)
		loadManifest(t, r, stubManifest)

		result, err := r.Invoke(ctx, "pulsed_odmr", map[string]cty.Value{
			"freq_start": cty.NumberFloatVal(2.85e9),
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		require.NotNil(t, gen.lastODMR)
		assert.InDelta(t, 2.85e9, gen.lastODMR.Start, 1)
		assert.InDelta(t, 2e6, gen.lastODMR.Step, 1e-9)
		assert.Equal(t, 50, gen.lastODMR.Points)
		assert.Equal(t, "pulsedODMR", gen.lastODMR.Name)
	})

	t.Run("passed arguments override defaults", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{}
		r := New()
		r.RegisterGenerator(gen)
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "pulsed_odmr", map[string]cty.Value{
			"freq_start": cty.NumberFloatVal(2.8e9),
			"num_points": cty.NumberIntVal(120),
			"name":       cty.StringVal("odmr_fine"),
		})
		require.NoError(t, err)
		assert.Equal(t, 120, gen.lastODMR.Points)
		assert.Equal(t, "odmr_fine", gen.lastODMR.Name)
	})

	t.Run("converts argument values to the declared type", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{}
		r := New()
		r.RegisterGenerator(gen)
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "pulsed_odmr", map[string]cty.Value{
			"freq_start": cty.StringVal("2.87e9"),
		})
		require.NoError(t, err)
		assert.InDelta(t, 2.87e9, gen.lastODMR.Start, 1)
	})

	t.Run("rejects an unconvertible value", func(t *testing.T) {
		t.Parallel()
		r := New()
		r.RegisterGenerator(&stubGenerator{})
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "pulsed_odmr", map[string]cty.Value{
			"freq_start": cty.StringVal("not a number"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `parameter "freq_start"`)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		t.Parallel()
		r := New()
		r.RegisterGenerator(&stubGenerator{})
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "pulsed_odmr", nil)
		require.ErrorIs(t, err, ErrMissingParam)
		assert.Contains(t, err.Error(), `"freq_start"`)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		t.Parallel()
		r := New()
		r.RegisterGenerator(&stubGenerator{})
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "laser_on", map[string]cty.Value{
			"bogus": cty.True,
		})
		require.ErrorIs(t, err, ErrUnknownParam)
	})

	t.Run("unknown operation", func(t *testing.T) {
		t.Parallel()
		r := New()
		r.RegisterGenerator(&stubGenerator{})
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "rabi", nil)
		require.ErrorIs(t, err, ErrUnknownOperation)
	})

	t.Run("operation without manifest definition", func(t *testing.T) {
		t.Parallel()
		r := New()
		r.RegisterGenerator(&stubGenerator{})

		_, err := r.Invoke(ctx, "laser_on", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no manifest definition")
	})

	t.Run("wraps generator errors", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("hardware busy")
		gen := &stubGenerator{fail: boom}
		r := New()
		r.RegisterGenerator(gen)
		loadManifest(t, r, stubManifest)

		_, err := r.Invoke(ctx, "laser_on", nil)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), `operation "laser_on"`)
	})
}
