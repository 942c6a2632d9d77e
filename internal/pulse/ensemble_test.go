package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsemble_Insert(t *testing.T) {
	t.Parallel()

	t.Run("keeps the step order", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true)

		require.NoError(t, e.Append("laser_init", 0))
		require.NoError(t, e.Append("readout", 2))
		require.NoError(t, e.Insert(1, "mw_drive", 9))

		assert.Equal(t, []EnsembleStep{
			{BlockName: "laser_init", Repetitions: 0},
			{BlockName: "mw_drive", Repetitions: 9},
			{BlockName: "readout", Repetitions: 2},
		}, e.Steps())
	})

	t.Run("rejects negative repetitions", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true)
		require.ErrorIs(t, e.Insert(0, "laser_init", -1), ErrNegativeRepetitions)
		assert.Zero(t, e.Len())
	})

	t.Run("rejects positions outside the list", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true)
		require.ErrorIs(t, e.Insert(1, "laser_init", 0), ErrPositionOutOfRange)
		require.ErrorIs(t, e.Insert(-1, "laser_init", 0), ErrPositionOutOfRange)
	})
}

func TestEnsemble_Replace(t *testing.T) {
	t.Parallel()

	t.Run("without a count keeps the present one", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true, EnsembleStep{BlockName: "laser_init", Repetitions: 7})

		require.NoError(t, e.Replace(0, "laser_reset"))

		step, err := e.StepAt(0)
		require.NoError(t, err)
		assert.Equal(t, EnsembleStep{BlockName: "laser_reset", Repetitions: 7}, step)
	})

	t.Run("with a count replaces both", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true, EnsembleStep{BlockName: "laser_init", Repetitions: 7})

		require.NoError(t, e.Replace(0, "laser_reset", 3))

		step, err := e.StepAt(0)
		require.NoError(t, err)
		assert.Equal(t, EnsembleStep{BlockName: "laser_reset", Repetitions: 3}, step)
	})

	t.Run("rejects a negative count", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true, EnsembleStep{BlockName: "laser_init"})
		require.ErrorIs(t, e.Replace(0, "laser_init", -2), ErrNegativeRepetitions)
	})

	t.Run("rejects positions outside the list", func(t *testing.T) {
		t.Parallel()
		e := NewEnsemble("odmr", true)
		require.ErrorIs(t, e.Replace(0, "laser_init"), ErrPositionOutOfRange)
	})
}

func TestEnsemble_Delete(t *testing.T) {
	t.Parallel()

	e := NewEnsemble("odmr", true,
		EnsembleStep{BlockName: "laser_init"},
		EnsembleStep{BlockName: "mw_drive", Repetitions: 4},
	)

	require.ErrorIs(t, e.Delete(2), ErrPositionOutOfRange)
	require.NoError(t, e.Delete(0))

	require.Equal(t, 1, e.Len())
	step, err := e.StepAt(0)
	require.NoError(t, err)
	assert.Equal(t, "mw_drive", step.BlockName)
}

func TestEnsemble_WeakReferences(t *testing.T) {
	t.Parallel()

	// A step may name a block that exists nowhere; the ensemble does not
	// resolve names, a session table does.
	e := NewEnsemble("dangling", false, EnsembleStep{BlockName: "never_created"})
	assert.Equal(t, 1, e.Len())
}

func TestEnsemble_Metadata(t *testing.T) {
	t.Parallel()

	e := NewEnsemble("tagged", true, EnsembleStep{BlockName: "laser_init"})
	require.NotNil(t, e.SamplingInfo)
	require.NotNil(t, e.MeasurementInfo)

	e.MeasurementInfo["alternating"] = false
	e.MeasurementInfo["number_of_lasers"] = 50.0

	// Structural mutation leaves metadata alone.
	require.NoError(t, e.Append("readout", 0))
	assert.Equal(t, 50.0, e.MeasurementInfo["number_of_lasers"])
}
