package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byavkin/pulsegen/internal/waveform"
)

func TestNewElement(t *testing.T) {
	t.Parallel()

	t.Run("unites analog and digital channels", func(t *testing.T) {
		t.Parallel()
		el, err := NewElement(1e-6, 10e-9,
			map[Channel]waveform.Spec{"a_ch1": waveform.DC(0.5)},
			map[Channel]bool{"d_ch1": true, "d_ch2": false},
		)
		require.NoError(t, err)

		assert.Equal(t, 1e-6, el.Duration())
		assert.Equal(t, 10e-9, el.Increment())
		assert.True(t, el.Channels().Equal(NewChannelSet("a_ch1", "d_ch1", "d_ch2")))

		high, ok := el.DigitalHigh("d_ch1")
		require.True(t, ok)
		assert.True(t, high)
		high, ok = el.DigitalHigh("d_ch2")
		require.True(t, ok)
		assert.False(t, high)

		spec, ok := el.AnalogOutput("a_ch1")
		require.True(t, ok)
		assert.Equal(t, "DC", spec.Name())
	})

	t.Run("rejects a waveform on a digital channel", func(t *testing.T) {
		t.Parallel()
		_, err := NewElement(1e-6, 0,
			map[Channel]waveform.Spec{"d_ch1": waveform.Idle()}, nil)
		require.ErrorIs(t, err, ErrChannelKind)
	})

	t.Run("rejects a level on an analog channel", func(t *testing.T) {
		t.Parallel()
		_, err := NewElement(1e-6, 0,
			nil, map[Channel]bool{"a_ch1": true})
		require.ErrorIs(t, err, ErrChannelKind)
	})

	t.Run("accepts zero and negative durations untouched", func(t *testing.T) {
		t.Parallel()
		// Durations are carried as given; whether they make sense is decided
		// when an ensemble is turned into samples, not here.
		el, err := NewElement(0, -5e-9, nil, map[Channel]bool{"d_ch1": false})
		require.NoError(t, err)
		assert.Equal(t, 0.0, el.Duration())
		assert.Equal(t, -5e-9, el.Increment())
	})
}

func TestElement_Immutable(t *testing.T) {
	t.Parallel()

	// Arrange
	analog := map[Channel]waveform.Spec{"a_ch1": waveform.Sin(1, 2, 3)}
	digital := map[Channel]bool{"d_ch1": true}
	el, err := NewElement(1e-6, 0, analog, digital)
	require.NoError(t, err)

	// Act: mutate the constructor inputs and every handed-out copy.
	analog["a_ch2"] = waveform.Idle()
	digital["d_ch1"] = false
	el.AnalogOutputs()["a_ch3"] = waveform.Idle()
	el.DigitalOutputs()["d_ch1"] = false
	el.Channels()["d_ch9"] = struct{}{}

	// Assert: the element is unchanged.
	assert.True(t, el.Channels().Equal(NewChannelSet("a_ch1", "d_ch1")))
	high, ok := el.DigitalHigh("d_ch1")
	require.True(t, ok)
	assert.True(t, high)
}

func TestElement_Equal(t *testing.T) {
	t.Parallel()

	a := mustElement(t, 1e-6, 10e-9)
	b := mustElement(t, 1e-6, 10e-9)
	c := mustElement(t, 2e-6, 10e-9)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	differentWave, err := NewElement(1e-6, 10e-9,
		map[Channel]waveform.Spec{"a_ch1": waveform.Sin(0.25, 100e6, 90)},
		map[Channel]bool{"d_ch1": true},
	)
	require.NoError(t, err)
	assert.False(t, a.Equal(differentWave))
}
