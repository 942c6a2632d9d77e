package pulse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/byavkin/pulsegen/internal/waveform"
)

// mustElement builds an element on the canonical two-channel test set
// {a_ch1, d_ch1}.
func mustElement(t *testing.T, durationS, incrementS float64) Element {
	t.Helper()
	el, err := NewElement(durationS, incrementS,
		map[Channel]waveform.Spec{"a_ch1": waveform.Sin(0.25, 100e6, 0)},
		map[Channel]bool{"d_ch1": true},
	)
	require.NoError(t, err)
	return el
}

// mustDigitalElement builds an element driving only the given digital
// channels, all high.
func mustDigitalElement(t *testing.T, durationS float64, channels ...Channel) Element {
	t.Helper()
	digital := make(map[Channel]bool, len(channels))
	for _, ch := range channels {
		digital[ch] = true
	}
	el, err := NewElement(durationS, 0, nil, digital)
	require.NoError(t, err)
	return el
}
