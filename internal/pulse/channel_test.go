package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	t.Parallel()

	t.Run("accepts canonical names", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"a_ch1", "d_ch1", "a_ch2", "d_ch12"} {
			ch, err := ParseChannel(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, Channel(raw), ch)
		}
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"", "a_ch0", "a_ch", "x_ch1", "ach1", "a_ch-1", "A_CH1", "a_ch1 "} {
			_, err := ParseChannel(raw)
			require.ErrorIs(t, err, ErrInvalidChannel, raw)
		}
	})
}

func TestChannel_Kind(t *testing.T) {
	t.Parallel()

	assert.True(t, Channel("a_ch1").IsAnalog())
	assert.False(t, Channel("a_ch1").IsDigital())
	assert.True(t, Channel("d_ch3").IsDigital())
	assert.False(t, Channel("d_ch3").IsAnalog())
	assert.Equal(t, 3, Channel("d_ch3").Index())
	assert.Equal(t, 0, Channel("bogus").Index())
}

func TestChannelSet(t *testing.T) {
	t.Parallel()

	t.Run("equality ignores construction order", func(t *testing.T) {
		t.Parallel()
		left := NewChannelSet("a_ch1", "d_ch1", "d_ch2")
		right := NewChannelSet("d_ch2", "a_ch1", "d_ch1")
		assert.True(t, left.Equal(right))
		assert.False(t, left.Equal(NewChannelSet("a_ch1", "d_ch1")))
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		original := NewChannelSet("a_ch1")
		clone := original.Clone()
		clone["d_ch9"] = struct{}{}
		assert.False(t, original.Contains("d_ch9"))
	})

	t.Run("splits by kind", func(t *testing.T) {
		t.Parallel()
		set := NewChannelSet("a_ch1", "a_ch2", "d_ch1")
		assert.True(t, set.Analog().Equal(NewChannelSet("a_ch1", "a_ch2")))
		assert.True(t, set.Digital().Equal(NewChannelSet("d_ch1")))
	})

	t.Run("sorts analog first, then by index", func(t *testing.T) {
		t.Parallel()
		set := NewChannelSet("d_ch2", "a_ch10", "d_ch1", "a_ch2")
		assert.Equal(t, []Channel{"a_ch2", "a_ch10", "d_ch1", "d_ch2"}, set.Sorted())
		assert.Equal(t, "{a_ch2, a_ch10, d_ch1, d_ch2}", set.String())
	})
}
