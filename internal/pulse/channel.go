package pulse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// channelRegex matches the canonical channel naming convention, e.g. "a_ch1"
// or "d_ch4". Indices start at 1.
var channelRegex = regexp.MustCompile(`^([ad])_ch([1-9][0-9]*)$`)

// Channel identifies a single hardware output by convention-named token.
// Analog channels start with "a", digital channels with "d".
type Channel string

// IsAnalog reports whether the channel names an analog output.
func (c Channel) IsAnalog() bool { return strings.HasPrefix(string(c), "a") }

// IsDigital reports whether the channel names a digital output.
func (c Channel) IsDigital() bool { return strings.HasPrefix(string(c), "d") }

// Index returns the one-based channel index, or 0 if the name is not
// well-formed.
func (c Channel) Index() int {
	matches := channelRegex.FindStringSubmatch(string(c))
	if matches == nil {
		return 0
	}
	index, err := strconv.Atoi(matches[2])
	if err != nil {
		// Unreachable due to regex `[0-9]+`
		return 0
	}
	return index
}

// ParseChannel validates a raw channel name against the "a_chN" / "d_chN"
// convention and returns it as a Channel.
func ParseChannel(raw string) (Channel, error) {
	if !channelRegex.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, raw)
	}
	return Channel(raw), nil
}

// ChannelSet is an unordered set of channels.
type ChannelSet map[Channel]struct{}

// NewChannelSet builds a set from the given channels.
func NewChannelSet(channels ...Channel) ChannelSet {
	set := make(ChannelSet, len(channels))
	for _, ch := range channels {
		set[ch] = struct{}{}
	}
	return set
}

// Contains reports whether ch is in the set.
func (s ChannelSet) Contains(ch Channel) bool {
	_, ok := s[ch]
	return ok
}

// Equal reports whether both sets hold exactly the same channels.
func (s ChannelSet) Equal(other ChannelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for ch := range s {
		if _, ok := other[ch]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s ChannelSet) Clone() ChannelSet {
	copied := make(ChannelSet, len(s))
	for ch := range s {
		copied[ch] = struct{}{}
	}
	return copied
}

// Analog returns the subset of analog channels.
func (s ChannelSet) Analog() ChannelSet {
	subset := make(ChannelSet)
	for ch := range s {
		if ch.IsAnalog() {
			subset[ch] = struct{}{}
		}
	}
	return subset
}

// Digital returns the subset of digital channels.
func (s ChannelSet) Digital() ChannelSet {
	subset := make(ChannelSet)
	for ch := range s {
		if ch.IsDigital() {
			subset[ch] = struct{}{}
		}
	}
	return subset
}

// Sorted returns the channels ordered by kind, then index, then name, so that
// output and error messages are deterministic.
func (s ChannelSet) Sorted() []Channel {
	channels := make([]Channel, 0, len(s))
	for ch := range s {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool {
		a, b := channels[i], channels[j]
		if a.IsAnalog() != b.IsAnalog() {
			return a.IsAnalog()
		}
		if ai, bi := a.Index(), b.Index(); ai != bi {
			return ai < bi
		}
		return a < b
	})
	return channels
}

// String renders the set as a sorted, brace-delimited list.
func (s ChannelSet) String() string {
	names := make([]string, 0, len(s))
	for _, ch := range s.Sorted() {
		names = append(names, string(ch))
	}
	return "{" + strings.Join(names, ", ") + "}"
}
