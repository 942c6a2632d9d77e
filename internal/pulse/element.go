package pulse

import (
	"fmt"

	"github.com/byavkin/pulsegen/internal/waveform"
)

// Element is the atomic unit of a pulse program: for a given duration, every
// analog channel in its set carries a waveform and every digital channel a
// high or low level. The duration may grow by a fixed increment on each
// repetition of the enclosing block.
//
// An Element is an immutable value. The constructor copies its inputs and all
// accessors return copies, so Elements can be freely shared between blocks.
// Durations are carried as given; values that make no physical sense are the
// caller's concern.
type Element struct {
	durationS  float64
	incrementS float64
	analog     map[Channel]waveform.Spec
	digital    map[Channel]bool
	channels   ChannelSet
}

// NewElement builds an Element from a duration and per-repetition increment
// (both in seconds) plus the per-channel outputs. Every analog key must name
// an analog channel and every digital key a digital one.
func NewElement(durationS, incrementS float64, analog map[Channel]waveform.Spec, digital map[Channel]bool) (Element, error) {
	el := Element{
		durationS:  durationS,
		incrementS: incrementS,
		analog:     make(map[Channel]waveform.Spec, len(analog)),
		digital:    make(map[Channel]bool, len(digital)),
		channels:   make(ChannelSet, len(analog)+len(digital)),
	}
	for ch, spec := range analog {
		if !ch.IsAnalog() {
			return Element{}, fmt.Errorf("%w: %q assigned a waveform", ErrChannelKind, ch)
		}
		el.analog[ch] = spec
		el.channels[ch] = struct{}{}
	}
	for ch, high := range digital {
		if !ch.IsDigital() {
			return Element{}, fmt.Errorf("%w: %q assigned a digital level", ErrChannelKind, ch)
		}
		el.digital[ch] = high
		el.channels[ch] = struct{}{}
	}
	return el, nil
}

// Duration returns the nominal duration in seconds.
func (e Element) Duration() float64 { return e.durationS }

// Increment returns the per-repetition duration increment in seconds.
func (e Element) Increment() float64 { return e.incrementS }

// Channels returns the union of all channels the element drives.
func (e Element) Channels() ChannelSet { return e.channels.Clone() }

// AnalogOutputs returns a copy of the channel-to-waveform assignment.
func (e Element) AnalogOutputs() map[Channel]waveform.Spec {
	copied := make(map[Channel]waveform.Spec, len(e.analog))
	for ch, spec := range e.analog {
		copied[ch] = spec
	}
	return copied
}

// DigitalOutputs returns a copy of the channel-to-level assignment.
func (e Element) DigitalOutputs() map[Channel]bool {
	copied := make(map[Channel]bool, len(e.digital))
	for ch, high := range e.digital {
		copied[ch] = high
	}
	return copied
}

// AnalogOutput returns the waveform on a single channel and whether the
// channel is part of the element.
func (e Element) AnalogOutput(ch Channel) (waveform.Spec, bool) {
	spec, ok := e.analog[ch]
	return spec, ok
}

// DigitalHigh reports whether the given digital channel is high, and whether
// the channel is part of the element.
func (e Element) DigitalHigh(ch Channel) (bool, bool) {
	high, ok := e.digital[ch]
	return high, ok
}

// Equal reports value equality of durations and all per-channel outputs.
func (e Element) Equal(other Element) bool {
	if e.durationS != other.durationS || e.incrementS != other.incrementS {
		return false
	}
	if len(e.analog) != len(other.analog) || len(e.digital) != len(other.digital) {
		return false
	}
	for ch, spec := range e.analog {
		otherSpec, ok := other.analog[ch]
		if !ok || !spec.Equal(otherSpec) {
			return false
		}
	}
	for ch, high := range e.digital {
		otherHigh, ok := other.digital[ch]
		if !ok || otherHigh != high {
			return false
		}
	}
	return true
}
