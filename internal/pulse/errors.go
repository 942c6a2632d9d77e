package pulse

import "errors"

// Sentinel errors returned by the entity types. Wrap-aware callers should
// match them with errors.Is.
var (
	// ErrPositionOutOfRange indicates a position-addressed operation referenced
	// an index outside the valid range of the target list.
	ErrPositionOutOfRange = errors.New("pulse: position out of range")

	// ErrChannelSetMismatch indicates an element whose channel set differs from
	// the channel set already established by its block.
	ErrChannelSetMismatch = errors.New("pulse: mixed channel sets in one block")

	// ErrChannelKind indicates a channel assigned to an output of the wrong
	// kind, e.g. a digital channel carrying a waveform.
	ErrChannelKind = errors.New("pulse: channel kind does not match output kind")

	// ErrNegativeRepetitions indicates a repetition count below zero where only
	// zero or more extra playbacks are meaningful.
	ErrNegativeRepetitions = errors.New("pulse: negative repetitions")

	// ErrInvalidChannel indicates a channel name that does not follow the
	// "a_chN" / "d_chN" convention.
	ErrInvalidChannel = errors.New("pulse: invalid channel name")
)
