package generation

import "errors"

var (
	// ErrChannelUnset indicates a helper needed a channel that the settings
	// leave unwired.
	ErrChannelUnset = errors.New("generation: required channel not configured")

	// ErrNoTones indicates a multi-tone microwave element was requested
	// without a single complete tone.
	ErrNoTones = errors.New("generation: no complete microwave tone given")

	// ErrUnknownBlock indicates an ensemble step references a block that is
	// not among the supplied blocks.
	ErrUnknownBlock = errors.New("generation: ensemble references unknown block")
)
