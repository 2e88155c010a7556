package channel

import "errors"

var (
	// ErrChannelUnavailable means the backing file could not be opened or mapped.
	ErrChannelUnavailable = errors.New("channel unavailable")

	// ErrInvalidDimension means the header declared an unusable side length,
	// or a later header disagreed with the mapped one.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrRendererGone is returned by Producer.WaitConsumed when no frame was
	// consumed before the timeout.
	ErrRendererGone = errors.New("renderer stopped consuming frames")

	// ErrClosed is returned for operations on a closed mapping.
	ErrClosed = errors.New("channel closed")
)
