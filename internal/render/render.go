package render

import (
	"errors"
	"image"
)

var (
	// ErrPresentation wraps any failure of the window to size, resize or draw.
	ErrPresentation = errors.New("presentation failure")

	// ErrUnsupported means the requested backend is not available in this build.
	ErrUnsupported = errors.New("window backend not supported")
)

// Window is the windowing layer driven by the loop.
type Window interface {
	// PollClose drains pending window events and reports whether a close
	// was requested. It must not block.
	PollClose() bool

	// Size returns the current drawable size.
	Size() (width, height int, err error)

	// Resize sets the drawable to side x side.
	Resize(side int) error

	// Present draws img at the window origin and shows it.
	Present(img *image.RGBA) error

	Close() error
}

// Logger is the component-tagged logger the render package writes to.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}
