//go:build !linux || !cgo

package render

import (
	"context"
	"fmt"
)

// OpenFBWindow needs Linux and cgo.
func OpenFBWindow(ctx context.Context, path string, initialSide int, logger Logger) (Window, error) {
	return nil, fmt.Errorf("%w: framebuffer backend needs linux and cgo", ErrUnsupported)
}
