//go:build !cgo || nosdl

package sdlwin

import (
	"fmt"

	"github.com/rook-computer/shmview/internal/render"
)

// Open reports render.ErrUnsupported in builds without cgo or with the
// nosdl tag.
func Open(title string, side int, logger render.Logger) (render.Window, error) {
	return nil, fmt.Errorf("%w: built without SDL (needs cgo)", render.ErrUnsupported)
}
