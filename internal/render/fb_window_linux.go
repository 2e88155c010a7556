//go:build linux && cgo

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/shmview/internal/render/layout"
	"github.com/rook-computer/shmview/internal/system"
)

// FBWindow presents frames on a Linux framebuffer device. The device has a
// fixed size, so the "window" is a square region anchored at the top-left
// and clamped to the device bounds. A close request comes from the evdev
// close keys.
type FBWindow struct {
	dev     *fb.Device
	bounds  image.Rectangle
	area    image.Rectangle
	closeRq atomic.Bool
	cancel  context.CancelFunc
	restore func()
	Logger  Logger
}

// OpenFBWindow opens the framebuffer at path and sizes the drawing area to
// initialSide.
func OpenFBWindow(ctx context.Context, path string, initialSide int, logger Logger) (*FBWindow, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open framebuffer %s: %v", ErrPresentation, path, err)
	}
	w := &FBWindow{dev: dev, bounds: dev.Bounds(), Logger: logger}
	if logger != nil {
		logger.Infof("fb", "framebuffer open, bounds=%dx%d", w.bounds.Dx(), w.bounds.Dy())
	}

	w.restore = system.ConsoleGraphics(logger)

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	system.WatchCloseKeys(watchCtx, logger, system.DefaultCloseKeys, func() { w.closeRq.Store(true) })

	w.setArea(initialSide)
	return w, nil
}

func (w *FBWindow) setArea(side int) {
	w.area = layout.AnchorTopLeft(w.bounds, side, side)
}

func (w *FBWindow) PollClose() bool { return w.closeRq.Load() }

func (w *FBWindow) Size() (int, int, error) {
	return w.area.Dx(), w.area.Dy(), nil
}

// Resize clamps the square to the device and blanks the whole screen so a
// larger previous frame does not linger.
func (w *FBWindow) Resize(side int) error {
	w.setArea(side)
	draw.Draw(w.dev, w.bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return nil
}

func (w *FBWindow) Present(img *image.RGBA) error {
	rect := w.area.Intersect(img.Bounds().Add(w.bounds.Min))
	draw.Draw(w.dev, rect, img, rect.Min.Sub(w.bounds.Min), draw.Src)
	return nil
}

func (w *FBWindow) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.restore != nil {
		w.restore()
	}
	if w.dev != nil {
		w.dev.Close()
		w.dev = nil
	}
	return nil
}
