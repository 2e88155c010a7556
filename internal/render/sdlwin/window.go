//go:build cgo && !nosdl

// Package sdlwin is the resizable desktop window backend, built on SDL2.
package sdlwin

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"

	"github.com/rook-computer/shmview/internal/render"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL wants every video call on the thread that initialised it.
func init() { runtime.LockOSThread() }

// Window is a resizable desktop window. Frames are blitted onto the
// window surface straight from the composed RGBA buffer.
type Window struct {
	window *sdl.Window
	Logger render.Logger
}

// Open initialises SDL video and opens a side x side resizable window.
func Open(title string, side int, logger render.Logger) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("%w: sdl init: %v", render.ErrPresentation, err)
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(side), int32(side), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("%w: create window: %v", render.ErrPresentation, err)
	}
	if logger != nil {
		logger.Infof("sdl", "window open, %dx%d", side, side)
	}
	return &Window{window: window, Logger: logger}, nil
}

func (w *Window) PollClose() bool {
	closed := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			closed = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				closed = true
			}
		}
	}
	return closed
}

func (w *Window) Size() (int, int, error) {
	if w.window == nil {
		return 0, 0, fmt.Errorf("window destroyed")
	}
	width, height := w.window.GetSize()
	return int(width), int(height), nil
}

func (w *Window) Resize(side int) error {
	if w.window == nil {
		return fmt.Errorf("window destroyed")
	}
	w.window.SetSize(int32(side), int32(side))
	return nil
}

// Present wraps img.Pix in an SDL surface without copying and blits it at
// the origin. ABGR8888 is R,G,B,A byte order on little-endian hosts.
func (w *Window) Present(img *image.RGBA) error {
	if w.window == nil {
		return fmt.Errorf("window destroyed")
	}
	if len(img.Pix) == 0 {
		return nil
	}
	dst, err := w.window.GetSurface()
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	bounds := img.Bounds()
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&img.Pix[0]),
		int32(bounds.Dx()), int32(bounds.Dy()), 32, int32(img.Stride), uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return fmt.Errorf("wrap frame: %w", err)
	}
	defer src.Free()
	if err := src.SetBlendMode(sdl.BLENDMODE_NONE); err != nil {
		return fmt.Errorf("blend mode: %w", err)
	}

	if err := src.Blit(nil, dst, &sdl.Rect{X: 0, Y: 0, W: int32(bounds.Dx()), H: int32(bounds.Dy())}); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	if err := w.window.UpdateSurface(); err != nil {
		return fmt.Errorf("update surface: %w", err)
	}
	runtime.KeepAlive(img)
	return nil
}

func (w *Window) Close() error {
	var err error
	if w.window != nil {
		err = w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
	return err
}
