package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Composer rescales the shared raster into a square output image. The
// output buffer is reused while the side stays the same.
type Composer struct {
	scaler xdraw.Interpolator
	hud    *HUD
	canvas *image.RGBA
}

func NewComposer(filter Filter, hud *HUD) (*Composer, error) {
	scaler, err := filter.Interpolator()
	if err != nil {
		return nil, err
	}
	return &Composer{scaler: scaler, hud: hud}, nil
}

// Compose scales src onto a side x side canvas and draws the HUD lines, if
// any, on top. The returned image is owned by the Composer and is
// overwritten by the next call.
func (c *Composer) Compose(src image.Image, side int, hudLines []string) *image.RGBA {
	if side <= 0 {
		side = 1
	}
	if c.canvas == nil || c.canvas.Bounds().Dx() != side || c.canvas.Bounds().Dy() != side {
		c.canvas = image.NewRGBA(image.Rect(0, 0, side, side))
	}
	c.scaler.Scale(c.canvas, c.canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	c.hud.Draw(c.canvas, hudLines)
	return c.canvas
}
