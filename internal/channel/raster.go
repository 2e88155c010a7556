package channel

import (
	"image"
	"image/color"
)

// Raster is a read-only image view over RGB triples in the mapping. Every
// At call reads the shared bytes, so producer writes show up without a
// refresh.
type Raster struct {
	pix []byte
	dim int
}

func newRaster(pix []byte, dim int) *Raster {
	return &Raster{pix: pix[:dim*dim*BytesPerPixel], dim: dim}
}

// Dimension is the side length in pixels.
func (r *Raster) Dimension() int { return r.dim }

func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.dim, r.dim) }

func (r *Raster) At(x, y int) color.Color { return r.RGBAAt(x, y) }

// RGBAAt returns the pixel at (x, y), opaque black outside the raster.
func (r *Raster) RGBAAt(x, y int) color.RGBA {
	i, ok := r.offset(x, y)
	if !ok {
		return color.RGBA{A: 0xFF}
	}
	p := r.pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
}

// RGBA64At lets x/image/draw sample without boxing a color per pixel.
func (r *Raster) RGBA64At(x, y int) color.RGBA64 {
	c := r.RGBAAt(x, y)
	return color.RGBA64{
		R: uint16(c.R) * 0x101,
		G: uint16(c.G) * 0x101,
		B: uint16(c.B) * 0x101,
		A: 0xFFFF,
	}
}

func (r *Raster) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= r.dim || y >= r.dim {
		return 0, false
	}
	return (y*r.dim + x) * BytesPerPixel, true
}

// Canvas is the producer's writable view of the raster.
type Canvas struct {
	Raster
}

// Set stores c at (x, y); the alpha channel is dropped.
func (c *Canvas) Set(x, y int, col color.Color) {
	i, ok := c.offset(x, y)
	if !ok {
		return
	}
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	c.pix[i] = rgba.R
	c.pix[i+1] = rgba.G
	c.pix[i+2] = rgba.B
}

// SetRGB stores one triple without going through color.Color.
func (c *Canvas) SetRGB(x, y int, r, g, b uint8) {
	i, ok := c.offset(x, y)
	if !ok {
		return
	}
	c.pix[i] = r
	c.pix[i+1] = g
	c.pix[i+2] = b
}

// Fill paints the whole raster with one color.
func (c *Canvas) Fill(col color.Color) {
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	for i := 0; i+BytesPerPixel <= len(c.pix); i += BytesPerPixel {
		c.pix[i] = rgba.R
		c.pix[i+1] = rgba.G
		c.pix[i+2] = rgba.B
	}
}

// Pix exposes the raw row-major RGB bytes.
func (c *Canvas) Pix() []byte { return c.pix }
