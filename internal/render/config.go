package render

import (
	"fmt"
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"
)

// Global render configuration.
var (
	// HUD text and its backing box.
	HUDForeground = color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF} // #ffdc00
	HUDBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xB0}

	// DefaultPollInterval is the loop tick.
	DefaultPollInterval = 5 * time.Millisecond

	// HeartbeatInterval spaces the loop's stats log and dimension check.
	HeartbeatInterval = time.Second
)

// Filter names a rescale interpolator. One filter is used for the whole run.
type Filter string

const (
	FilterNearest        Filter = "nearest"
	FilterApproxBiLinear Filter = "approx-bilinear"
	FilterBiLinear       Filter = "bilinear"
	FilterCatmullRom     Filter = "catmull-rom"
)

// Interpolator returns the x/image/draw scaler for f.
func (f Filter) Interpolator() (xdraw.Interpolator, error) {
	switch f {
	case FilterNearest, "":
		return xdraw.NearestNeighbor, nil
	case FilterApproxBiLinear:
		return xdraw.ApproxBiLinear, nil
	case FilterBiLinear:
		return xdraw.BiLinear, nil
	case FilterCatmullRom:
		return xdraw.CatmullRom, nil
	}
	return nil, fmt.Errorf("unknown filter %q (want nearest, approx-bilinear, bilinear or catmull-rom)", string(f))
}
