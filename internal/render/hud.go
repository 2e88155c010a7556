package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	HUDOff   = ""
	HUDBasic = "basic"
	HUDGo    = "go"

	hudPadding = 4
	hudSizePt  = 14
)

// HUD draws a few lines of status text over the top-left of a frame.
type HUD struct {
	face font.Face
}

// NewHUD returns nil for HUDOff. HUDGo parses the Go regular font through
// freetype and falls back to the fixed basic face if that fails.
func NewHUD(kind string, logger Logger) (*HUD, error) {
	switch kind {
	case HUDOff:
		return nil, nil
	case HUDBasic:
		return &HUD{face: basicfont.Face7x13}, nil
	case HUDGo:
		tt, err := truetype.Parse(goregular.TTF)
		if err != nil {
			if logger != nil {
				logger.Errorf("hud", "truetype parse failed, using basicfont: %v", err)
			}
			return &HUD{face: basicfont.Face7x13}, nil
		}
		face := truetype.NewFace(tt, &truetype.Options{Size: hudSizePt, DPI: 72, Hinting: font.HintingFull})
		return &HUD{face: face}, nil
	}
	return nil, fmt.Errorf("unknown hud %q (want basic or go)", kind)
}

// Draw renders lines onto dst. A nil HUD draws nothing.
func (h *HUD) Draw(dst *image.RGBA, lines []string) {
	if h == nil || len(lines) == 0 {
		return
	}
	metrics := h.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(HUDForeground), Face: h.face}
	width := 0
	for _, line := range lines {
		width = max(width, drawer.MeasureString(line).Ceil())
	}
	box := image.Rect(0, 0, width+2*hudPadding, len(lines)*lineHeight+2*hudPadding).Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(HUDBackground), image.Point{}, draw.Over)

	for i, line := range lines {
		baseline := hudPadding + i*lineHeight + ascent
		drawer.Dot = fixed.P(hudPadding, baseline)
		drawer.DrawString(line)
	}
}
