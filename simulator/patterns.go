package main

import (
	"fmt"
	"math/rand"
	"sort"
)

// canvas is the part of channel.Canvas the patterns draw with.
type canvas interface {
	Dimension() int
	SetRGB(x, y int, r, g, b uint8)
}

// pattern draws frame number n onto c.
type pattern func(c canvas, n int, rng *rand.Rand)

var patterns = map[string]pattern{
	"noise":   noisePattern,
	"solid":   solidPattern,
	"checker": checkerPattern,
}

func lookupPattern(name string) (pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q (want one of %v)", name, patternNames())
	}
	return p, nil
}

func patternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// noisePattern: red follows x, blue follows y, green is random per pixel
// and shifts with n.
func noisePattern(c canvas, n int, rng *rand.Rand) {
	dim := c.Dimension()
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			c.SetRGB(x, y, uint8(x), uint8(n+rng.Int()), uint8(y))
		}
	}
}

// solidPattern fills the frame with one color that steps through the
// red, green, blue wheel.
func solidPattern(c canvas, n int, _ *rand.Rand) {
	r, g, b := wheel(uint8(n))
	dim := c.Dimension()
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			c.SetRGB(x, y, r, g, b)
		}
	}
}

// checkerPattern draws 8px squares that scroll one pixel per frame.
func checkerPattern(c canvas, n int, _ *rand.Rand) {
	const cell = 8
	dim := c.Dimension()
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if ((x+n)/cell+y/cell)%2 == 0 {
				c.SetRGB(x, y, 0xFF, 0xFF, 0xFF)
			} else {
				c.SetRGB(x, y, 0, 0, 0)
			}
		}
	}
}

func wheel(pos uint8) (r, g, b uint8) {
	switch {
	case pos < 85:
		return 255 - pos*3, pos * 3, 0
	case pos < 170:
		pos -= 85
		return 0, 255 - pos*3, pos * 3
	default:
		pos -= 170
		return pos * 3, 0, 255 - pos*3
	}
}
