package layout

import (
	"image"
	"testing"
)

func TestInitialSide(t *testing.T) {
	cases := []struct {
		dim, min, want int
	}{
		{64, 512, 512},
		{100, 512, 800},
		{512, 512, 512},
		{600, 512, 600},
		{1, 512, 512},
		{3, 512, 768},
		{64, 100, 128},
		{0, 512, 512},
		{8192, MaxSide, MaxSide},
		{3, MaxSide, MaxSide},
		{8192, 1<<62 + 1, MaxSide},
		{0, 1 << 40, MaxSide},
		{MaxSide * 2, 512, MaxSide * 2},
	}
	for _, tc := range cases {
		if got := InitialSide(tc.dim, tc.min); got != tc.want {
			t.Errorf("InitialSide(%d, %d) = %d, want %d", tc.dim, tc.min, got, tc.want)
		}
	}
}

func TestNextSquare(t *testing.T) {
	cases := []struct {
		name        string
		prev, w, h  int
		want        int
		wantChanged bool
	}{
		{"shrink to tighter", 256, 200, 300, 200, true},
		{"tight held grows to loose", 200, 200, 300, 300, true},
		{"square stays", 512, 512, 512, 512, false},
		{"width drag grows", 512, 700, 512, 700, true},
		{"height drag grows", 512, 512, 640, 640, true},
		{"width shrink", 512, 400, 512, 400, true},
		{"both shrink takes min", 512, 300, 400, 300, true},
		{"both grow takes min first", 512, 600, 700, 600, true},
		{"zero width holds", 512, 0, 300, 512, false},
		{"zero height holds", 512, 300, 0, 512, false},
		{"minimised holds", 512, 0, 0, 512, false},
		{"negative holds", 512, -5, 300, 512, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := NextSquare(tc.prev, tc.w, tc.h)
			if got != tc.want || changed != tc.wantChanged {
				t.Errorf("NextSquare(%d, %d, %d) = (%d, %v), want (%d, %v)",
					tc.prev, tc.w, tc.h, got, changed, tc.want, tc.wantChanged)
			}
		})
	}
}

func TestSquareTwoTickSequence(t *testing.T) {
	sq := NewSquare(256)
	if side, changed := sq.Observe(200, 300); side != 200 || !changed {
		t.Fatalf("first tick = (%d, %v), want (200, true)", side, changed)
	}
	if side, changed := sq.Observe(200, 300); side != 300 || !changed {
		t.Fatalf("second tick = (%d, %v), want (300, true)", side, changed)
	}
	// A window that honoured the resize now reports a square.
	if side, changed := sq.Observe(300, 300); side != 300 || changed {
		t.Fatalf("settled tick = (%d, %v), want (300, false)", side, changed)
	}
	if sq.Side() != 300 {
		t.Errorf("Side = %d", sq.Side())
	}
}

func TestAnchorTopLeftNormalizes(t *testing.T) {
	got := AnchorTopLeft(image.Rect(10, 10, 0, 0), 4, 4)
	if got != image.Rect(0, 0, 4, 4) {
		t.Errorf("AnchorTopLeft of inverted rect = %v", got)
	}
}

func TestAnchorTopLeftClamps(t *testing.T) {
	got := AnchorTopLeft(image.Rect(0, 0, 100, 50), 512, -3)
	if got != image.Rect(0, 0, 100, 0) {
		t.Errorf("AnchorTopLeft = %v", got)
	}
}
