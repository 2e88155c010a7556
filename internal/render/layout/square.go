package layout

const (
	// DefaultMinSide is the smallest initial window side.
	DefaultMinSide = 512

	// MaxSide bounds every side this package returns. It fits the int32
	// window sizes of the backends.
	MaxSide = 1 << 15
)

// InitialSide doubles dimension until it reaches minSide. The result never
// exceeds MaxSide unless dimension already does.
func InitialSide(dimension, minSide int) int {
	minSide = min(minSide, MaxSide)
	if dimension <= 0 {
		return minSide
	}
	side := dimension
	for side < minSide {
		side = min(side*2, MaxSide)
	}
	return side
}

// NextSquare picks the side of the square window for the observed drawable
// size. A min side that moved away from previous wins (shrink to the tighter
// dimension); otherwise the window grows to the max side. Only one dimension
// is followed per call, so a simultaneous width and height drag settles over
// two calls. An empty drawable, such as a minimised window, keeps previous.
func NextSquare(previous, width, height int) (next int, changed bool) {
	lo, hi := min(width, height), max(width, height)
	if lo <= 0 {
		return previous, false
	}
	candidate := hi
	if lo != previous {
		candidate = lo
	}
	if candidate == previous {
		return previous, false
	}
	return candidate, true
}

// Square tracks the last applied side across ticks.
type Square struct {
	side int
}

// NewSquare seeds the tracker with the initial window side.
func NewSquare(initial int) *Square { return &Square{side: initial} }

// Side is the last applied side.
func (s *Square) Side() int { return s.side }

// Observe runs NextSquare against the tracked side and stores the result.
func (s *Square) Observe(width, height int) (side int, changed bool) {
	s.side, changed = NextSquare(s.side, width, height)
	return s.side, changed
}
