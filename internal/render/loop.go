package render

import (
	"context"
	"fmt"
	"time"

	"github.com/rook-computer/shmview/internal/channel"
	"github.com/rook-computer/shmview/internal/render/layout"
	"github.com/rook-computer/shmview/internal/state"
)

// Source is the viewer's side of the frame channel.
type Source interface {
	State() channel.State
	MarkIdle()
	Raster() *channel.Raster
	CheckDimension() error
}

// TickResult says what one tick did.
type TickResult int

const (
	TickIdle TickResult = iota
	TickPresented
	TickClosed
)

func (r TickResult) String() string {
	switch r {
	case TickIdle:
		return "idle"
	case TickPresented:
		return "presented"
	case TickClosed:
		return "closed"
	}
	return "unknown"
}

// Loop polls the channel flag and presents every Ready frame. It runs on a
// single goroutine; the only wait is the sleep between ticks.
type Loop struct {
	Source   Source
	Window   Window
	Composer *Composer
	Store    *state.Store
	Logger   Logger
	Interval time.Duration

	square        *layout.Square
	lastBeat      time.Time
	driftReported bool
	now           func() time.Time
}

// NewLoop builds a loop whose square tracker starts at initialSide.
func NewLoop(src Source, win Window, composer *Composer, store *state.Store, initialSide int) *Loop {
	if store == nil {
		store = state.NewStore()
	}
	return &Loop{
		Source:   src,
		Window:   win,
		Composer: composer,
		Store:    store,
		Interval: DefaultPollInterval,
		square:   layout.NewSquare(initialSide),
		now:      time.Now,
	}
}

// Side is the last applied window side.
func (l *Loop) Side() int { return l.square.Side() }

// Tick runs one poll. Events are drained first, then the flag decides
// whether anything else happens. Idle ticks never touch the window or the
// flag. On a presented frame the flag is set Idle only after Present
// returned.
func (l *Loop) Tick() (TickResult, error) {
	if l.Window.PollClose() {
		return TickClosed, nil
	}

	if l.Source.State() == channel.Idle {
		l.Store.RecordIdle()
		return TickIdle, nil
	}

	width, height, err := l.Window.Size()
	if err != nil {
		return TickClosed, fmt.Errorf("%w: query size: %v", ErrPresentation, err)
	}
	side, resized := l.square.Observe(width, height)
	if resized {
		if l.Logger != nil {
			l.Logger.Infof("loop", "resize %dx%d -> %dx%d", width, height, side, side)
		}
		if err := l.Window.Resize(side); err != nil {
			return TickClosed, fmt.Errorf("%w: resize to %d: %v", ErrPresentation, side, err)
		}
	}

	img := l.Composer.Compose(l.Source.Raster(), side, l.hudLines())
	if err := l.Window.Present(img); err != nil {
		return TickClosed, fmt.Errorf("%w: present: %v", ErrPresentation, err)
	}

	l.Source.MarkIdle()
	l.Store.RecordFrame(side, resized, l.now())
	return TickPresented, nil
}

// Run ticks every Interval until the window is closed, ctx is done or a
// tick fails. A window close returns nil.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	l.lastBeat = l.now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		result, err := l.Tick()
		if err != nil {
			if l.Logger != nil {
				l.Logger.Errorf("loop", "%v, shutting down", err)
			}
			return err
		}
		if result == TickClosed {
			if l.Logger != nil {
				l.Logger.Infof("loop", "close requested")
			}
			return nil
		}
		l.heartbeat()
	}
}

func (l *Loop) heartbeat() {
	now := l.now()
	if now.Sub(l.lastBeat) < HeartbeatInterval {
		return
	}
	l.lastBeat = now

	if err := l.Source.CheckDimension(); err != nil && !l.driftReported {
		l.driftReported = true
		if l.Logger != nil {
			l.Logger.Errorf("channel", "%v; keeping the startup mapping", err)
		}
	}
	if l.Logger != nil {
		snap := l.Store.Snapshot()
		l.Logger.Infof("loop", "heartbeat phase=%s frames=%d idle=%d side=%d",
			snap.Phase, snap.Loop.Frames, snap.Loop.IdleTicks, snap.Loop.Side)
	}
}

func (l *Loop) hudLines() []string {
	if l.Composer.hud == nil {
		return nil
	}
	snap := l.Store.Snapshot()
	return []string{
		fmt.Sprintf("frame %d", snap.Loop.Frames+1),
		fmt.Sprintf("%dpx -> %dpx", l.Source.Raster().Dimension(), l.square.Side()),
		fmt.Sprintf("idle ticks %d", snap.Loop.IdleTicks),
	}
}
