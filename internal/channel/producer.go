package channel

import (
	"context"
	"fmt"
	"os"
	"time"
)

// ConsumePollInterval is how often WaitConsumed re-reads the flag.
const ConsumePollInterval = time.Millisecond

// Producer is the writing side of the backing file: it owns the raster bytes
// and the Ready value of the flag.
type Producer struct {
	segment
	canvas *Canvas
}

// Create creates or truncates the backing file at path, sizes it for a
// dimension x dimension raster, writes the header and maps it. The raster
// starts black and the flag starts Ready so a viewer draws the first frame.
func Create(path string, dimension uint32) (*Producer, error) {
	hdr := Header{Consumed: false, Dimension: dimension}
	if err := hdr.Validate(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrChannelUnavailable, path, err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(path)
	}

	if err := file.Truncate(int64(hdr.FileSize())); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: resize %s: %v", ErrChannelUnavailable, path, err)
	}

	mem, err := mapFile(file, hdr.FileSize())
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	hdr.MarshalTo(mem)

	dim := int(dimension)
	return &Producer{
		segment: segment{path: path, file: file, mem: mem, dim: dim},
		canvas:  &Canvas{Raster: *newRaster(mem[HeaderSize:], dim)},
	}, nil
}

// Canvas is the writable raster, mapped straight onto the file.
func (p *Producer) Canvas() *Canvas { return p.canvas }

// State re-reads the flag.
func (p *Producer) State() State { return stateOf(p.flag()) }

// Publish marks the raster as a new frame. A frame published before the
// viewer consumed the previous one replaces it.
func (p *Producer) Publish() { p.setFlag(0) }

// WaitConsumed polls until the viewer marks the frame Idle. It returns
// ErrRendererGone if that does not happen within timeout.
func (p *Producer) WaitConsumed(ctx context.Context, timeout time.Duration) error {
	if p.State() == Idle {
		return nil
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(ConsumePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if p.State() == Idle {
				return nil
			}
			return fmt.Errorf("%w: no frame consumed after %v", ErrRendererGone, timeout)
		case <-ticker.C:
			if p.State() == Idle {
				return nil
			}
		}
	}
}
