package channel

import (
	"fmt"
	"os"
	"sync/atomic"
)

// State is the value of the handshake flag.
type State int

const (
	// Ready means a frame was written and not yet consumed (flag false).
	Ready State = iota
	// Idle means the last frame was consumed (flag true).
	Idle
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Idle:
		return "idle"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func stateOf(flag byte) State {
	if flag == 0 {
		return Ready
	}
	return Idle
}

// segment is the mapped backing file shared by Channel and Producer.
type segment struct {
	path   string
	file   *os.File
	mem    []byte
	dim    int
	closed atomic.Bool
}

// flag reads Idle once the segment is closed.
func (s *segment) flag() byte {
	if s.closed.Load() {
		return 1
	}
	return s.mem[flagOffset]
}

// setFlag is a no-op once the segment is closed.
func (s *segment) setFlag(v byte) {
	if s.closed.Load() {
		return
	}
	s.mem[flagOffset] = v
}

// Header re-reads the header from the mapping.
func (s *segment) Header() Header {
	h, _ := ParseHeader(s.mem)
	return h
}

func (s *segment) Path() string { return s.path }

// Dimension is the side length the raster was mapped with.
func (s *segment) Dimension() int { return s.dim }

// Close unmaps the file and closes it. Later calls return nil.
func (s *segment) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := unmap(s.mem)
	s.mem = nil
	if cerr := s.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Channel is the viewer's side of the backing file. It only ever writes the
// Idle value of the flag.
type Channel struct {
	segment
	raster *Raster
}

// Open maps an existing backing file. The dimension is read once from the
// header and fixes the raster mapping for the lifetime of the Channel.
func Open(path string) (*Channel, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrChannelUnavailable, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrChannelUnavailable, path, err)
	}
	if info.Size() < HeaderSize {
		file.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, header needs %d", ErrChannelUnavailable, path, info.Size(), HeaderSize)
	}

	// Map the header alone first; its dimension sizes the real mapping.
	probe, err := mapFile(file, HeaderSize)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	hdr, err := ParseHeader(probe)
	_ = unmap(probe)
	if err != nil {
		file.Close()
		return nil, err
	}
	if err := hdr.Validate(); err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() < int64(hdr.FileSize()) {
		file.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, dimension %d needs %d", ErrChannelUnavailable, path, info.Size(), hdr.Dimension, hdr.FileSize())
	}

	mem, err := mapFile(file, hdr.FileSize())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}

	dim := int(hdr.Dimension)
	return &Channel{
		segment: segment{path: path, file: file, mem: mem, dim: dim},
		raster:  newRaster(mem[HeaderSize:], dim),
	}, nil
}

// State re-reads the flag.
func (c *Channel) State() State { return stateOf(c.flag()) }

// MarkIdle records that the current frame was consumed.
func (c *Channel) MarkIdle() { c.setFlag(1) }

// Raster is the zero-copy view of the shared pixels.
func (c *Channel) Raster() *Raster { return c.raster }

// CheckDimension compares the live header against the mapped dimension.
// The mapping is never resized; a mismatch is only reported.
func (c *Channel) CheckDimension() error {
	if c.closed.Load() {
		return ErrClosed
	}
	live := c.Header().Dimension
	if int(live) != c.dim {
		return fmt.Errorf("%w: header now declares %d, mapped %d", ErrInvalidDimension, live, c.dim)
	}
	return nil
}
