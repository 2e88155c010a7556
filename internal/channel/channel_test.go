//go:build unix

package channel

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newPair(t *testing.T, dim uint32) (*Producer, *Channel) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.graphics")
	p, err := Create(path, dim)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return p, c
}

func writeHeaderFile(t *testing.T, h Header, rasterBytes int) string {
	t.Helper()
	buf := make([]byte, HeaderSize+rasterBytes)
	h.MarshalTo(buf)
	path := filepath.Join(t.TempDir(), "frame")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("err = %v, want ErrChannelUnavailable", err)
	}
}

func TestOpenShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short")
	if err := os.WriteFile(path, []byte{0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("err = %v, want ErrChannelUnavailable", err)
	}
}

func TestOpenZeroDimension(t *testing.T) {
	path := writeHeaderFile(t, Header{Dimension: 0}, 0)
	_, err := Open(path)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestOpenOversizedDimension(t *testing.T) {
	path := writeHeaderFile(t, Header{Dimension: MaxDimension + 1}, 0)
	_, err := Open(path)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
}

func TestOpenTruncatedRaster(t *testing.T) {
	path := writeHeaderFile(t, Header{Dimension: 4}, 4*4*3-1)
	_, err := Open(path)
	if !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("err = %v, want ErrChannelUnavailable", err)
	}
}

func TestOpenKeepsOnDiskFlag(t *testing.T) {
	path := writeHeaderFile(t, Header{Consumed: true, Dimension: 2}, 2*2*3)
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.State() != Idle {
		t.Errorf("State = %v, want idle", c.State())
	}
	if c.Dimension() != 2 {
		t.Errorf("Dimension = %d, want 2", c.Dimension())
	}
}

func TestCreateStartsReady(t *testing.T) {
	p, c := newPair(t, 8)
	if p.State() != Ready || c.State() != Ready {
		t.Fatalf("states = %v/%v, want ready", p.State(), c.State())
	}
	if got := c.Raster().RGBAAt(3, 3); got != (color.RGBA{A: 0xFF}) {
		t.Errorf("fresh pixel = %v, want black", got)
	}
}

func TestRasterIsZeroCopy(t *testing.T) {
	p, c := newPair(t, 4)
	p.Canvas().SetRGB(1, 2, 10, 20, 30)
	if got := c.Raster().RGBAAt(1, 2); got != (color.RGBA{10, 20, 30, 0xFF}) {
		t.Fatalf("viewer sees %v", got)
	}

	p.Canvas().Fill(color.RGBA{R: 0xFF, A: 0xFF})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := c.Raster().RGBAAt(x, y); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
				t.Fatalf("pixel (%d,%d) = %v after fill", x, y, got)
			}
		}
	}
}

func TestRasterRowMajor(t *testing.T) {
	p, c := newPair(t, 3)
	p.Canvas().SetRGB(2, 0, 1, 2, 3)
	pix := p.Canvas().Pix()
	if pix[6] != 1 || pix[7] != 2 || pix[8] != 3 {
		t.Errorf("(2,0) should land at byte 6, got %v", pix[:9])
	}
	p.Canvas().SetRGB(0, 1, 4, 5, 6)
	if pix[9] != 4 {
		t.Errorf("(0,1) should land at byte 9, got %v", pix[9:12])
	}
	if c.Raster().RGBAAt(5, 5) != (color.RGBA{A: 0xFF}) {
		t.Error("out of bounds read should be opaque black")
	}
}

func TestFlagHandshake(t *testing.T) {
	p, c := newPair(t, 2)
	c.MarkIdle()
	if p.State() != Idle {
		t.Fatalf("producer sees %v after MarkIdle", p.State())
	}
	if !p.Header().Consumed {
		t.Error("header consumed flag not set")
	}
	p.Publish()
	if c.State() != Ready {
		t.Fatalf("viewer sees %v after Publish", c.State())
	}
}

func TestDropOnOverwrite(t *testing.T) {
	p, c := newPair(t, 2)
	c.MarkIdle()

	p.Canvas().Fill(color.RGBA{R: 0xFF, A: 0xFF})
	p.Publish()
	p.Canvas().Fill(color.RGBA{B: 0xFF, A: 0xFF})
	p.Publish()

	if c.State() != Ready {
		t.Fatal("expected ready")
	}
	if got := c.Raster().RGBAAt(0, 0); got != (color.RGBA{B: 0xFF, A: 0xFF}) {
		t.Fatalf("viewer sees %v, want only frame B", got)
	}
	c.MarkIdle()
	if c.State() != Idle {
		t.Fatal("one consume should clear both publishes")
	}
}

func TestWaitConsumed(t *testing.T) {
	p, c := newPair(t, 2)
	go func() {
		time.Sleep(5 * time.Millisecond)
		c.MarkIdle()
	}()
	if err := p.WaitConsumed(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitConsumed: %v", err)
	}
}

func TestWaitConsumedTimeout(t *testing.T) {
	p, _ := newPair(t, 2)
	err := p.WaitConsumed(context.Background(), 10*time.Millisecond)
	if !errors.Is(err, ErrRendererGone) {
		t.Fatalf("err = %v, want ErrRendererGone", err)
	}
}

func TestWaitConsumedCancel(t *testing.T) {
	p, _ := newPair(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.WaitConsumed(ctx, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckDimension(t *testing.T) {
	p, c := newPair(t, 4)
	if err := c.CheckDimension(); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	byteOrder.PutUint32(p.mem[dimensionOffset:], 8)
	err := c.CheckDimension()
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
	if c.Raster().Dimension() != 4 {
		t.Error("mapping must not follow the new dimension")
	}
}

func TestCloseTwice(t *testing.T) {
	_, c := newPair(t, 2)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := c.CheckDimension(); !errors.Is(err, ErrClosed) {
		t.Fatalf("CheckDimension after close = %v", err)
	}
}

func TestFlagAfterClose(t *testing.T) {
	p, c := newPair(t, 2)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.State() != Idle {
		t.Errorf("State after close = %v, want Idle", c.State())
	}
	c.MarkIdle()
	if p.State() != Ready {
		t.Error("MarkIdle on a closed channel reached the file")
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	p.Publish()
	if p.State() != Idle {
		t.Errorf("producer State after close = %v, want Idle", p.State())
	}
}

func TestCreateInvalidDimension(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "x"), 0)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v", err)
	}
}
