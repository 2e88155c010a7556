// Command simulator is a stand-in producer: it creates the backing file and
// publishes test-pattern frames until the viewer stops consuming them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/shmview/internal/app"
	"github.com/rook-computer/shmview/internal/channel"
)

type options struct {
	pattern      pattern
	firstTimeout time.Duration
	frameTimeout time.Duration
	frames       int
	wait         bool
	interval     time.Duration
}

func main() {
	defaults, err := app.DefaultConfigFromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	file := flag.String("file", defaults.File, "backing file to create; also configurable via "+app.EnvFile)
	dim := flag.Uint("dim", 256, "raster side length in pixels")
	patternName := flag.String("pattern", "noise", "frame pattern: checker | noise | solid")
	firstTimeout := flag.Duration("first-timeout", 10*time.Second, "how long to wait for the viewer to consume the first frame")
	frameTimeout := flag.Duration("frame-timeout", time.Second, "give up when a frame is not consumed within this time")
	frames := flag.Int("frames", 0, "stop after this many frames (0 = until the viewer goes away)")
	wait := flag.Bool("wait", true, "wait for each frame to be consumed before drawing the next; false overwrites unconsumed frames")
	interval := flag.Duration("interval", 0, "minimum time between frames")
	flag.Parse()

	p, err := lookupPattern(*patternName)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer, err := channel.Create(*file, uint32(*dim))
	if err != nil {
		fmt.Println("create error:", err)
		os.Exit(1)
	}
	defer producer.Close()

	fmt.Println("Simulator writing", producer.Path())
	fmt.Println("Dimension:", producer.Dimension(), "Pattern:", *patternName)

	opts := options{
		pattern:      p,
		firstTimeout: *firstTimeout,
		frameTimeout: *frameTimeout,
		frames:       *frames,
		wait:         *wait,
		interval:     *interval,
	}
	n, err := run(processCtx, producer, opts, rand.New(rand.NewSource(time.Now().UnixNano())))
	switch {
	case errors.Is(err, channel.ErrRendererGone):
		fmt.Printf("no frame after %v, closing\n", opts.frameTimeout)
	case errors.Is(err, context.Canceled):
	case err != nil:
		fmt.Println("simulator error:", err)
	}
	fmt.Println("Frames published:", n)
}

// publisher is the producer surface run needs.
type publisher interface {
	Canvas() *channel.Canvas
	Publish()
	WaitConsumed(ctx context.Context, timeout time.Duration) error
}

// run waits for the viewer to take the initial blank frame, then draws and
// publishes frames. It returns the number of frames published.
func run(ctx context.Context, p publisher, opts options, rng *rand.Rand) (int, error) {
	if err := p.WaitConsumed(ctx, opts.firstTimeout); err != nil {
		return 0, err
	}
	published := 0
	for opts.frames == 0 || published < opts.frames {
		started := time.Now()
		opts.pattern(p.Canvas(), published, rng)
		p.Publish()
		published++

		if opts.wait {
			if err := p.WaitConsumed(ctx, opts.frameTimeout); err != nil {
				return published, err
			}
		}
		if ctx.Err() != nil {
			return published, ctx.Err()
		}
		if rest := opts.interval - time.Since(started); rest > 0 {
			select {
			case <-ctx.Done():
				return published, ctx.Err()
			case <-time.After(rest):
			}
		}
	}
	return published, nil
}
