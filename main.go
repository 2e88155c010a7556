package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/shmview/internal/app"
	"github.com/rook-computer/shmview/internal/render"
	"github.com/rook-computer/shmview/internal/render/sdlwin"
	"github.com/rook-computer/shmview/internal/state"
)

func main() {
	defaults, err := app.DefaultConfigFromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// Flags
	file := flag.String("file", defaults.File, "backing file written by the producer; also configurable via "+app.EnvFile)
	backend := flag.String("backend", defaults.Backend, "window backend: sdl | fb; also configurable via "+app.EnvBackend)
	interval := flag.Duration("interval", defaults.Interval, "flag poll interval; also configurable via "+app.EnvInterval)
	filter := flag.String("filter", string(defaults.Filter), "rescale filter: nearest | approx-bilinear | bilinear | catmull-rom; also configurable via "+app.EnvFilter)
	minSize := flag.Int("min-size", defaults.MinSize, "smallest initial window side; also configurable via "+app.EnvMinSize)
	hud := flag.String("hud", defaults.HUD, "status overlay: empty (off) | basic | go; also configurable via "+app.EnvHUD)
	fbDev := flag.String("fbdev", defaults.FBDev, "framebuffer device for -backend fb; also configurable via "+app.EnvFBDev)
	debug := flag.Bool("debug", false, "enable debug logging to ./shmview-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via SHMVIEW_STDIO_LOG")
	flag.Parse()

	// Best-effort: keep panics when the console is in graphics mode (-backend fb).
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("SHMVIEW_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	cfg := app.Config{
		File:     *file,
		Backend:  *backend,
		Interval: *interval,
		Filter:   render.Filter(*filter),
		MinSize:  *minSize,
		HUD:      *hud,
		FBDev:    *fbDev,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./shmview-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, state.NewStore(), windowOpener(cfg, logger))
	a.Logger = logger

	if err := a.Run(ctx); err != nil {
		fmt.Println("shmview:", err)
		stop()
		os.Exit(1)
	}
}

func windowOpener(cfg app.Config, logger app.Logger) app.WindowOpener {
	return func(ctx context.Context, side int) (render.Window, error) {
		switch cfg.Backend {
		case app.BackendFB:
			w, err := render.OpenFBWindow(ctx, cfg.FBDev, side, logger)
			if err != nil {
				return nil, err
			}
			return w, nil
		default:
			w, err := sdlwin.Open("shmview: "+cfg.File, side, logger)
			if err != nil {
				return nil, err
			}
			return w, nil
		}
	}
}
