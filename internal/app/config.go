package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rook-computer/shmview/internal/render"
	"github.com/rook-computer/shmview/internal/render/layout"
)

const (
	EnvFile     = "SHMVIEW_FILE"
	EnvBackend  = "SHMVIEW_BACKEND"
	EnvInterval = "SHMVIEW_INTERVAL"
	EnvFilter   = "SHMVIEW_FILTER"
	EnvMinSize  = "SHMVIEW_MIN_SIZE"
	EnvHUD      = "SHMVIEW_HUD"
	EnvFBDev    = "SHMVIEW_FBDEV"

	BackendSDL = "sdl"
	BackendFB  = "fb"

	DefaultFile  = "game.graphics"
	DefaultFBDev = "/dev/fb0"
)

// Config contains settings for the viewer. Env values seed the defaults;
// main applies flags on top and then calls Validate.
type Config struct {
	File     string
	Backend  string
	Interval time.Duration
	Filter   render.Filter
	MinSize  int
	HUD      string
	FBDev    string
}

func DefaultConfig() Config {
	return Config{
		File:     DefaultFile,
		Backend:  BackendSDL,
		Interval: render.DefaultPollInterval,
		Filter:   render.FilterNearest,
		MinSize:  layout.DefaultMinSide,
		HUD:      render.HUDOff,
		FBDev:    DefaultFBDev,
	}
}

// DefaultConfigFromEnv overlays the SHMVIEW_* variables on DefaultConfig.
func DefaultConfigFromEnv() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvFile); ok && v != "" {
		cfg.File = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		cfg.Backend = v
	}
	if v, ok := lookup(EnvFilter); ok && v != "" {
		cfg.Filter = render.Filter(v)
	}
	if v, ok := lookup(EnvHUD); ok {
		cfg.HUD = v
	}
	if v, ok := lookup(EnvFBDev); ok && v != "" {
		cfg.FBDev = v
	}
	if raw, ok := lookup(EnvInterval); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvInterval, raw, err)
		}
		cfg.Interval = d
	}
	if raw, ok := lookup(EnvMinSize); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvMinSize, raw, err)
		}
		cfg.MinSize = n
	}
	return cfg, nil
}

// Validate checks values that flags or env could have set.
func (c Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("backing file path is empty")
	}
	switch c.Backend {
	case BackendSDL, BackendFB:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSDL, BackendFB)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.Interval)
	}
	if c.MinSize <= 0 || c.MinSize > layout.MaxSide {
		return fmt.Errorf("min size must be in 1..%d, got %d", layout.MaxSide, c.MinSize)
	}
	if _, err := c.Filter.Interpolator(); err != nil {
		return err
	}
	switch c.HUD {
	case render.HUDOff, render.HUDBasic, render.HUDGo:
	default:
		return fmt.Errorf("unknown hud %q (want basic or go)", c.HUD)
	}
	return nil
}
