package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rook-computer/shmview/internal/channel"
	"github.com/rook-computer/shmview/internal/render"
	"github.com/rook-computer/shmview/internal/render/layout"
	"github.com/rook-computer/shmview/internal/state"
)

// WindowOpener opens the output window at its initial square side.
type WindowOpener func(ctx context.Context, side int) (render.Window, error)

type App struct {
	Config     Config
	Store      *state.Store
	OpenWindow WindowOpener
	Logger     Logger
}

func New(cfg Config, store *state.Store, opener WindowOpener) *App {
	if store == nil {
		store = state.NewStore()
	}
	return &App{Config: cfg, Store: store, OpenWindow: opener, Logger: NoopLogger{}}
}

// Run maps the backing file, opens the window and drives the render loop
// until the window closes or ctx ends. Mapping and window are released on
// every return path. A close request or ctx cancel returns nil.
func (app *App) Run(ctx context.Context) error {
	if app.OpenWindow == nil {
		return errors.New("no window backend configured")
	}

	ch, err := channel.Open(app.Config.File)
	if err != nil {
		app.Store.SetError(err)
		app.Logger.Errorf("app", "open channel: %v", err)
		return err
	}
	defer func() {
		if cerr := ch.Close(); cerr != nil {
			app.Logger.Errorf("channel", "close: %v", cerr)
		}
	}()
	app.Store.SetChannel(state.ChannelInfo{Path: ch.Path(), Dimension: ch.Dimension()})
	app.Logger.Infof("channel", "mapped %s, dimension=%d, flag=%s", ch.Path(), ch.Dimension(), ch.State())

	side := layout.InitialSide(ch.Dimension(), app.Config.MinSize)
	app.Store.SetSide(side)

	hud, err := render.NewHUD(app.Config.HUD, app.Logger)
	if err != nil {
		return err
	}
	composer, err := render.NewComposer(app.Config.Filter, hud)
	if err != nil {
		return err
	}

	win, err := app.OpenWindow(ctx, side)
	if err != nil {
		app.Store.SetError(err)
		app.Logger.Errorf("app", "open window: %v", err)
		return fmt.Errorf("open window: %w", err)
	}
	defer func() {
		if cerr := win.Close(); cerr != nil {
			app.Logger.Errorf("app", "close window: %v", cerr)
		}
	}()

	loop := render.NewLoop(ch, win, composer, app.Store, side)
	loop.Interval = app.Config.Interval
	loop.Logger = app.Logger

	app.Store.SetPhase(state.WAITING)
	err = loop.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		app.Store.SetPhase(state.CLOSED)
		return nil
	case errors.Is(err, render.ErrPresentation):
		// Window went away under us; treat it as a shutdown request.
		app.Store.SetPhase(state.CLOSED)
		app.Logger.Infof("app", "presentation failed, shutting down: %v", err)
		return nil
	default:
		app.Store.SetError(err)
		return err
	}
}
