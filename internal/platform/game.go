// Package platform runs the engine inside an ebiten window: it owns the
// frame loop, the screen and the input devices.
package platform

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/se2de/engine/internal/core/system"
	"github.com/se2de/engine/internal/engine"
)

// ErrInterrupted is returned by Run when its context is cancelled.
var ErrInterrupted = errors.New("interrupted")

// Options configure the window and frame rate.
type Options struct {
	Title      string
	Width      int
	Height     int
	FrameRate  int
	FlushColor color.RGBA
}

// Game implements ebiten.Game. Every tick it clears the screen to the flush
// color and runs the frame pipeline with a fixed delta time of one frame.
type Game struct {
	ctx     context.Context
	rt      *engine.Runtime
	runner  *system.Runner
	backend *Backend
	opts    Options
	log     *zap.Logger
}

func NewGame(rt *engine.Runtime, runner *system.Runner, backend *Backend, opts Options, log *zap.Logger) *Game {
	return &Game{rt: rt, runner: runner, backend: backend, opts: opts, log: log}
}

// Run opens the window and blocks until the runtime stops, a frame fails or
// ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.ctx = ctx
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetTPS(g.opts.FrameRate)
	ebiten.SetWindowClosingHandled(true)

	g.log.Info("frame loop started", zap.Int("tps", g.opts.FrameRate))
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ErrInterrupted
	}
	if !g.rt.Running() {
		return ebiten.Termination
	}

	g.backend.Screen().Fill(g.opts.FlushColor)
	dt := time.Second / time.Duration(ebiten.TPS())
	if err := g.runner.Tick(dt); err != nil {
		return err
	}
	if !g.rt.Running() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.backend.screen.img, nil)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}
