// cmd/volley/play.go
package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-volley/pkg/engine"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/render"
	engorender "github.com/opd-ai/go-volley/pkg/render/engo"
)

// defaultTerminalLog is where terminal play logs when no log file is set,
// since stdout is the game screen.
const defaultTerminalLog = "volley.log"

func newPlayCommand(a *app) *cobra.Command {
	var renderer string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match in a window or in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch renderer {
			case "engo":
				return a.playEngo()
			case "terminal":
				return a.playTerminal(cmd.Context())
			default:
				return fmt.Errorf("unknown renderer %q (want engo or terminal)", renderer)
			}
		},
	}
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "engo", "renderer: engo or terminal")
	return cmd
}

func (a *app) playEngo() error {
	device := input.NewStateDevice()
	r := engorender.NewEngoRenderer()

	sim, err := engine.NewSimulation(engine.Setup{
		Config:        a.config,
		Device:        device,
		Renderer:      r,
		Debug:         r,
		ScoreDisplays: []entity.ScoreDisplay{r},
		BeforeTick:    device.Latch,
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}

	scene := engorender.NewGameScene(sim, r, device, a.config.Keys(), a.logger)
	engorender.Run(scene, "Volley")
	return nil
}

func (a *app) playTerminal(ctx context.Context) error {
	logger := a.logger
	if a.config.Logging.File == "" {
		opts := a.config.LoggerOptions()
		opts.File = defaultTerminalLog
		logger = logging.New(opts)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.EnableMouse()
	var fini sync.Once
	closeScreen := func() { fini.Do(screen.Fini) }
	defer closeScreen()

	arena := a.config.Arena()
	device := input.NewStateDevice()
	r := render.NewTerminalRenderer(screen, arena)
	in := render.NewTerminalInput(screen, device, arena)

	sim, err := engine.NewSimulation(engine.Setup{
		Config:        a.config,
		Device:        device,
		Renderer:      r,
		Debug:         r,
		ScoreDisplays: []entity.ScoreDisplay{r},
		BeforeTick: func() {
			in.Expire()
			device.Latch()
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sim.Run(gctx)
	})
	g.Go(func() error {
		return in.Run(gctx)
	})
	g.Go(func() error {
		// PollEvent only returns once the screen is finalized.
		<-gctx.Done()
		closeScreen()
		return nil
	})

	err = g.Wait()
	if errors.Is(err, render.ErrQuit) {
		err = nil
	}
	score := sim.Match.Score()
	logger.Info(sim.Match.Context(), "match over", "p1", score.P1, "p2", score.P2)
	return err
}
