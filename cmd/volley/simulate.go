// cmd/volley/simulate.go
package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-volley/pkg/engine"
	"github.com/opd-ai/go-volley/pkg/health"
	"github.com/opd-ai/go-volley/pkg/render"
)

// simulateReport is what simulate prints.
type simulateReport struct {
	Ticks   uint64              `json:"ticks"`
	Score   engine.Score        `json:"score"`
	Health  health.HealthStatus `json:"health"`
	MatchID string              `json:"matchId"`
}

func newSimulateCommand(a *app) *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play AI against AI headless and report the score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks <= 0 {
				return fmt.Errorf("--ticks must be positive, got %d", ticks)
			}
			cfg := *a.config
			cfg.Player1.AIControlled = true
			cfg.Player2.AIControlled = true

			sim, err := engine.NewSimulation(engine.Setup{
				Config:   &cfg,
				Renderer: render.NewNullRenderer(a.logger),
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sim.Match.Start()
			runErr := sim.Loop.RunTicks(ctx, ticks)
			report := simulateReport{
				Ticks:   sim.Match.Tick(),
				Score:   sim.Match.Score(),
				Health:  sim.Health().CheckHealth(ctx),
				MatchID: sim.Match.ID,
			}
			sim.Match.Stop()
			if runErr != nil {
				return runErr
			}

			out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 3600, "number of ticks to simulate")
	return cmd
}
