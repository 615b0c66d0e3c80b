// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-volley/pkg/ai"
	"github.com/opd-ai/go-volley/pkg/config"
	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/health"
	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Entity IDs of a match.
const (
	Player1ID entity.ID = iota + 1
	Player2ID
	BallID
	NetID
)

// Setup is what a front-end hands to NewSimulation.
type Setup struct {
	Config *config.GameConfig
	// Device drives human players. It may be nil when both players are AI.
	Device input.Device
	// Renderer defaults to a renderer that draws nothing.
	Renderer entity.Renderer
	// Debug receives the AI overlay when the config enables it.
	Debug         ai.DebugSink
	ScoreDisplays []entity.ScoreDisplay
	// BeforeTick runs before every tick, e.g. to latch Device.
	BeforeTick func()
	Logger     *logging.Logger
}

// Simulation is a fully wired match: physics world, entities, match
// controller and tick loop.
type Simulation struct {
	Config *config.GameConfig
	World  *physics.World
	Match  *Match
	Loop   *Loop

	logger *logging.Logger
}

// NewSimulation builds a simulation from configuration.
func NewSimulation(s Setup) (*Simulation, error) {
	if s.Config == nil {
		return nil, errors.New("simulation needs a config")
	}
	cfg := s.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s.Logger == nil {
		s.Logger = logging.Discard()
	}

	world, err := physics.NewWorld(cfg.WorldSettings())
	if err != nil {
		return nil, logging.WrapError(err, "creating world")
	}

	arena := cfg.Arena()
	left, right := ServePositions(arena)

	p1, err := newPlayer(s, world, Player1ID, cfg.Player1, ai.SideLeft, left, arena)
	if err != nil {
		return nil, logging.WrapError(err, "creating player %d", Player1ID)
	}
	p2, err := newPlayer(s, world, Player2ID, cfg.Player2, ai.SideRight, right, arena)
	if err != nil {
		return nil, logging.WrapError(err, "creating player %d", Player2ID)
	}

	material := cfg.BallMaterial()
	ballBody := world.AddCircle(arena.Center, cfg.Ball.Radius, material.Mass, physics.CategoryBall)
	ball := entity.NewBall(BallID, ballBody, cfg.Ball.Radius, material)

	opts := []MatchOption{WithLogger(s.Logger), WithScoreDisplays(s.ScoreDisplays...)}
	if s.Renderer != nil {
		opts = append(opts, WithRenderer(s.Renderer))
	}
	match, err := NewMatch(MatchState{
		Player1: p1,
		Player2: p2,
		Ball:    ball,
		Net:     &entity.Net{ID: NetID, Rect: world.Net()},
		World:   arena,
	}, opts...)
	if err != nil {
		return nil, logging.WrapError(err, "creating match")
	}

	loop, err := NewLoop(match, world, LoopConfig{
		TickRate:        cfg.Loop.TickRate,
		SlowMotionScale: cfg.Loop.SlowMotionScale,
		BeforeTick:      s.BeforeTick,
		Logger:          s.Logger,
	})
	if err != nil {
		return nil, logging.WrapError(err, "creating loop")
	}

	return &Simulation{
		Config: cfg,
		World:  world,
		Match:  match,
		Loop:   loop,
		logger: s.Logger,
	}, nil
}

func newPlayer(s Setup, world *physics.World, id entity.ID, pc config.PlayerConfig, side ai.Side, serve physics.Vector2D, arena physics.Rect) (*entity.Player, error) {
	cfg := s.Config
	settings := cfg.ControlSettings()

	var source control.InputSource
	if pc.AIControlled {
		opts := []ai.Option{ai.WithLogger(s.Logger.With("player", pc.Name))}
		if cfg.AI.Debug && s.Debug != nil {
			opts = append(opts, ai.WithDebug(s.Debug))
		}
		source = ai.NewInput(ai.Config{
			Side:      side,
			ReadyX:    serve.X,
			CenterX:   arena.Center.X,
			ChargeMax: settings.ChargeMax,
			NetReach:  cfg.Net.Width/2 + cfg.Ball.Radius,
			NetTop:    world.Net().Top(),
			// One AI clears a ball stuck on the net; the left one unless
			// player 1 is human.
			ClearsNet: side == ai.SideLeft || !cfg.Player1.AIControlled,
		}, opts...)
	} else {
		if s.Device == nil {
			return nil, fmt.Errorf("%s: %w", pc.Name, control.ErrNoDevice)
		}
		source = &control.HumanInput{
			Device:     s.Device,
			Bindings:   pc.Bindings(),
			PlayHeight: arena.Height,
		}
	}

	body := world.AddCircle(serve, settings.BodyRadius, cfg.Ball.Mass, physics.CategoryPlayer)
	p := entity.NewPlayer(id, pc.Name, body, settings, source, serve)
	p.AIControlled = pc.AIControlled
	p.Color, p.LineColor = pc.Colors()
	return p, nil
}

// Run plays the match in real time until ctx is done.
func (s *Simulation) Run(ctx context.Context) error {
	s.Match.Start()
	defer s.Match.Stop()
	return s.Loop.Run(ctx)
}

// RunTicks plays n ticks as fast as possible and returns the score.
func (s *Simulation) RunTicks(ctx context.Context, n int) (Score, error) {
	s.Match.Start()
	err := s.Loop.RunTicks(ctx, n)
	s.Match.Stop()
	return s.Match.Score(), err
}

// Process limits above which Health reports unhealthy.
const (
	MaxMemoryMB   = 512
	MaxGoroutines = 1000
)

// Health returns a checker for the simulation. The bodies check reads the
// world directly and must run between ticks.
func (s *Simulation) Health() *health.HealthChecker {
	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewMatchRunningCheck(s.Match.IsRunning))
	hc.AddCheck(health.NewTickProgressCheck(s.Match.Tick))
	hc.AddCheck(health.NewBodiesCheck(s.Config.Arena(), s.Config.Control.BodyRadius, s.bodyPositions))
	hc.AddCheck(health.NewMemoryHealthCheck(MaxMemoryMB, nil))
	hc.AddCheck(health.NewGoroutineCheck(MaxGoroutines, nil))
	return hc
}

func (s *Simulation) bodyPositions() []physics.Vector2D {
	bodies := s.World.Bodies()
	out := make([]physics.Vector2D, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, b.Position())
	}
	return out
}
