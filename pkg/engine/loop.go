package engine

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-volley/pkg/logging"
)

// Ticker is what the loop advances once per tick.
type Ticker interface {
	Update()
	Charging() bool
}

// Stepper integrates the physics world.
type Stepper interface {
	Step(dt float64)
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	// TickRate is the number of ticks per wall-clock second at normal speed.
	TickRate float64
	// SlowMotionScale multiplies the tick rate while any player is charging.
	// 1 disables slow motion.
	SlowMotionScale float64
	// BeforeTick runs before every tick, e.g. to latch input devices.
	BeforeTick func()
	Logger     *logging.Logger
}

// Loop drives a match and its physics world at a fixed per-tick dt. Slow
// motion stretches the wall-clock interval between ticks; dt and all
// per-tick math stay the same.
type Loop struct {
	match  Ticker
	world  Stepper
	cfg    LoopConfig
	dt     float64
	base   time.Duration
	logger *logging.Logger
}

// NewLoop creates a loop.
func NewLoop(match Ticker, world Stepper, cfg LoopConfig) (*Loop, error) {
	if match == nil || world == nil {
		return nil, errors.New("loop needs a match and a world")
	}
	if cfg.TickRate <= 0 {
		return nil, errors.New("tick rate must be positive")
	}
	if cfg.SlowMotionScale <= 0 || cfg.SlowMotionScale > 1 {
		return nil, errors.New("slow motion scale must be in (0, 1]")
	}
	l := &Loop{
		match:  match,
		world:  world,
		cfg:    cfg,
		dt:     1 / cfg.TickRate,
		base:   time.Duration(float64(time.Second) / cfg.TickRate),
		logger: cfg.Logger,
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	return l, nil
}

// DT returns the simulated seconds per tick.
func (l *Loop) DT() float64 {
	return l.dt
}

// Interval returns the wall-clock time until the next tick.
func (l *Loop) Interval() time.Duration {
	if l.match.Charging() {
		return time.Duration(float64(l.base) / l.cfg.SlowMotionScale)
	}
	return l.base
}

// Step runs one tick: the match update, then one physics step.
func (l *Loop) Step() {
	if l.cfg.BeforeTick != nil {
		l.cfg.BeforeTick()
	}
	l.match.Update()
	l.world.Step(l.dt)
}

// Run ticks in real time until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info(ctx, "loop started", "tick_rate", l.cfg.TickRate, "slow_motion", l.cfg.SlowMotionScale)

	timer := time.NewTimer(l.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info(ctx, "loop stopped")
			return nil
		case <-timer.C:
			l.Step()
			timer.Reset(l.Interval())
		}
	}
}

// RunTicks runs n ticks as fast as possible. It stops early when ctx is done.
func (l *Loop) RunTicks(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Step()
	}
	return nil
}
