package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// DebugSink receives the AI debug overlay.
type DebugSink interface {
	DebugText(key, value string)
	DrawDebugLine(from, to physics.Vector2D)
}

// Config configures an Input.
type Config struct {
	Side Side
	// ReadyX is where the AI waits while the ball is on the other side.
	ReadyX  float64
	CenterX float64
	// ChargeMax must match the player's control settings. A non-positive
	// value makes the AI never charge.
	ChargeMax float64

	// NetReach widens positioning around CenterX so a ball lying on the net
	// top still draws the AI in. ShouldRelease never sees it.
	NetReach float64
	// NetTop is the y of the top of the net. Zero disables net clearing.
	NetTop float64
	// ClearsNet makes this AI launch at a ball lying on the net top. Give it
	// to one AI only, or two mirrored AIs knock the ball straight up.
	ClearsNet bool
}

// Input is the AI variant of control.InputSource.
type Input struct {
	cfg Config

	debug   DebugSink
	logger  *logging.Logger
	limiter *rate.Limiter
}

// Option configures an Input.
type Option func(*Input)

// WithDebug enables the debug overlay.
func WithDebug(sink DebugSink) Option {
	return func(in *Input) { in.debug = sink }
}

// WithLogger sets the logger plans are traced to at debug level. Traces are
// limited to a few per second.
func WithLogger(l *logging.Logger) Option {
	return func(in *Input) { in.logger = l }
}

// NewInput creates an AI input source.
func NewInput(cfg Config, opts ...Option) *Input {
	in := &Input{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		in.logger = logging.Discard()
	}
	return in
}

// Config returns the configuration the input was created with.
func (in *Input) Config() Config {
	return in.cfg
}

// Next implements control.InputSource.
func (in *Input) Next(frame control.Frame) (control.ControlSignal, error) {
	plan := MakePlan(frame, in.cfg)

	sig := control.ControlSignal{TurnMultiplier: TurnMultiplier}
	sig.TurnLeft, sig.TurnRight = Servo(plan.Offset)
	sig.Move = PositionMove(frame.Self.Position.X, plan.DesiredX, frame.Grounded)

	if in.cfg.ChargeMax > 0 {
		sig.ChargeHeld = frame.Grounded
		sig.ChargeReleased = ShouldRelease(plan.OnOwnSide, frame.Charge.Value, in.cfg.ChargeMax, plan.Distance, frame.Grounded)
		if !sig.ChargeReleased && ShouldClearNet(frame, plan, in.cfg) {
			aim := physics.Vector2D{X: plan.PredictedX, Y: frame.Ball.Position.Y}
			sig.AimOverride = &aim
			sig.ChargeReleased = true
			sig.Move = control.MoveNone
		}
	}

	in.trace(frame, plan, sig)
	return sig, nil
}

func (in *Input) trace(frame control.Frame, plan Plan, sig control.ControlSignal) {
	if in.debug != nil {
		in.debug.DebugText("distance", fmt.Sprintf("%.1f", plan.Distance))
		in.debug.DebugText("ball_vx", fmt.Sprintf("%.1f", frame.Ball.Velocity.X))
		target := physics.Vector2D{X: plan.PredictedX, Y: frame.Ball.Position.Y}
		in.debug.DrawDebugLine(frame.Self.Position, target)
	}

	if in.limiter.Allow() {
		in.logger.Debug(context.Background(), "ai plan",
			"side", in.cfg.Side.String(),
			"tick", frame.Tick,
			"distance", plan.Distance,
			"lead", plan.Lead,
			"offset", plan.Offset,
			"own_side", plan.OnOwnSide,
			"in_reach", plan.InReach,
			"move", sig.Move.String(),
			"release", sig.ChargeReleased,
		)
	}
}
