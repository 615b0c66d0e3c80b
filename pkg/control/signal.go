package control

import (
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Movement is the lateral movement decision for one tick.
type Movement int

const (
	// MoveNone leaves horizontal velocity untouched.
	MoveNone Movement = iota
	MoveLeft
	MoveRight
	// MoveBrake applies ground friction when the body is grounded.
	MoveBrake
)

func (m Movement) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveBrake:
		return "brake"
	default:
		return "none"
	}
}

// ControlSignal is what an InputSource produces every tick.
type ControlSignal struct {
	TurnLeft  bool
	TurnRight bool
	// TurnMultiplier scales TurningSpeed; zero means 1.
	TurnMultiplier float64

	ChargeHeld bool
	// ChargeReleased is true only on the tick the charge input goes from
	// held to not held.
	ChargeReleased bool

	// AimOverride, when set, points the aim from the body towards it.
	AimOverride *physics.Vector2D

	Move Movement
}

// Frame is the snapshot an InputSource decides from. It is taken once at the
// start of the tick.
type Frame struct {
	Tick     uint64
	Self     physics.Snapshot
	Opponent physics.Snapshot
	Ball     physics.Snapshot
	Charge   ChargeState
	Grounded bool
}

// InputSource produces the control signal of one player.
type InputSource interface {
	Next(frame Frame) (ControlSignal, error)
}

// InputSourceFunc adapts a function to InputSource.
type InputSourceFunc func(frame Frame) (ControlSignal, error)

// Next implements InputSource.
func (f InputSourceFunc) Next(frame Frame) (ControlSignal, error) {
	return f(frame)
}
