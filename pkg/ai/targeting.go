// Package ai drives a player without a device: it predicts where to hit the
// ball, servos the aim towards it, walks into position and decides when to
// release a charged shot.
package ai

import (
	"math"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/physics"
)

const (
	// ContactRadius is how far behind the ball the AI aims, along its facing.
	ContactRadius = 75.0
	// LeadFactor scales ball velocity into the lead correction.
	LeadFactor = 0.15
	// ReleaseRange is the distance to the ball under which a full charge is
	// released. The comparison is strict.
	ReleaseRange = 250.0
	// DeadZone is the lateral distance to the desired spot within which the
	// AI does not correct its position.
	DeadZone = 15.0
	// TurnMultiplier makes the AI turn faster than a human.
	TurnMultiplier = 3.0
	// RestSpeed is the ball speed under which a ball on the net top counts
	// as lying there.
	RestSpeed = 10.0
	// NetTopEpsilon is how far the ball's lowest point may be from the net
	// top for the ball to count as lying on it.
	NetTopEpsilon = 2.0
)

// Side is the half of the court a player defends.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Facing returns +1 for the left side (facing right, towards the net) and
// -1 for the right side.
func (s Side) Facing() float64 {
	if s == SideRight {
		return -1
	}
	return 1
}

// Owns reports whether x lies strictly inside this side's half of a court
// centered on centerX.
func (s Side) Owns(x, centerX float64) bool {
	if s == SideRight {
		return x > centerX
	}
	return x < centerX
}

// Reaches reports whether x is on this side or within reach of the center
// line. Only positioning uses it; a zero reach adds nothing to Owns.
func (s Side) Reaches(x, centerX, reach float64) bool {
	if s.Owns(x, centerX) {
		return true
	}
	return reach > 0 && math.Abs(x-centerX) <= reach
}

// LeadOffset returns the x correction from the ball to the point the AI aims
// at. The contact part puts the aim point behind the ball; the lead part
// grows with ball speed and distance so the shot meets the ball where it
// will be. A non-positive chargeMax disables the lead.
func LeadOffset(ballVX, distance, chargeMax, facing float64) float64 {
	contact := -facing * ContactRadius
	if chargeMax <= 0 {
		return contact
	}
	return contact + ballVX*LeadFactor*(distance/(chargeMax*3))
}

// TargetAngle is the direction from self to the predicted contact point.
func TargetAngle(self, ball physics.Vector2D, predictedX float64) float64 {
	return math.Atan2(ball.Y-self.Y, predictedX-self.X)
}

// AngleOffset returns the signed turn from current to target, in (-π, π].
func AngleOffset(target, current float64) float64 {
	return physics.NormalizeAngle(target - current)
}

// Servo turns towards a positive or negative offset. A zero offset does not turn.
func Servo(offset float64) (turnLeft, turnRight bool) {
	switch {
	case offset > 0:
		return false, true
	case offset < 0:
		return true, false
	}
	return false, false
}

// DesiredX is where the AI wants to stand: under the ball while the ball is
// within reach, otherwise at its ready point.
func DesiredX(ballX, readyX float64, inReach bool) float64 {
	if inReach {
		return ballX
	}
	return readyX
}

// PositionMove walks towards desiredX when outside the dead zone. Airborne
// the AI does not steer.
func PositionMove(selfX, desiredX float64, grounded bool) control.Movement {
	diff := desiredX - selfX
	if math.Abs(diff) <= DeadZone {
		return control.MoveNone
	}
	if !grounded {
		return control.MoveNone
	}
	if diff < 0 {
		return control.MoveLeft
	}
	return control.MoveRight
}

// ShouldRelease reports whether a charge is released this tick. All four
// conditions must hold.
func ShouldRelease(onOwnSide bool, value, chargeMax, distance float64, grounded bool) bool {
	return onOwnSide && value == chargeMax && distance < ReleaseRange && grounded
}

// Plan is everything the AI derives from one frame.
type Plan struct {
	Distance    float64
	OnOwnSide   bool
	InReach     bool
	Lead        float64
	PredictedX  float64
	TargetAngle float64
	Offset      float64
	DesiredX    float64
}

// MakePlan computes the plan for an AI configured by cfg.
func MakePlan(frame control.Frame, cfg Config) Plan {
	self := frame.Self.Position
	ball := frame.Ball.Position

	var p Plan
	p.Distance = self.Distance(ball)
	p.OnOwnSide = cfg.Side.Owns(ball.X, cfg.CenterX)
	p.InReach = cfg.Side.Reaches(ball.X, cfg.CenterX, cfg.NetReach)
	p.Lead = LeadOffset(frame.Ball.Velocity.X, p.Distance, cfg.ChargeMax, cfg.Side.Facing())
	p.PredictedX = ball.X + p.Lead
	p.TargetAngle = TargetAngle(self, ball, p.PredictedX)
	p.Offset = AngleOffset(p.TargetAngle, frame.Charge.Angle)
	p.DesiredX = DesiredX(ball.X, cfg.ReadyX, p.InReach)
	return p
}

// ShouldClearNet reports whether a full charge is released at a ball lying
// on the net top. The ball must be within reach but on neither side, and the
// AI must stand next to it.
func ShouldClearNet(frame control.Frame, plan Plan, cfg Config) bool {
	if !cfg.ClearsNet || cfg.NetTop <= 0 || cfg.ChargeMax <= 0 {
		return false
	}
	if plan.OnOwnSide || !plan.InReach || !frame.Grounded {
		return false
	}
	ball := frame.Ball
	return frame.Charge.Value == cfg.ChargeMax &&
		math.Abs(ball.Bottom-cfg.NetTop) <= NetTopEpsilon &&
		ball.Velocity.Length() < RestSpeed &&
		math.Abs(frame.Self.Position.X-ball.Position.X) <= cfg.NetReach+DeadZone
}
