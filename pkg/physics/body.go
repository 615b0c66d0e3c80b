package physics

import "errors"

// ErrNoBody is returned when an operation needs a physics body and none is bound.
var ErrNoBody = errors.New("no physics body bound")

// Bounds is the vertical extent of a body's collision shape.
type Bounds struct {
	Top    float64
	Bottom float64
}

// Body is the view the game core has of a rigid body owned by the physics
// world. Reads taken at the start of a tick are a consistent snapshot: the
// world only integrates between ticks.
type Body interface {
	Position() Vector2D
	Velocity() Vector2D
	SetVelocity(v Vector2D)
	SetPosition(p Vector2D)
	// ResetRotation zeroes the angle and the angular velocity.
	ResetRotation()
	Bounds() Bounds
}

// IsGrounded reports whether the body's lowest point is within epsilon of
// the floor of a world of the given height.
func IsGrounded(b Body, worldHeight, epsilon float64) bool {
	return b.Bounds().Bottom >= worldHeight-epsilon
}

// Snapshot is a copy of a body's state at one instant.
type Snapshot struct {
	Position Vector2D
	Velocity Vector2D
	Bottom   float64
}

// Capture copies the current state of b.
func Capture(b Body) Snapshot {
	return Snapshot{
		Position: b.Position(),
		Velocity: b.Velocity(),
		Bottom:   b.Bounds().Bottom,
	}
}

// StaticBody is an in-memory Body with no simulation behind it. Headless
// tools and tests use it where a full world is unnecessary.
type StaticBody struct {
	Pos      Vector2D
	Vel      Vector2D
	Radius   float64
	Rotation float64
}

// Position implements Body.
func (b *StaticBody) Position() Vector2D { return b.Pos }

// Velocity implements Body.
func (b *StaticBody) Velocity() Vector2D { return b.Vel }

// SetVelocity implements Body.
func (b *StaticBody) SetVelocity(v Vector2D) { b.Vel = v }

// SetPosition implements Body.
func (b *StaticBody) SetPosition(p Vector2D) { b.Pos = p }

// ResetRotation implements Body.
func (b *StaticBody) ResetRotation() { b.Rotation = 0 }

// Bounds implements Body.
func (b *StaticBody) Bounds() Bounds {
	return Bounds{Top: b.Pos.Y - b.Radius, Bottom: b.Pos.Y + b.Radius}
}
