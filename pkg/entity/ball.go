package entity

import (
	"github.com/opd-ai/go-volley/pkg/physics"
)

// BallMaterial holds the physical properties shared by the ball and the
// players' bodies.
type BallMaterial struct {
	Mass                   float64
	BouncinessWithWorld    float64
	BouncinessBetweenBalls float64
}

// Ball is the single ball in play.
type Ball struct {
	BaseEntity
	Material BallMaterial
}

// NewBall creates a ball bound to body.
func NewBall(id ID, body physics.Body, radius float64, material BallMaterial) *Ball {
	return &Ball{
		BaseEntity: BaseEntity{ID: id, Body: body, Radius: radius},
		Material:   material,
	}
}

// Render implements Entity.
func (b *Ball) Render(r Renderer) {
	r.DrawBall(b)
}

// Landed reports whether the ball's lowest point is past the landing line
// epsilon above the floor. The comparison is strict.
func (b *Ball) Landed(worldHeight, epsilon float64) bool {
	if b.Body == nil {
		return false
	}
	return b.Body.Bounds().Bottom > worldHeight-epsilon
}

// ResetTo puts the ball at pos with velocity vel and no spin.
func (b *Ball) ResetTo(pos, vel physics.Vector2D) error {
	return b.place(pos, vel)
}
