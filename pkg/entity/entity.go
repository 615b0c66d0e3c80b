// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-volley/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Render(r Renderer)
}

// BaseEntity contains common functionality for circular entities backed by a
// physics body.
type BaseEntity struct {
	ID     ID
	Body   physics.Body
	Radius float64
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position, or the origin when no body is bound.
func (e *BaseEntity) GetPosition() physics.Vector2D {
	if e.Body == nil {
		return physics.Vector2D{}
	}
	return e.Body.Position()
}

// Grounded reports whether the entity rests on the floor of a world of the
// given height. An entity without a body is never grounded.
func (e *BaseEntity) Grounded(worldHeight, epsilon float64) bool {
	if e.Body == nil {
		return false
	}
	return physics.IsGrounded(e.Body, worldHeight, epsilon)
}

// place moves the body to pos with velocity vel and no spin.
func (e *BaseEntity) place(pos, vel physics.Vector2D) error {
	if e.Body == nil {
		return physics.ErrNoBody
	}
	e.Body.SetPosition(pos)
	e.Body.SetVelocity(vel)
	e.Body.ResetRotation()
	return nil
}
