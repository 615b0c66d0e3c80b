package entity

import (
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Net is the static wall dividing the court.
type Net struct {
	ID   ID
	Rect physics.Rect
}

// GetID implements Entity.
func (n *Net) GetID() ID { return n.ID }

// GetPosition implements Entity.
func (n *Net) GetPosition() physics.Vector2D { return n.Rect.Center }

// Render implements Entity.
func (n *Net) Render(r Renderer) {
	r.DrawNet(n)
}
