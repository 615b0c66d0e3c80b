package entity

import (
	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Player is a controllable paddle character.
type Player struct {
	BaseEntity
	Name         string
	AIControlled bool

	Charge   control.ChargeState
	Settings control.Settings
	Source   control.InputSource

	// Serve is where the player is put back after every point.
	Serve     physics.Vector2D
	Color     Color
	LineColor Color
	// Line is the aim line as of the last tick.
	Line control.AimLine
}

// NewPlayer creates a player bound to body.
func NewPlayer(id ID, name string, body physics.Body, settings control.Settings, source control.InputSource, serve physics.Vector2D) *Player {
	p := &Player{
		BaseEntity: BaseEntity{ID: id, Body: body, Radius: settings.BodyRadius},
		Name:       name,
		Settings:   settings,
		Source:     source,
		Serve:      serve,
	}
	p.refreshLine()
	return p
}

// Render implements Entity.
func (p *Player) Render(r Renderer) {
	r.DrawPlayer(p)
	r.DrawAimLine(p.ID, p.Line, p.LineColor)
}

// ResetToServe puts the player back on its serve spot at rest and drops any
// charge in progress. The aim angle is kept.
func (p *Player) ResetToServe() error {
	p.Charge.Reset()
	if err := p.place(p.Serve, physics.Vector2D{}); err != nil {
		return err
	}
	p.refreshLine()
	return nil
}

func (p *Player) refreshLine() {
	p.Line = control.AimLineFor(p.GetPosition(), p.Charge.Angle, p.Charge.Value, p.Radius)
}
