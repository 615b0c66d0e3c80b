package entity

import (
	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Renderer handles rendering game entities
type Renderer interface {
	Clear()
	DrawNet(net *Net)
	DrawPlayer(player *Player)
	DrawBall(ball *Ball)
	DrawAimLine(id ID, line control.AimLine, color Color)
	DrawDebugLine(from, to physics.Vector2D)
	DebugText(key, value string)
	Present()
}

// ScoreDisplay is notified whenever a player's score changes.
type ScoreDisplay interface {
	OnScore(playerID ID, total int)
}

// ScoreDisplayFunc adapts a function to ScoreDisplay.
type ScoreDisplayFunc func(playerID ID, total int)

// OnScore implements ScoreDisplay.
func (f ScoreDisplayFunc) OnScore(playerID ID, total int) {
	f(playerID, total)
}
