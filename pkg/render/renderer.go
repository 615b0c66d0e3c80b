// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// NullRenderer is an entity.Renderer that only logs what it is asked to
// draw, at debug level. Headless runs use it.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {}

// DrawNet implements entity.Renderer.
func (d *NullRenderer) DrawNet(net *entity.Net) {}

// DrawPlayer implements entity.Renderer.
func (d *NullRenderer) DrawPlayer(player *entity.Player) {
	ctx := context.Background()
	if player == nil {
		d.logger.Debug(ctx, "DrawPlayer called with nil player")
		return
	}
	pos := player.GetPosition()
	d.logger.Debug(ctx, "DrawPlayer called",
		"player_id", uint64(player.ID),
		"player_name", player.Name,
		"x", pos.X,
		"y", pos.Y,
		"charge", player.Charge.Value,
	)
}

// DrawBall implements entity.Renderer.
func (d *NullRenderer) DrawBall(ball *entity.Ball) {
	ctx := context.Background()
	if ball == nil {
		d.logger.Debug(ctx, "DrawBall called with nil ball")
		return
	}
	pos := ball.GetPosition()
	d.logger.Debug(ctx, "DrawBall called", "x", pos.X, "y", pos.Y)
}

// DrawAimLine implements entity.Renderer.
func (d *NullRenderer) DrawAimLine(id entity.ID, line control.AimLine, color entity.Color) {}

// DrawDebugLine implements entity.Renderer.
func (d *NullRenderer) DrawDebugLine(from, to physics.Vector2D) {}

// DebugText implements entity.Renderer.
func (d *NullRenderer) DebugText(key, value string) {
	d.logger.Debug(context.Background(), "debug text", "key", key, "value", value)
}

// OnScore implements entity.ScoreDisplay.
func (d *NullRenderer) OnScore(playerID entity.ID, total int) {
	d.logger.Info(context.Background(), "score", "player_id", uint64(playerID), "total", total)
}
