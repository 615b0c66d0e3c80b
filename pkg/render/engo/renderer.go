// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// Aim and debug lines are drawn as thin rotated rectangles.
const (
	aimLineWidth   = 4
	debugLineWidth = 1
)

type spriteKind int

const (
	kindNet spriteKind = iota
	kindPlayer
	kindBall
	kindAimLine
	kindDebugLine
)

type spriteKey struct {
	kind spriteKind
	id   entity.ID
}

// sprite is one renderable ECS entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer implements entity.Renderer using the Engo game engine.
// Sprites persist across frames; anything not drawn during a frame is
// hidden at Present.
type EngoRenderer struct {
	world  *ecs.World
	render *common.RenderSystem

	sprites map[spriteKey]*sprite
	hud     *HUD
}

// NewEngoRenderer creates a renderer. It draws nothing until Attach is
// called from the scene setup.
func NewEngoRenderer() *EngoRenderer {
	return &EngoRenderer{
		sprites: make(map[spriteKey]*sprite),
		hud:     NewHUD(),
	}
}

// HUD returns the heads-up display of the renderer.
func (r *EngoRenderer) HUD() *HUD {
	return r.hud
}

// Attach adds the renderer's entities to world. world must contain a
// common.RenderSystem.
func (r *EngoRenderer) Attach(world *ecs.World) {
	r.world = world
	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.render = rs
		}
	}
	if r.render == nil {
		return
	}
	for _, s := range r.sprites {
		r.render.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	r.hud.attach(r.render)
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	for _, s := range r.sprites {
		s.Hidden = !s.seen
	}
	r.hud.refresh()
}

// DrawNet implements entity.Renderer
func (r *EngoRenderer) DrawNet(net *entity.Net) {
	s := r.sprite(spriteKey{kindNet, net.ID}, common.Rectangle{}, 1)
	s.Color = color.RGBA{220, 220, 220, 255}
	s.Position = engo.Point{X: float32(net.Rect.Left()), Y: float32(net.Rect.Top())}
	s.Width = float32(net.Rect.Width)
	s.Height = float32(net.Rect.Height)
}

// DrawPlayer implements entity.Renderer
func (r *EngoRenderer) DrawPlayer(p *entity.Player) {
	r.hud.player(p.ID, p.Name)
	s := r.sprite(spriteKey{kindPlayer, p.ID}, common.Circle{}, 2)
	s.Color = p.Color.RGBA()
	placeCircle(s, p.GetPosition(), p.Radius)
}

// DrawBall implements entity.Renderer
func (r *EngoRenderer) DrawBall(b *entity.Ball) {
	s := r.sprite(spriteKey{kindBall, b.ID}, common.Circle{}, 3)
	s.Color = color.RGBA{255, 230, 60, 255}
	placeCircle(s, b.GetPosition(), b.Radius)
}

// DrawAimLine implements entity.Renderer
func (r *EngoRenderer) DrawAimLine(id entity.ID, line control.AimLine, c entity.Color) {
	s := r.sprite(spriteKey{kindAimLine, id}, common.Rectangle{}, 4)
	s.Color = c.RGBA()
	placeLine(s, line.From, line.To, aimLineWidth)
}

// DrawDebugLine implements entity.Renderer
func (r *EngoRenderer) DrawDebugLine(from, to physics.Vector2D) {
	s := r.sprite(spriteKey{kind: kindDebugLine}, common.Rectangle{}, 5)
	s.Color = color.RGBA{128, 128, 128, 200}
	placeLine(s, from, to, debugLineWidth)
}

// DebugText implements entity.Renderer
func (r *EngoRenderer) DebugText(key, value string) {
	r.hud.debug(key, value)
}

// OnScore implements entity.ScoreDisplay
func (r *EngoRenderer) OnScore(playerID entity.ID, total int) {
	r.hud.OnScore(playerID, total)
}

func (r *EngoRenderer) sprite(key spriteKey, drawable common.Drawable, z float32) *sprite {
	s, ok := r.sprites[key]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.Drawable = drawable
		s.SetZIndex(z)
		r.sprites[key] = s
		if r.render != nil {
			r.render.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		}
	}
	s.seen = true
	return s
}

func placeCircle(s *sprite, center physics.Vector2D, radius float64) {
	s.Position = engo.Point{X: float32(center.X - radius), Y: float32(center.Y - radius)}
	s.Width = float32(2 * radius)
	s.Height = float32(2 * radius)
}

func placeLine(s *sprite, from, to physics.Vector2D, width float32) {
	d := to.Sub(from)
	s.Position = engo.Point{X: float32(from.X), Y: float32(from.Y)}
	s.Width = float32(d.Length())
	s.Height = width
	s.Rotation = float32(d.Angle() * 180 / math.Pi)
}
