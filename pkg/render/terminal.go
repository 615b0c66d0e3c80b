package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// hudRows is the number of terminal rows above the arena.
const hudRows = 1

// viewport maps world coordinates to terminal cells.
type viewport struct {
	world  physics.Rect
	width  int
	height int
	sx, sy float64
}

func newViewport(world physics.Rect, width, height int) viewport {
	v := viewport{world: world, width: width, height: height}
	if world.Width > 0 && world.Height > 0 {
		v.sx = float64(width) / world.Width
		v.sy = float64(height-hudRows) / world.Height
	}
	return v
}

func (v viewport) toCell(p physics.Vector2D) (int, int) {
	x := int(math.Floor((p.X - v.world.Left()) * v.sx))
	y := hudRows + int(math.Floor((p.Y-v.world.Top())*v.sy))
	return x, y
}

func (v viewport) toWorld(x, y int) physics.Vector2D {
	if v.sx == 0 || v.sy == 0 {
		return v.world.Center
	}
	return physics.Vector2D{
		X: v.world.Left() + (float64(x)+0.5)/v.sx,
		Y: v.world.Top() + (float64(y-hudRows)+0.5)/v.sy,
	}
}

func (v viewport) inArena(x, y int) bool {
	return x >= 0 && x < v.width && y >= hudRows && y < v.height
}

// TerminalRenderer draws a match on a tcell screen. It implements
// entity.Renderer, entity.ScoreDisplay and the AI debug overlay.
type TerminalRenderer struct {
	screen tcell.Screen
	world  physics.Rect
	view   viewport

	names  map[entity.ID]string
	order  []entity.ID
	scores map[entity.ID]int
	debug  map[string]string
}

// NewTerminalRenderer creates a renderer for an arena of the given size.
// The screen must already be initialized.
func NewTerminalRenderer(screen tcell.Screen, world physics.Rect) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		world:  world,
		names:  make(map[entity.ID]string),
		scores: make(map[entity.ID]int),
		debug:  make(map[string]string),
	}
}

// Clear implements entity.Renderer. The arena is rescaled to the current
// terminal size.
func (r *TerminalRenderer) Clear() {
	w, h := r.screen.Size()
	r.view = newViewport(r.world, w, h)
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.drawHUD()
	r.drawDebug()
	r.screen.Show()
}

// DrawNet implements entity.Renderer
func (r *TerminalRenderer) DrawNet(net *entity.Net) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x0, y0 := r.view.toCell(physics.Vector2D{X: net.Rect.Left(), Y: net.Rect.Top()})
	x1, y1 := r.view.toCell(physics.Vector2D{X: net.Rect.Right(), Y: net.Rect.Bottom()})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, '┃', style)
		}
	}
}

// DrawPlayer implements entity.Renderer
func (r *TerminalRenderer) DrawPlayer(p *entity.Player) {
	if _, ok := r.names[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.names[p.ID] = p.Name
	r.fillCircle(p.GetPosition(), p.Radius, '█', styleFor(p.Color))
}

// DrawBall implements entity.Renderer
func (r *TerminalRenderer) DrawBall(b *entity.Ball) {
	r.fillCircle(b.GetPosition(), b.Radius, '●', tcell.StyleDefault.Foreground(tcell.ColorYellow))
}

// DrawAimLine implements entity.Renderer
func (r *TerminalRenderer) DrawAimLine(id entity.ID, line control.AimLine, color entity.Color) {
	r.line(line.From, line.To, '•', styleFor(color))
}

// DrawDebugLine implements entity.Renderer
func (r *TerminalRenderer) DrawDebugLine(from, to physics.Vector2D) {
	r.line(from, to, '·', tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// DebugText implements entity.Renderer
func (r *TerminalRenderer) DebugText(key, value string) {
	r.debug[key] = value
}

// OnScore implements entity.ScoreDisplay
func (r *TerminalRenderer) OnScore(playerID entity.ID, total int) {
	r.scores[playerID] = total
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if r.view.inArena(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) fillCircle(center physics.Vector2D, radius float64, ch rune, style tcell.Style) {
	x0, y0 := r.view.toCell(physics.Vector2D{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := r.view.toCell(physics.Vector2D{X: center.X + radius, Y: center.Y + radius})
	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.view.toWorld(x, y).Distance(center) <= radius {
				r.set(x, y, ch, style)
				drawn = true
			}
		}
	}
	// Small bodies on a coarse terminal still get one cell.
	if !drawn {
		x, y := r.view.toCell(center)
		r.set(x, y, ch, style)
	}
}

func (r *TerminalRenderer) line(from, to physics.Vector2D, ch rune, style tcell.Style) {
	x0, y0 := r.view.toCell(from)
	x1, y1 := r.view.toCell(to)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		r.set(x0, y0, ch, style)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		r.set(x, y, ch, style)
	}
}

func (r *TerminalRenderer) drawHUD() {
	parts := make([]string, 0, len(r.order))
	for _, id := range r.order {
		parts = append(parts, fmt.Sprintf("%s %d", r.names[id], r.scores[id]))
	}
	r.text(0, 0, strings.Join(parts, "  :  "), tcell.StyleDefault.Bold(true))
}

func (r *TerminalRenderer) drawDebug() {
	if len(r.debug) == 0 {
		return
	}
	keys := make([]string, 0, len(r.debug))
	for k := range r.debug {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+r.debug[k])
	}
	line := strings.Join(parts, " ")
	r.text(r.view.width-len(line), 0, line, tcell.StyleDefault.Dim(true))
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= 0 && x < r.view.width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func styleFor(c entity.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
