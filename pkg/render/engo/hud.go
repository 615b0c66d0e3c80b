// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-volley/pkg/entity"
)

// FontURL is the name the embedded HUD font is registered under.
const FontURL = "goregular.ttf"

// HUD shows the score line and the AI debug values.
type HUD struct {
	mu     sync.Mutex
	names  map[entity.ID]string
	order  []entity.ID
	scores map[entity.ID]int
	values map[string]string

	font   *common.Font
	scoreS *sprite
	debugS *sprite
}

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	return &HUD{
		names:  make(map[entity.ID]string),
		scores: make(map[entity.ID]int),
		values: make(map[string]string),
	}
}

// LoadFont registers the embedded Go font with engo and prepares the HUD
// font. Call it from the scene's Preload.
func (h *HUD) LoadFont() error {
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("loading hud font: %w", err)
	}
	fnt := &common.Font{
		URL:  FontURL,
		FG:   color.White,
		Size: 24,
	}
	if err := fnt.CreatePreloaded(); err != nil {
		return fmt.Errorf("creating hud font: %w", err)
	}
	h.font = fnt
	return nil
}

// OnScore implements entity.ScoreDisplay.
func (h *HUD) OnScore(playerID entity.ID, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scores[playerID] = total
}

func (h *HUD) player(id entity.ID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.names[id]; !ok {
		h.order = append(h.order, id)
	}
	h.names[id] = name
}

func (h *HUD) debug(key, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values[key] = value
}

// ScoreLine returns the score text, players in the order first drawn.
func (h *HUD) ScoreLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	parts := make([]string, 0, len(h.order))
	for _, id := range h.order {
		parts = append(parts, fmt.Sprintf("%s %d", h.names[id], h.scores[id]))
	}
	return strings.Join(parts, "  :  ")
}

// DebugLine returns the debug values sorted by key.
func (h *HUD) DebugLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+h.values[k])
	}
	return strings.Join(parts, "  ")
}

func (h *HUD) attach(rs *common.RenderSystem) {
	if h.font == nil {
		return
	}
	h.scoreS = newTextSprite(h.font, 10, 10)
	h.debugS = newTextSprite(h.font, 10, 40)
	rs.Add(&h.scoreS.BasicEntity, &h.scoreS.RenderComponent, &h.scoreS.SpaceComponent)
	rs.Add(&h.debugS.BasicEntity, &h.debugS.RenderComponent, &h.debugS.SpaceComponent)
}

func (h *HUD) refresh() {
	if h.scoreS == nil {
		return
	}
	h.scoreS.Drawable = common.Text{Font: h.font, Text: h.ScoreLine()}
	if debug := h.DebugLine(); debug != "" {
		h.debugS.Drawable = common.Text{Font: h.font, Text: debug}
		h.debugS.Hidden = false
	} else {
		h.debugS.Hidden = true
	}
}

func newTextSprite(fnt *common.Font, x, y float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = common.Text{Font: fnt, Text: " "}
	s.Position = engo.Point{X: x, Y: y}
	s.SetZIndex(10)
	s.SetShader(common.HUDShader)
	return s
}
