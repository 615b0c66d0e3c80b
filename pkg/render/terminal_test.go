package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/opd-ai/go-volley/pkg/ai"
	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/physics"
)

var testArena = physics.RectFromOrigin(1600, 900)

// newScreen returns an 80x46 simulation screen: one HUD row and a 45-row
// arena, so one cell is 20 world units in each direction.
func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 46)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		out = append(out, runeAt(screen, x, y))
	}
	return string(out)
}

func TestViewport_RoundTrip(t *testing.T) {
	v := newViewport(testArena, 80, 46)

	x, y := v.toCell(physics.Vector2D{X: 810, Y: 450})
	assert.Equal(t, 40, x)
	assert.Equal(t, 23, y)

	p := v.toWorld(40, 23)
	assert.InDelta(t, 810, p.X, 1e-9)
	assert.InDelta(t, 450, p.Y, 1e-9)

	assert.False(t, v.inArena(0, 0), "HUD row is not arena")
	assert.True(t, v.inArena(0, 1))
	assert.False(t, v.inArena(80, 10))
}

func TestTerminalRenderer_ImplementsInterfaces(t *testing.T) {
	r := NewTerminalRenderer(newScreen(t), testArena)
	var _ entity.Renderer = r
	var _ entity.ScoreDisplay = r
	var _ ai.DebugSink = r
}

func TestTerminalRenderer_DrawsEntities(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen, testArena)

	player := entity.NewPlayer(1, "Lefty", &physics.StaticBody{Pos: physics.Vector2D{X: 210, Y: 810}},
		control.Settings{BodyRadius: 55}, nil, physics.Vector2D{})
	player.Color = entity.MustParseColor("#3366ff")
	ball := entity.NewBall(3, &physics.StaticBody{Pos: physics.Vector2D{X: 1010, Y: 210}}, 30, entity.BallMaterial{})
	net := &entity.Net{ID: 4, Rect: physics.Rect{Center: physics.Vector2D{X: 800, Y: 750}, Width: 20, Height: 300}}

	r.Clear()
	r.DrawNet(net)
	r.DrawPlayer(player)
	r.DrawBall(ball)
	r.Present()

	assert.Equal(t, '█', runeAt(screen, 10, 41))
	assert.Equal(t, '●', runeAt(screen, 50, 11))
	assert.Equal(t, '┃', runeAt(screen, 40, 40))
	assert.Contains(t, rowText(screen, 0), "Lefty 0")
}

func TestTerminalRenderer_AimLine(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen, testArena)

	r.Clear()
	r.DrawAimLine(1, control.AimLine{
		From: physics.Vector2D{X: 210, Y: 410},
		To:   physics.Vector2D{X: 410, Y: 410},
	}, entity.MustParseColor("#ffffff"))
	r.Present()

	for x := 10; x <= 20; x++ {
		assert.Equal(t, '•', runeAt(screen, x, 21), "cell %d", x)
	}
}

func TestTerminalRenderer_ScoreAndDebugHUD(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen, testArena)

	p1 := entity.NewPlayer(1, "A", &physics.StaticBody{}, control.Settings{}, nil, physics.Vector2D{})
	p2 := entity.NewPlayer(2, "B", &physics.StaticBody{}, control.Settings{}, nil, physics.Vector2D{})

	r.OnScore(2, 3)
	r.DebugText("distance", "12.5")
	r.Clear()
	r.DrawPlayer(p1)
	r.DrawPlayer(p2)
	r.Present()

	hud := rowText(screen, 0)
	assert.Contains(t, hud, "A 0  :  B 3")
	assert.Contains(t, hud, "distance=12.5")
}

func TestTerminalRenderer_ClipsOffscreen(t *testing.T) {
	r := NewTerminalRenderer(newScreen(t), testArena)
	r.Clear()
	assert.NotPanics(t, func() {
		r.DrawDebugLine(physics.Vector2D{X: -500, Y: -500}, physics.Vector2D{X: 5000, Y: 5000})
		r.Present()
	})
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.KeyID
		ok   bool
	}{
		{name: "letter", ev: tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), want: "A", ok: true},
		{name: "space", ev: tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), want: "Space", ok: true},
		{name: "arrow", ev: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), want: "Left", ok: true},
		{name: "unmapped", ev: tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyName(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminalInput_KeyHoldWindow(t *testing.T) {
	dev := input.NewStateDevice()
	in := NewTerminalInput(newScreen(t), dev, testArena)

	clock := time.Unix(0, 0)
	in.now = func() time.Time { return clock }

	require.NoError(t, in.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
	dev.Latch()
	assert.True(t, dev.KeyDown("W"))

	// Auto-repeat inside the window keeps the key held.
	clock = clock.Add(DefaultHoldWindow / 2)
	in.Expire()
	dev.Latch()
	assert.True(t, dev.KeyDown("W"))

	clock = clock.Add(DefaultHoldWindow)
	in.Expire()
	dev.Latch()
	assert.False(t, dev.KeyDown("W"))
	assert.True(t, dev.KeyJustUp("W"))
}

func TestTerminalInput_Mouse(t *testing.T) {
	dev := input.NewStateDevice()
	in := NewTerminalInput(newScreen(t), dev, testArena)

	require.NoError(t, in.handle(tcell.NewEventMouse(40, 23, tcell.Button1, tcell.ModNone)))
	dev.Latch()
	ptr := dev.Pointer()
	assert.True(t, ptr.Down)
	assert.InDelta(t, 810, ptr.Position.X, 1e-9)
	assert.InDelta(t, 450, ptr.Position.Y, 1e-9)

	require.NoError(t, in.handle(tcell.NewEventMouse(40, 23, tcell.ButtonNone, tcell.ModNone)))
	dev.Latch()
	assert.True(t, dev.Pointer().JustReleased)
}

func TestTerminalInput_QuitKeys(t *testing.T) {
	in := NewTerminalInput(newScreen(t), input.NewStateDevice(), testArena)
	assert.ErrorIs(t, in.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)), ErrQuit)
	assert.ErrorIs(t, in.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)), ErrQuit)
}

func TestTerminalInput_RunStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	in := NewTerminalInput(screen, input.NewStateDevice(), testArena)

	done := make(chan error, 1)
	go func() { done <- in.Run(context.Background()) }()

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQuit)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}
	screen.Fini()
}
