package render

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/physics"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat event. Terminals do not report key releases.
const DefaultHoldWindow = 500 * time.Millisecond

// ErrQuit is returned by TerminalInput.Run when the player asks to quit.
var ErrQuit = errors.New("quit requested")

// TerminalInput feeds tcell key and mouse events into an input.StateDevice.
type TerminalInput struct {
	screen tcell.Screen
	device *input.StateDevice
	world  physics.Rect
	hold   time.Duration
	now    func() time.Time

	mu       sync.Mutex
	lastSeen map[input.KeyID]time.Time
}

// NewTerminalInput creates an input source for screen writing to device.
// world is the arena the mouse position is mapped into.
func NewTerminalInput(screen tcell.Screen, device *input.StateDevice, world physics.Rect) *TerminalInput {
	return &TerminalInput{
		screen:   screen,
		device:   device,
		world:    world,
		hold:     DefaultHoldWindow,
		now:      time.Now,
		lastSeen: make(map[input.KeyID]time.Time),
	}
}

// Run polls screen events until ctx is done, the screen is finalized, or
// Escape or Ctrl-C is pressed, in which case ErrQuit is returned.
func (t *TerminalInput) Run(ctx context.Context) error {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := t.handle(ev); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (t *TerminalInput) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return ErrQuit
		}
		if key, ok := KeyName(ev); ok {
			t.press(key)
		}
	case *tcell.EventMouse:
		w, h := t.screen.Size()
		x, y := ev.Position()
		pos := newViewport(t.world, w, h).toWorld(x, y)
		t.device.SetPointer(pos, ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return nil
}

func (t *TerminalInput) press(key input.KeyID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[key] = t.now()
	t.device.SetKey(key, true)
}

// Expire releases keys not seen within the hold window. Call it once per
// tick before the device is latched.
func (t *TerminalInput) Expire() {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, seen := range t.lastSeen {
		if now.Sub(seen) > t.hold {
			delete(t.lastSeen, key)
			t.device.SetKey(key, false)
		}
	}
}

// KeyName maps a tcell key event to the key names used in bindings:
// arrows as "Left", "Right", "Up", "Down", space as "Space", and printable
// characters upper-cased.
func KeyName(ev *tcell.EventKey) (input.KeyID, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "Left", true
	case tcell.KeyRight:
		return "Right", true
	case tcell.KeyUp:
		return "Up", true
	case tcell.KeyDown:
		return "Down", true
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "Space", true
		}
		return input.KeyID(strings.ToUpper(string(r))), true
	}
	return "", false
}
