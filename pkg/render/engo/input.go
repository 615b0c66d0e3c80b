// pkg/render/engo/input.go
package engo

import (
	"fmt"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/physics"
)

const quitButton = "quit"

var keyCodes = map[string]engo.Key{
	"LEFT":  engo.KeyArrowLeft,
	"RIGHT": engo.KeyArrowRight,
	"UP":    engo.KeyArrowUp,
	"DOWN":  engo.KeyArrowDown,
	"SPACE": engo.KeySpace,
	"ENTER": engo.KeyEnter,
	"0":     engo.KeyZero,
	"1":     engo.KeyOne,
	"2":     engo.KeyTwo,
	"3":     engo.KeyThree,
	"4":     engo.KeyFour,
	"5":     engo.KeyFive,
	"6":     engo.KeySix,
	"7":     engo.KeySeven,
	"8":     engo.KeyEight,
	"9":     engo.KeyNine,
}

func init() {
	letters := []engo.Key{
		engo.KeyA, engo.KeyB, engo.KeyC, engo.KeyD, engo.KeyE, engo.KeyF, engo.KeyG,
		engo.KeyH, engo.KeyI, engo.KeyJ, engo.KeyK, engo.KeyL, engo.KeyM, engo.KeyN,
		engo.KeyO, engo.KeyP, engo.KeyQ, engo.KeyR, engo.KeyS, engo.KeyT, engo.KeyU,
		engo.KeyV, engo.KeyW, engo.KeyX, engo.KeyY, engo.KeyZ,
	}
	for i, k := range letters {
		keyCodes[string(rune('A'+i))] = k
	}
}

// KeyCode returns the engo key for a logical key name. Names are matched
// case-insensitively.
func KeyCode(name input.KeyID) (engo.Key, bool) {
	k, ok := keyCodes[strings.ToUpper(string(name))]
	return k, ok
}

func buttonName(key input.KeyID) string {
	return "key:" + strings.ToUpper(string(key))
}

// RegisterBindings registers one engo button per key, plus Escape to quit.
func RegisterBindings(keys ...input.KeyID) error {
	for _, key := range keys {
		code, ok := KeyCode(key)
		if !ok {
			return fmt.Errorf("no engo key for %q", key)
		}
		engo.Input.RegisterButton(buttonName(key), code)
	}
	engo.Input.RegisterButton(quitButton, engo.KeyEscape)
	return nil
}

// mouseState is the subset of engo's mouse the input system reads.
type mouseState struct {
	X, Y    float32
	Pressed bool
	Release bool
}

// InputSystem copies engo keyboard and mouse state into a StateDevice each
// frame. The match latches the device before every tick.
type InputSystem struct {
	device *input.StateDevice
	keys   []input.KeyID
	// scale converts window coordinates to arena coordinates.
	scale float64

	buttonDown func(name string) bool
	mouse      func() mouseState
	exit       func()

	mouseDown bool
}

// NewInputSystem creates an input system feeding device with keys.
func NewInputSystem(device *input.StateDevice, keys []input.KeyID, scale float64) *InputSystem {
	if scale <= 0 {
		scale = 1
	}
	return &InputSystem{
		device: device,
		keys:   keys,
		scale:  scale,
		buttonDown: func(name string) bool {
			return engo.Input.Button(name).Down()
		},
		mouse: func() mouseState {
			m := engo.Input.Mouse
			return mouseState{
				X:       m.X,
				Y:       m.Y,
				Pressed: m.Action == engo.Press && m.Button == engo.MouseButtonLeft,
				Release: m.Action == engo.Release && m.Button == engo.MouseButtonLeft,
			}
		},
		exit: engo.Exit,
	}
}

// Remove satisfies ecs.System. The input system owns no entities.
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update satisfies ecs.System.
func (is *InputSystem) Update(dt float32) {
	if is.buttonDown(quitButton) {
		is.exit()
		return
	}
	for _, key := range is.keys {
		is.device.SetKey(key, is.buttonDown(buttonName(key)))
	}

	m := is.mouse()
	switch {
	case m.Pressed:
		is.mouseDown = true
	case m.Release:
		is.mouseDown = false
	}
	pos := physics.Vector2D{X: float64(m.X) * is.scale, Y: float64(m.Y) * is.scale}
	is.device.SetPointer(pos, is.mouseDown)
}
