// Package input defines the device contract human players are driven by
// and a frame-latched device implementation the front-ends feed.
package input

import (
	"sync"

	"github.com/opd-ai/go-volley/pkg/physics"
)

// KeyID names a logical key ("A", "ArrowLeft", "Space", ...). Front-ends map
// their native key codes to these names.
type KeyID string

// PointerState is the state of a mouse or touch pointer for one frame.
type PointerState struct {
	Down         bool
	JustReleased bool
	Position     physics.Vector2D
}

// Device is a polled input device.
type Device interface {
	// KeyDown reports whether the key is held this frame.
	KeyDown(key KeyID) bool
	// KeyJustUp reports whether the key went from held to released this frame.
	KeyJustUp(key KeyID) bool
	Pointer() PointerState
}

// StateDevice is a Device whose state is written by an event source and
// latched once per frame with Latch. Reads between latches see a stable
// frame; edge queries compare the current frame with the previous one.
//
// Writes and reads may happen on different goroutines.
type StateDevice struct {
	mu sync.Mutex

	pending      map[KeyID]bool
	pointer      PointerState
	pointerLatch bool // pointer was down at some point since the last latch

	current  map[KeyID]bool
	previous map[KeyID]bool
	frame    PointerState
}

// NewStateDevice creates an empty StateDevice.
func NewStateDevice() *StateDevice {
	return &StateDevice{
		pending:  make(map[KeyID]bool),
		current:  make(map[KeyID]bool),
		previous: make(map[KeyID]bool),
	}
}

// SetKey records that key is held (down=true) or released.
func (d *StateDevice) SetKey(key KeyID, down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[key] = down
}

// SetPointer records the pointer position and button state.
func (d *StateDevice) SetPointer(pos physics.Vector2D, down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pointer.Position = pos
	d.pointer.Down = down
	if down {
		d.pointerLatch = true
	}
}

// Latch freezes the pending state as the current frame.
func (d *StateDevice) Latch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.previous, d.current = d.current, d.previous
	for k := range d.current {
		delete(d.current, k)
	}
	for k, v := range d.pending {
		if v {
			d.current[k] = true
		}
	}

	wasDown := d.frame.Down
	d.frame = PointerState{
		Down:     d.pointer.Down,
		Position: d.pointer.Position,
	}
	// A press and release between two latches still counts as a release.
	d.frame.JustReleased = !d.pointer.Down && (wasDown || d.pointerLatch)
	d.pointerLatch = false
}

// KeyDown implements Device.
func (d *StateDevice) KeyDown(key KeyID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current[key]
}

// KeyJustUp implements Device.
func (d *StateDevice) KeyJustUp(key KeyID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.previous[key] && !d.current[key]
}

// Pointer implements Device.
func (d *StateDevice) Pointer() PointerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}
