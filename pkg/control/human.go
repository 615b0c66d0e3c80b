package control

import (
	"github.com/opd-ai/go-volley/pkg/input"
)

// Bindings maps the logical actions of a human player to keys.
type Bindings struct {
	Left   input.KeyID
	Right  input.KeyID
	Charge input.KeyID
}

// HumanInput turns device state into a ControlSignal.
//
// The left and right keys turn the aim. While idle they also walk. A pointer
// held in the lower third of the play area walks towards it; held in the
// upper two thirds it charges and aims at the pointer. Once a charge has
// started it continues for as long as the pointer stays down, wherever the
// pointer goes.
type HumanInput struct {
	Device   input.Device
	Bindings Bindings
	// PlayHeight is the height of the play area the pointer zones divide.
	PlayHeight float64
}

// Next implements InputSource.
func (h *HumanInput) Next(frame Frame) (ControlSignal, error) {
	var sig ControlSignal
	if h == nil || h.Device == nil {
		return sig, ErrNoDevice
	}

	dev := h.Device
	ptr := dev.Pointer()
	self := frame.Self.Position
	charging := frame.Charge.Charging()

	left := dev.KeyDown(h.Bindings.Left)
	right := dev.KeyDown(h.Bindings.Right)

	pointerCharge := ptr.Down && ptr.Position.Y < h.PlayHeight*2/3
	pointerAims := ptr.Down && (pointerCharge || charging)
	if ptr.Down && !pointerAims {
		switch {
		case ptr.Position.X < self.X:
			left = true
		case ptr.Position.X > self.X:
			right = true
		}
	}

	sig.TurnLeft = left
	sig.TurnRight = right
	if pointerAims {
		target := ptr.Position
		sig.AimOverride = &target
	}

	trigger := dev.KeyDown(h.Bindings.Charge) || pointerCharge || (charging && ptr.Down)
	sig.ChargeHeld = trigger && frame.Grounded
	sig.ChargeReleased = dev.KeyJustUp(h.Bindings.Charge) || ptr.JustReleased

	if !charging {
		switch {
		case left && !right:
			sig.Move = MoveLeft
		case right && !left:
			sig.Move = MoveRight
		default:
			sig.Move = MoveBrake
		}
	}
	return sig, nil
}
