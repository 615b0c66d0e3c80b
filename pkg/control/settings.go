// Package control implements the charge-and-launch state machine shared by
// human and AI players, and the human input mapping that drives it.
package control

import "errors"

// LaunchMultiplier converts a charge value into launch velocity.
const LaunchMultiplier = 15.0

var (
	// ErrNoDevice is returned by HumanInput when no input device is bound.
	ErrNoDevice = errors.New("no input device bound")
	// ErrInvalidSettings is returned when settings cannot drive a charge.
	ErrInvalidSettings = errors.New("invalid control settings")
)

// Settings are the per-tick tuning values of the control core. All rates are
// per tick, not per second.
type Settings struct {
	TurningSpeed      float64
	ChargeSpeed       float64
	ChargeMax         float64
	GroundMovingSpeed float64
	AirMovingSpeed    float64
	// FrictionFactor multiplies horizontal velocity of an idle grounded body.
	FrictionFactor float64
	// BodyRadius is the offset of the aim line from the body center.
	BodyRadius float64
}

// Validate rejects settings that cannot drive a ChargeState.
func (s Settings) Validate() error {
	if !(s.ChargeMax > 0) {
		return errors.Join(ErrInvalidSettings, errors.New("charge max must be positive"))
	}
	if s.ChargeSpeed < 0 {
		return errors.Join(ErrInvalidSettings, errors.New("charge speed must not be negative"))
	}
	return nil
}
