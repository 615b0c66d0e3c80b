package control

import (
	"github.com/opd-ai/go-volley/pkg/physics"
)

// ApplyMovement applies a lateral movement decision to body.
//
// Walking never slows a body that already moves faster in the walking
// direction; it only raises weaker motion to the walking speed. Grounded
// bodies use GroundMovingSpeed, airborne ones AirMovingSpeed. MoveBrake
// multiplies horizontal velocity by FrictionFactor, and only on the ground.
func ApplyMovement(body physics.Body, m Movement, grounded bool, s Settings) {
	if body == nil || m == MoveNone {
		return
	}

	speed := s.AirMovingSpeed
	if grounded {
		speed = s.GroundMovingSpeed
	}

	v := body.Velocity()
	switch m {
	case MoveLeft:
		v.X = AtLeastToward(v.X, -1, speed)
	case MoveRight:
		v.X = AtLeastToward(v.X, 1, speed)
	case MoveBrake:
		if !grounded {
			return
		}
		v.X *= s.FrictionFactor
	}
	body.SetVelocity(v)
}

// AtLeastToward returns vx raised to speed in direction dir (-1 or 1),
// unless vx already exceeds it in that direction.
func AtLeastToward(vx float64, dir int, speed float64) float64 {
	if dir < 0 {
		if vx > -speed {
			return -speed
		}
		return vx
	}
	if vx < speed {
		return speed
	}
	return vx
}
