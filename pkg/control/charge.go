package control

import (
	"math"

	"github.com/opd-ai/go-volley/pkg/physics"
)

// ChargeState is the per-player charge and aim. Value is 0 while idle and
// grows while the charge input is held; Angle is the aim direction.
type ChargeState struct {
	Value float64
	Angle float64
}

// AimLine is the segment drawn in front of a player to show aim and power.
type AimLine struct {
	From physics.Vector2D
	To   physics.Vector2D
}

// Length returns the length of the line.
func (l AimLine) Length() float64 {
	return l.From.Distance(l.To)
}

// UpdateResult reports what a tick of ChargeState.Update did.
type UpdateResult struct {
	Released bool
	Impulse  physics.Vector2D
	// Healed is set when Value or Angle was out of range at tick start and
	// had to be clamped.
	Healed bool
	Line   AimLine
}

// Charging reports whether a charge is in progress.
func (c ChargeState) Charging() bool {
	return c.Value > 0
}

// Reset drops any charge in progress.
func (c *ChargeState) Reset() {
	c.Value = 0
}

// Update advances the charge by one tick: turn or aim, accumulate charge,
// launch on release, then recompute the aim line.
func (c *ChargeState) Update(sig ControlSignal, body physics.Body, s Settings) (UpdateResult, error) {
	var res UpdateResult
	if body == nil {
		return res, physics.ErrNoBody
	}
	res.Healed = c.heal(s)

	pos := body.Position()
	c.aim(sig, pos, s)

	if sig.ChargeHeld {
		c.Value += s.ChargeSpeed
		if c.Value > s.ChargeMax {
			c.Value = s.ChargeMax
		}
	}

	if sig.ChargeReleased && c.Value > 0 {
		res.Impulse = physics.FromAngle(c.Angle, c.Value*LaunchMultiplier)
		body.SetVelocity(body.Velocity().Add(res.Impulse))
		res.Released = true
		c.Value = 0
	}

	res.Line = AimLineFor(pos, c.Angle, c.Value, s.BodyRadius)
	return res, nil
}

func (c *ChargeState) aim(sig ControlSignal, pos physics.Vector2D, s Settings) {
	if sig.AimOverride != nil {
		c.Angle = sig.AimOverride.Sub(pos).Angle()
		return
	}

	rate := s.TurningSpeed
	if sig.TurnMultiplier != 0 {
		rate *= sig.TurnMultiplier
	}
	if sig.TurnLeft {
		c.Angle -= rate
	}
	if sig.TurnRight {
		c.Angle += rate
	}
	c.Angle = physics.NormalizeAngle(c.Angle)
}

// heal clamps an out-of-range state back into range.
func (c *ChargeState) heal(s Settings) bool {
	healed := false
	switch {
	case math.IsNaN(c.Value) || c.Value < 0:
		c.Value = 0
		healed = true
	case c.Value > s.ChargeMax:
		c.Value = s.ChargeMax
		healed = true
	}
	if math.IsNaN(c.Angle) || math.IsInf(c.Angle, 0) {
		c.Angle = 0
		healed = true
	}
	return healed
}

// AimLineFor computes the aim line of a body at pos: it starts radius units
// out along angle and is value units long.
func AimLineFor(pos physics.Vector2D, angle, value, radius float64) AimLine {
	from := pos.Add(physics.FromAngle(angle, radius))
	return AimLine{
		From: from,
		To:   from.Add(physics.FromAngle(angle, value)),
	}
}
