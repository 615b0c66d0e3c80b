package ai

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/physics"
)

func TestLeadOffset(t *testing.T) {
	tests := []struct {
		name      string
		ballVX    float64
		distance  float64
		chargeMax float64
		facing    float64
		expected  float64
	}{
		{name: "right_side_reference", ballVX: 100, distance: 150, chargeMax: 100, facing: -1, expected: 82.5},
		{name: "left_side_mirrored_contact", ballVX: 100, distance: 150, chargeMax: 100, facing: 1, expected: -67.5},
		{name: "still_ball", ballVX: 0, distance: 400, chargeMax: 100, facing: -1, expected: 75},
		{name: "ball_moving_left", ballVX: -200, distance: 300, chargeMax: 100, facing: -1, expected: 45},
		{name: "zero_charge_max", ballVX: 100, distance: 150, chargeMax: 0, facing: -1, expected: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeadOffset(tt.ballVX, tt.distance, tt.chargeMax, tt.facing)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LeadOffset() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTargetAngle(t *testing.T) {
	self := physics.Vector2D{X: 1000, Y: 845}
	ball := physics.Vector2D{X: 1000, Y: 745}

	got := TargetAngle(self, ball, 1100)
	if math.Abs(got-(-math.Pi/4)) > 1e-12 {
		t.Errorf("TargetAngle() = %v, expected %v", got, -math.Pi/4)
	}
}

func TestAngleOffset_Range(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 10000; i++ {
		target := (rng.Float64() - 0.5) * 40
		current := (rng.Float64() - 0.5) * 40
		off := AngleOffset(target, current)
		if off <= -math.Pi || off > math.Pi {
			t.Fatalf("AngleOffset(%v, %v) = %v, outside (-π, π]", target, current, off)
		}
		if math.Abs(math.Sin(current+off)-math.Sin(target)) > 1e-9 ||
			math.Abs(math.Cos(current+off)-math.Cos(target)) > 1e-9 {
			t.Fatalf("AngleOffset(%v, %v) = %v does not reach the target direction", target, current, off)
		}
	}
}

func TestAngleOffset_Edges(t *testing.T) {
	tests := []struct {
		name            string
		target, current float64
		expected        float64
	}{
		{name: "zero", target: 1, current: 1, expected: 0},
		{name: "half_turn_positive", target: math.Pi, current: 0, expected: math.Pi},
		{name: "half_turn_negative", target: -math.Pi, current: 0, expected: math.Pi},
		{name: "wraps_across_pi", target: math.Pi - 0.1, current: -math.Pi + 0.1, expected: -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleOffset(tt.target, tt.current)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("AngleOffset() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestServo(t *testing.T) {
	tests := []struct {
		offset      float64
		left, right bool
	}{
		{offset: 0.5, right: true},
		{offset: -0.5, left: true},
		{offset: 0},
	}

	for _, tt := range tests {
		left, right := Servo(tt.offset)
		if left != tt.left || right != tt.right {
			t.Errorf("Servo(%v) = (%v, %v), expected (%v, %v)", tt.offset, left, right, tt.left, tt.right)
		}
	}
}

func TestPositionMove(t *testing.T) {
	tests := []struct {
		name     string
		selfX    float64
		desiredX float64
		grounded bool
		expected control.Movement
	}{
		{name: "inside_dead_zone", selfX: 1000, desiredX: 1010, grounded: true, expected: control.MoveNone},
		{name: "dead_zone_edge", selfX: 1000, desiredX: 985, grounded: true, expected: control.MoveNone},
		{name: "walk_left", selfX: 1000, desiredX: 900, grounded: true, expected: control.MoveLeft},
		{name: "walk_right", selfX: 1000, desiredX: 1100, grounded: true, expected: control.MoveRight},
		{name: "airborne_inert", selfX: 1000, desiredX: 1300, grounded: false, expected: control.MoveNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionMove(tt.selfX, tt.desiredX, tt.grounded); got != tt.expected {
				t.Errorf("PositionMove() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestShouldRelease(t *testing.T) {
	tests := []struct {
		name      string
		onOwnSide bool
		value     float64
		distance  float64
		grounded  bool
		expected  bool
	}{
		{name: "all_hold", onOwnSide: true, value: 100, distance: 200, grounded: true, expected: true},
		{name: "ball_on_other_side", onOwnSide: false, value: 100, distance: 200, grounded: true},
		{name: "not_full", onOwnSide: true, value: 98, distance: 200, grounded: true},
		{name: "too_far", onOwnSide: true, value: 100, distance: 300, grounded: true},
		{name: "boundary_exactly_range", onOwnSide: true, value: 100, distance: 250, grounded: true},
		{name: "airborne", onOwnSide: true, value: 100, distance: 200, grounded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRelease(tt.onOwnSide, tt.value, 100, tt.distance, tt.grounded); got != tt.expected {
				t.Errorf("ShouldRelease() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSide(t *testing.T) {
	if !SideLeft.Owns(799, 800) || SideLeft.Owns(800, 800) {
		t.Error("left side ownership wrong around center")
	}
	if !SideRight.Owns(801, 800) || SideRight.Owns(800, 800) {
		t.Error("right side ownership wrong around center")
	}
	if SideLeft.Facing() != 1 || SideRight.Facing() != -1 {
		t.Error("facing wrong")
	}
}

func TestSide_Reaches(t *testing.T) {
	if !SideLeft.Reaches(800, 800, 65) || !SideRight.Reaches(800, 800, 65) {
		t.Error("a ball on the center line should be within reach of both sides")
	}
	if !SideRight.Reaches(740, 800, 65) || SideRight.Reaches(730, 800, 65) {
		t.Error("right side reach wrong around the band edge")
	}
	if SideLeft.Reaches(800, 800, 0) {
		t.Error("zero reach should behave like Owns")
	}
}

func TestDesiredX(t *testing.T) {
	if got := DesiredX(1200, 1400, true); got != 1200 {
		t.Errorf("DesiredX on own side = %v, expected ball x", got)
	}
	if got := DesiredX(300, 1400, false); got != 1400 {
		t.Errorf("DesiredX on other side = %v, expected ready x", got)
	}
}
