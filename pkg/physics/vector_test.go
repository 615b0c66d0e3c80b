// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add_mixed_signs", Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}), Vector2D{X: 3, Y: 4}},
		{"add_zero", Vector2D{}.Add(Vector2D{X: 5, Y: -3}), Vector2D{X: 5, Y: -3}},
		{"sub_negative_result", Vector2D{X: 2, Y: 3}.Sub(Vector2D{X: 5, Y: 7}), Vector2D{X: -3, Y: -4}},
		{"scale_negative", Vector2D{X: 3, Y: 4}.Scale(-2), Vector2D{X: -6, Y: -8}},
		{"scale_zero", Vector2D{X: 3, Y: 4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{name: "zero_vector", vector: Vector2D{}, expected: 0},
		{name: "pythagorean_triple", vector: Vector2D{X: 3, Y: 4}, expected: 5},
		{name: "negative_components", vector: Vector2D{X: -3, Y: -4}, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Length()
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Length() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_Distance(t *testing.T) {
	a := Vector2D{X: 1, Y: 1}
	b := Vector2D{X: 4, Y: 5}
	if d := a.Distance(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance() = %v, expected 5", d)
	}
}

func TestVector2D_Angle(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{name: "positive_x_axis", vector: Vector2D{X: 1, Y: 0}, expected: 0},
		{name: "positive_y_axis_points_down", vector: Vector2D{X: 0, Y: 1}, expected: math.Pi / 2},
		{name: "negative_x_axis", vector: Vector2D{X: -1, Y: 0}, expected: math.Pi},
		{name: "up_and_left", vector: Vector2D{X: -1, Y: -1}, expected: -3 * math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Angle()
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Angle() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		magnitude float64
		expectedX float64
		expectedY float64
	}{
		{name: "zero_angle", angle: 0, magnitude: 1, expectedX: 1, expectedY: 0},
		{name: "straight_up", angle: -math.Pi / 2, magnitude: 1500, expectedX: 0, expectedY: -1500},
		{name: "45_degrees_magnitude_2", angle: math.Pi / 4, magnitude: 2, expectedX: math.Sqrt(2), expectedY: math.Sqrt(2)},
		{name: "zero_magnitude", angle: math.Pi / 4, magnitude: 0, expectedX: 0, expectedY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromAngle(tt.angle, tt.magnitude)
			if math.Abs(result.X-tt.expectedX) > 1e-9 || math.Abs(result.Y-tt.expectedY) > 1e-9 {
				t.Errorf("FromAngle() = %v, expected (%v, %v)", result, tt.expectedX, tt.expectedY)
			}
		})
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	if !(Vector2D{X: 1, Y: -2}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vector2D{X: math.NaN()}).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if (Vector2D{Y: math.Inf(-1)}).IsFinite() {
		t.Error("infinite component reported finite")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{name: "in_range", angle: 1, expected: 1},
		{name: "pi_stays_pi", angle: math.Pi, expected: math.Pi},
		{name: "minus_pi_maps_to_pi", angle: -math.Pi, expected: math.Pi},
		{name: "just_over_pi", angle: math.Pi + 0.5, expected: -math.Pi + 0.5},
		{name: "many_turns", angle: 10*math.Pi + 0.25, expected: 0.25},
		{name: "many_negative_turns", angle: -7*math.Pi - 0.25, expected: math.Pi - 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeAngle(tt.angle)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, expected %v", tt.angle, result, tt.expected)
			}
			if math.Abs(math.Sin(result)-math.Sin(tt.angle)) > 1e-9 ||
				math.Abs(math.Cos(result)-math.Cos(tt.angle)) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) changed trig output", tt.angle)
			}
		})
	}
}

func BenchmarkNormalizeAngle(b *testing.B) {
	a := 123.456
	for i := 0; i < b.N; i++ {
		_ = NormalizeAngle(a)
	}
}
