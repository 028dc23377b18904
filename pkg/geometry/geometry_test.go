package geometry

import (
	"math"
	"testing"
)

func TestTurnDelta(t *testing.T) {
	tests := []struct {
		label   string
		fromDeg float64
		toDeg   float64
		wantDeg float64
	}{
		{"small right turn", 10, 30, 20},
		{"small left turn", 30, 10, -20},
		{"wrap left across north", 10, 350, -20},
		{"wrap right across north", 350, 10, 20},
		{"half turn is right", 0, 180, 180},
		{"no turn", 90, 90, 0},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got := RadToDeg(TurnDelta(DegToRad(tc.fromDeg), DegToRad(tc.toDeg)))
			if math.Abs(got-tc.wantDeg) > 1e-9 {
				t.Errorf("TurnDelta(%v, %v) = %v deg, want %v", tc.fromDeg, tc.toDeg, got, tc.wantDeg)
			}
		})
	}
}

func TestNormalizeHeading(t *testing.T) {
	if got := NormalizeHeading(-math.Pi / 2); math.Abs(got-3*math.Pi/2) > 1e-9 {
		t.Errorf("NormalizeHeading(-π/2) = %v, want 3π/2", got)
	}
	if got := NormalizeHeading(2 * math.Pi); got != 0 {
		t.Errorf("NormalizeHeading(2π) = %v, want 0", got)
	}
}

func TestCourseTo(t *testing.T) {
	origin := Point{}

	tests := []struct {
		label   string
		to      Point
		wantDeg float64
	}{
		{"due north", Point{X: 0, Y: 10}, 0},
		{"due east", Point{X: 10, Y: 0}, 90},
		{"due south", Point{X: 0, Y: -10}, 180},
		{"due west", Point{X: -10, Y: 0}, 270},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got := RadToDeg(CourseTo(origin, tc.to))
			if math.Abs(got-tc.wantDeg) > 1e-9 {
				t.Errorf("CourseTo = %v deg, want %v", got, tc.wantDeg)
			}
		})
	}
}

func TestDist(t *testing.T) {
	if got := Dist(Point{X: 3, Y: 0}, Point{X: 0, Y: 4}); math.Abs(got-5) > 1e-9 {
		t.Errorf("Dist = %v, want 5", got)
	}
}
