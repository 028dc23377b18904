package geometry

import (
	"math"
)

// --- Planar frame helpers ---
//
// Positions live in a local planar frame measured in nautical miles,
// X growing east and Y growing north. Headings are compass angles in
// radians: 0 is north, increasing clockwise.

type Point struct {
	X float64
	Y float64
}

func Dist(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HeadingVector returns the unit east/north components of a compass heading.
func HeadingVector(headingRad float64) (x, y float64) {
	return math.Sin(headingRad), math.Cos(headingRad)
}

// CourseTo returns the compass heading from a to b, normalized to [0, 2π).
func CourseTo(a, b Point) float64 {
	return NormalizeHeading(math.Atan2(b.X-a.X, b.Y-a.Y))
}

// NormalizeHeading wraps an angle into [0, 2π).
func NormalizeHeading(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

// TurnDelta returns the signed shortest rotation from one compass heading to
// another, normalized to (-π, π]. Positive means a right turn.
func TurnDelta(fromRad, toRad float64) float64 {
	d := math.Mod(toRad-fromRad, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
