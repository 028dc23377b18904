package sim

import (
	"math"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

const (
	MinLateralSeparationNm  = 2.0
	MinVerticalSeparationFt = 1000.0
)

// Violation is one pair of aircraft simultaneously inside both separation
// minima. First sorts before Second so a pair has one canonical identity.
type Violation struct {
	First      string
	Second     string
	LateralNm  float64
	VerticalFt float64
}

// PairKey is the canonical identity of the violating pair, used by callers
// that de-duplicate across ticks.
func (v Violation) PairKey() string {
	return v.First + "/" + v.Second
}

// CheckSeparation scans all unordered pairs of live aircraft once and
// returns a violation per pair inside both minima. O(n²), acceptable for the
// expected 1-12 aircraft. It never mutates aircraft state.
func CheckSeparation(aircraft []*Aircraft) []Violation {
	var violations []Violation

	for i := 0; i < len(aircraft); i++ {
		for j := i + 1; j < len(aircraft); j++ {
			a, b := aircraft[i], aircraft[j]
			if a.Landed || b.Landed {
				continue
			}

			lateral := geometry.Dist(a.Position, b.Position)
			vertical := math.Abs(a.AltitudeFt - b.AltitudeFt)

			// Either separation alone is safe; both must be breached.
			if lateral < MinLateralSeparationNm && vertical < MinVerticalSeparationFt {
				first, second := a.Callsign, b.Callsign
				if second < first {
					first, second = second, first
				}
				violations = append(violations, Violation{
					First:      first,
					Second:     second,
					LateralNm:  lateral,
					VerticalFt: vertical,
				})
			}
		}
	}

	return violations
}
