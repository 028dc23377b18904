// Package agent implements the heuristic controller that flies the
// comparison engine in head-to-head sessions. It is stateless: every
// decision is a pure function of the observation it is handed.
package agent

// Phase boundaries in distance from the airport.
const (
	approachOuterNm = 30.0
	approachInnerNm = 10.0
)

// Observation is the per-aircraft snapshot the agent decides from. Distances
// are nautical miles, bearings and headings compass degrees.
type Observation struct {
	Callsign            string
	DistanceToAirportNm float64
	BearingToAirportDeg float64
	HeadingDeg          float64
	AltitudeFt          float64
	SpeedKt             float64
	RunwayHeadingDeg    float64

	// Traffic picture.
	SeparationFromOtherAircraftNm float64 // closest other aircraft; large when alone
	NumAircraftInApproach         int
}

// Decision is the agent's commanded state for one aircraft. The caller turns
// it into ordinary heading/altitude/speed clearances.
type Decision struct {
	HeadingDeg float64
	AltitudeFt float64
	SpeedKt    float64
	Confidence float64
}

// Decide maps an observation to a decision using a three-phase profile:
// distant aircraft are pointed at the field, approach-phase aircraft descend
// and slow on a distance-proportional profile, and final-phase aircraft take
// the runway heading on a 3-degree-style glide.
func Decide(obs Observation) Decision {
	var d Decision

	switch {
	case obs.DistanceToAirportNm > approachOuterNm:
		// Distant: hold altitude and speed, steer toward the field.
		d.HeadingDeg = obs.BearingToAirportDeg
		d.AltitudeFt = obs.AltitudeFt
		d.SpeedKt = obs.SpeedKt

	case obs.DistanceToAirportNm > approachInnerNm:
		// Approach: descend toward 3000 ft and decelerate toward 210 kt as
		// the distance closes.
		d.HeadingDeg = obs.BearingToAirportDeg
		d.AltitudeFt = 3000 + (obs.DistanceToAirportNm-approachInnerNm)*250
		d.SpeedKt = 210 + (obs.DistanceToAirportNm-approachInnerNm)*3

	default:
		// Final: runway heading, 300 ft per nm, approach speed.
		d.HeadingDeg = obs.RunwayHeadingDeg
		d.AltitudeFt = obs.DistanceToAirportNm * 300
		d.SpeedKt = 140
	}

	d.Confidence = confidence(obs)
	return d
}

// confidence starts high and degrades with traffic pressure: tight
// separation and a crowded approach both pull it down, floored at 0.1.
func confidence(obs Observation) float64 {
	c := 0.85
	if obs.SeparationFromOtherAircraftNm < 3.0 {
		c -= 0.3
	}
	if obs.NumAircraftInApproach > 2 {
		c -= 0.1 * float64(obs.NumAircraftInApproach-2)
	}
	if c < 0.1 {
		c = 0.1
	}
	return c
}
