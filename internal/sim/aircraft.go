package sim

import (
	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

// Performance limits for an aircraft category. Rates follow typical terminal
// area values: 3 deg/sec standard rate turns, 5 kt/sec speed changes.
type Envelope struct {
	MinSpeedKt          float64
	MaxSpeedKt          float64
	MaxTurnRateRadSec   float64
	MaxVerticalSpeedFpm float64
	MaxAccelKtSec       float64
}

const (
	CategoryJet       = "jet"
	CategoryTurboprop = "turboprop"
	CategoryPiston    = "piston"
)

var envelopes = map[string]Envelope{
	CategoryJet: {
		MinSpeedKt:          130,
		MaxSpeedKt:          350,
		MaxTurnRateRadSec:   geometry.DegToRad(3.0),
		MaxVerticalSpeedFpm: 2500,
		MaxAccelKtSec:       5.0,
	},
	CategoryTurboprop: {
		MinSpeedKt:          90,
		MaxSpeedKt:          260,
		MaxTurnRateRadSec:   geometry.DegToRad(3.0),
		MaxVerticalSpeedFpm: 1800,
		MaxAccelKtSec:       4.0,
	},
	CategoryPiston: {
		MinSpeedKt:          60,
		MaxSpeedKt:          160,
		MaxTurnRateRadSec:   geometry.DegToRad(3.0),
		MaxVerticalSpeedFpm: 1000,
		MaxAccelKtSec:       3.0,
	},
}

// EnvelopeFor returns the performance envelope for a type category,
// defaulting to the jet envelope for unknown categories.
func EnvelopeFor(category string) Envelope {
	if env, ok := envelopes[category]; ok {
		return env
	}
	return envelopes[CategoryJet]
}

// Destination is the arrival airport reference used by the landing check.
type Destination struct {
	Position     geometry.Point
	Runway       string
	RunwayHdgRad float64
}

// Aircraft is the full kinematic state of one live aircraft. It is owned by
// exactly one engine and mutated only during that engine's tick or by the
// clearance applicator.
type Aircraft struct {
	Callsign string
	Category string

	Position   geometry.Point
	HeadingRad float64
	SpeedKt    float64
	AltitudeFt float64

	// Current rates, set by the clearance applicator, consumed by the
	// integrator.
	VerticalSpeedFpm float64
	TurnRateRadSec   float64
	AccelKtSec       float64

	// Active targets. Nil means no active clearance for that axis.
	TargetHeadingRad *float64
	TargetAltitudeFt *float64
	TargetSpeedKt    *float64

	// Procedural state, recorded but inert on kinematics in this core.
	DirectFix       string
	ClearedApproach string
	HoldingFix      string
	ContactFacility string

	Envelope Envelope

	IsArrival   bool
	Landed      bool
	Destination Destination
}

// NewAircraft builds an aircraft with its category envelope applied and the
// heading normalized. Speed is clamped into the envelope so the state
// invariant holds from the first tick.
func NewAircraft(callsign, category string, pos geometry.Point, headingRad, speedKt, altitudeFt float64) *Aircraft {
	env := EnvelopeFor(category)
	if speedKt < env.MinSpeedKt {
		speedKt = env.MinSpeedKt
	} else if speedKt > env.MaxSpeedKt {
		speedKt = env.MaxSpeedKt
	}
	if altitudeFt < 0 {
		altitudeFt = 0
	}
	return &Aircraft{
		Callsign:   callsign,
		Category:   category,
		Position:   pos,
		HeadingRad: geometry.NormalizeHeading(headingRad),
		SpeedKt:    speedKt,
		AltitudeFt: altitudeFt,
		Envelope:   env,
	}
}

// DistanceTo returns the planar distance in nautical miles to a point.
func (a *Aircraft) DistanceTo(p geometry.Point) float64 {
	return geometry.Dist(a.Position, p)
}
