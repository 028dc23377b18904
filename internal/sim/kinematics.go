package sim

import (
	"math"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

const (
	// Landing gate: aligned with the runway, low, and close in.
	landingAlignTolRad = math.Pi / 12 // 15 degrees
	landingAltitudeFt  = 2000.0
	landingRadiusNm    = 1.0
)

// WindSample is the surface wind seen by one aircraft this tick. Direction
// is the compass direction the wind blows FROM, in degrees.
type WindSample struct {
	DirectionDeg float64
	SpeedKt      float64
}

// Advance integrates one aircraft one tick of dt simulated seconds: heading,
// altitude and speed each move toward their targets clamped so they never
// overshoot, then position moves along the heading with wind drift applied.
// It returns true when the aircraft touched down this tick.
func Advance(ac *Aircraft, dt float64, wind WindSample) bool {
	if ac.Landed || dt <= 0 {
		return false
	}

	advanceHeading(ac, dt)
	advanceAltitude(ac, dt)
	advanceSpeed(ac, dt)
	advancePosition(ac, dt, wind)

	return checkLanding(ac)
}

func advanceHeading(ac *Aircraft, dt float64) {
	if ac.TargetHeadingRad == nil || ac.TurnRateRadSec == 0 {
		return
	}

	step := ac.TurnRateRadSec * dt
	remaining := geometry.TurnDelta(ac.HeadingRad, *ac.TargetHeadingRad)

	// When turning the commanded (possibly longer) way, the remaining arc as
	// seen from the turn direction is what matters for the overshoot clamp.
	if ac.TurnRateRadSec > 0 && remaining < 0 {
		remaining += 2 * math.Pi
	} else if ac.TurnRateRadSec < 0 && remaining > 0 {
		remaining -= 2 * math.Pi
	}

	if math.Abs(step) >= math.Abs(remaining) {
		ac.HeadingRad = *ac.TargetHeadingRad
		ac.TurnRateRadSec = 0
	} else {
		ac.HeadingRad = geometry.NormalizeHeading(ac.HeadingRad + step)
	}
}

func advanceAltitude(ac *Aircraft, dt float64) {
	if ac.TargetAltitudeFt == nil || ac.VerticalSpeedFpm == 0 {
		return
	}

	step := ac.VerticalSpeedFpm * dt / 60
	remaining := *ac.TargetAltitudeFt - ac.AltitudeFt

	if math.Abs(step) >= math.Abs(remaining) {
		ac.AltitudeFt = *ac.TargetAltitudeFt
		ac.VerticalSpeedFpm = 0
	} else {
		ac.AltitudeFt += step
	}
	if ac.AltitudeFt < 0 {
		ac.AltitudeFt = 0
	}
}

func advanceSpeed(ac *Aircraft, dt float64) {
	if ac.TargetSpeedKt != nil && ac.AccelKtSec != 0 {
		step := ac.AccelKtSec * dt
		remaining := *ac.TargetSpeedKt - ac.SpeedKt

		if math.Abs(step) >= math.Abs(remaining) {
			ac.SpeedKt = *ac.TargetSpeedKt
			ac.AccelKtSec = 0
		} else {
			ac.SpeedKt += step
		}
	}

	// Envelope invariant holds regardless of targets.
	if ac.SpeedKt < ac.Envelope.MinSpeedKt {
		ac.SpeedKt = ac.Envelope.MinSpeedKt
	} else if ac.SpeedKt > ac.Envelope.MaxSpeedKt {
		ac.SpeedKt = ac.Envelope.MaxSpeedKt
	}
}

func advancePosition(ac *Aircraft, dt float64, wind WindSample) {
	// Decompose the wind relative to the aircraft heading: the along-track
	// component slows (headwind) or pushes (tailwind) the ground speed, the
	// cross component drifts the track sideways.
	windDirRad := geometry.DegToRad(wind.DirectionDeg)
	rel := windDirRad - ac.HeadingRad
	headwindKt := wind.SpeedKt * math.Cos(rel)
	crosswindKt := wind.SpeedKt * math.Sin(rel)

	alongKt := ac.SpeedKt - headwindKt
	driftKt := -crosswindKt // wind from the right pushes the track left

	hx, hy := geometry.HeadingVector(ac.HeadingRad)
	rx, ry := geometry.HeadingVector(ac.HeadingRad + math.Pi/2)

	hours := dt / 3600
	ac.Position.X += (alongKt*hx + driftKt*rx) * hours
	ac.Position.Y += (alongKt*hy + driftKt*ry) * hours
}

func checkLanding(ac *Aircraft) bool {
	if !ac.IsArrival || ac.Landed {
		return false
	}

	aligned := math.Abs(geometry.TurnDelta(ac.HeadingRad, ac.Destination.RunwayHdgRad)) <= landingAlignTolRad
	low := ac.AltitudeFt <= landingAltitudeFt
	close := ac.DistanceTo(ac.Destination.Position) <= landingRadiusNm

	if aligned && low && close {
		ac.Landed = true
		return true
	}
	return false
}
