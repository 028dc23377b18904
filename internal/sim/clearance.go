package sim

import (
	"fmt"
	"math"

	"github.com/ivanlamont/AI-ATC-sub000/internal/command"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

const (
	// AbsoluteCeilingFt is the hard altitude ceiling for any clearance.
	AbsoluteCeilingFt = 60000.0

	// Deadbands prevent rate oscillation when a target sits at (or next to)
	// the current value.
	altitudeDeadbandFt = 100.0
	speedDeadbandKt    = 5.0
)

// ValidateClearance checks a command against an aircraft's envelope without
// touching state. A false result carries the "unable to comply" reason; it is
// an expected, recoverable condition, never an error.
func ValidateClearance(cmd command.Command, ac *Aircraft) (bool, string) {
	switch c := cmd.(type) {
	case command.Heading:
		if c.Degrees < 0 || c.Degrees >= 360 {
			return false, fmt.Sprintf("heading %v out of range [0,360)", c.Degrees)
		}
	case command.Altitude:
		if c.Feet < 0 {
			return false, "negative altitude"
		}
		if c.Feet > AbsoluteCeilingFt {
			return false, fmt.Sprintf("altitude %v above ceiling %v", c.Feet, AbsoluteCeilingFt)
		}
	case command.Speed:
		if c.Knots < ac.Envelope.MinSpeedKt || c.Knots > ac.Envelope.MaxSpeedKt {
			return false, fmt.Sprintf("speed %v outside envelope [%v,%v]",
				c.Knots, ac.Envelope.MinSpeedKt, ac.Envelope.MaxSpeedKt)
		}
	case command.Direct, command.Contact, command.Approach, command.Hold:
		// Procedural clearances are always accepted in this core.
	default:
		return false, "unknown command"
	}
	return true, ""
}

// ApplyClearance validates and commits a command to the aircraft's control
// targets. On rejection the aircraft is left unchanged.
func ApplyClearance(cmd command.Command, ac *Aircraft) bool {
	if ok, _ := ValidateClearance(cmd, ac); !ok {
		return false
	}

	switch c := cmd.(type) {
	case command.Heading:
		target := geometry.NormalizeHeading(geometry.DegToRad(c.Degrees))
		ac.TargetHeadingRad = &target
		// A vector overrides any direct-to navigation.
		ac.DirectFix = ""

		delta := geometry.TurnDelta(ac.HeadingRad, target)
		switch c.Direction {
		case command.TurnLeft:
			ac.TurnRateRadSec = -ac.Envelope.MaxTurnRateRadSec
		case command.TurnRight:
			ac.TurnRateRadSec = ac.Envelope.MaxTurnRateRadSec
		default:
			// Either: take the shortest path.
			if delta < 0 {
				ac.TurnRateRadSec = -ac.Envelope.MaxTurnRateRadSec
			} else if delta > 0 {
				ac.TurnRateRadSec = ac.Envelope.MaxTurnRateRadSec
			} else {
				ac.TurnRateRadSec = 0
			}
		}

	case command.Altitude:
		target := c.Feet
		ac.TargetAltitudeFt = &target
		delta := target - ac.AltitudeFt
		if math.Abs(delta) <= altitudeDeadbandFt {
			ac.VerticalSpeedFpm = 0
		} else {
			// Proportional approach rate, capped at the envelope limit.
			rate := math.Min(ac.Envelope.MaxVerticalSpeedFpm, math.Abs(delta)*0.5)
			if delta < 0 {
				rate = -rate
			}
			ac.VerticalSpeedFpm = rate
		}

	case command.Speed:
		target := c.Knots
		ac.TargetSpeedKt = &target
		delta := target - ac.SpeedKt
		if math.Abs(delta) <= speedDeadbandKt {
			ac.AccelKtSec = 0
		} else {
			rate := math.Min(ac.Envelope.MaxAccelKtSec, math.Abs(delta)*0.5)
			if delta < 0 {
				rate = -rate
			}
			ac.AccelKtSec = rate
		}

	case command.Direct:
		ac.DirectFix = c.Fix

	case command.Contact:
		ac.ContactFacility = c.Facility

	case command.Approach:
		ac.ClearedApproach = c.Type + " " + c.Runway

	case command.Hold:
		ac.HoldingFix = c.Fix
	}

	return true
}
