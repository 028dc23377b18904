package sim

import (
	"math"
	"reflect"
	"testing"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

func TestGenerateTrafficBands(t *testing.T) {
	for tier, band := range trafficBands {
		t.Run(tier.String(), func(t *testing.T) {
			spawns := GenerateTraffic(tier, 42)
			if len(spawns) != band.count {
				t.Fatalf("got %d aircraft, want %d", len(spawns), band.count)
			}

			seen := make(map[string]bool)
			for _, sp := range spawns {
				if seen[sp.Callsign] {
					t.Errorf("duplicate callsign %s", sp.Callsign)
				}
				seen[sp.Callsign] = true

				if !sp.Arrival {
					t.Errorf("%s: generated traffic must be arrivals", sp.Callsign)
				}
				if sp.Category != CategoryJet {
					t.Errorf("%s: category = %s, want jet", sp.Callsign, sp.Category)
				}

				dist := math.Hypot(sp.XNm, sp.YNm)
				if dist < band.minDistNm || dist > band.maxDistNm {
					t.Errorf("%s: entry distance %.1f nm outside [%v, %v]",
						sp.Callsign, dist, band.minDistNm, band.maxDistNm)
				}
				if sp.AltitudeFt < band.minAltFt || sp.AltitudeFt > band.maxAltFt {
					t.Errorf("%s: altitude %.0f ft outside [%v, %v]",
						sp.Callsign, sp.AltitudeFt, band.minAltFt, band.maxAltFt)
				}
				if sp.SpeedKt < 200 || sp.SpeedKt > 280 {
					t.Errorf("%s: speed %.0f kt outside [200, 280]", sp.Callsign, sp.SpeedKt)
				}

				// Entry heading stays within the tier's intercept angle of
				// the direct inbound course.
				inbound := geometry.CourseTo(geometry.Point{X: sp.XNm, Y: sp.YNm}, geometry.Point{})
				delta := geometry.TurnDelta(inbound, geometry.DegToRad(sp.HeadingDeg))
				if math.Abs(delta) > geometry.DegToRad(band.interceptDeg)+1e-9 {
					t.Errorf("%s: entry %.0f deg off the inbound course, limit %v",
						sp.Callsign, math.Abs(geometry.RadToDeg(delta)), band.interceptDeg)
				}
			}
		})
	}
}

func TestGenerateTrafficDeterministic(t *testing.T) {
	a := GenerateTraffic(TierHard, 7)
	b := GenerateTraffic(TierHard, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("same tier and seed must generate identical traffic")
	}

	c := GenerateTraffic(TierHard, 8)
	if a[0].XNm == c[0].XNm && a[0].YNm == c[0].YNm {
		t.Error("different seeds generated identical entry points")
	}
}
