package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

// trafficBand is the spawn geometry for one difficulty tier: how many
// arrivals, the entry distance and altitude bands, and how far off the direct
// inbound course an aircraft may enter.
type trafficBand struct {
	count        int
	minDistNm    float64
	maxDistNm    float64
	minAltFt     float64
	maxAltFt     float64
	interceptDeg float64
}

// Harder tiers put more aircraft farther out, across a wider altitude block,
// entering at wider angles to the field.
var trafficBands = map[Tier]trafficBand{
	TierEasy:    {count: 2, minDistNm: 10, maxDistNm: 15, minAltFt: 2000, maxAltFt: 4000, interceptDeg: 30},
	TierMedium:  {count: 3, minDistNm: 12, maxDistNm: 20, minAltFt: 3000, maxAltFt: 6000, interceptDeg: 45},
	TierHard:    {count: 5, minDistNm: 15, maxDistNm: 30, minAltFt: 1000, maxAltFt: 12000, interceptDeg: 60},
	TierExtreme: {count: 7, minDistNm: 20, maxDistNm: 40, minAltFt: 500, maxAltFt: 15000, interceptDeg: 90},
}

// trafficPrefixes label generated arrivals; flight numbers start at 1000.
var trafficPrefixes = []string{"UAL", "DAL", "AAL", "SWA", "ASA", "JBU", "SKW", "FDX"}

// GenerateTraffic builds the initial arrival set for a scenario definition
// that carries no explicit aircraft. Spawn geometry is banded by difficulty
// tier and drawn from the given seed, so two engines sharing a seed spawn
// identical traffic. The generated fleet is all jets pointed inbound.
func GenerateTraffic(tier Tier, seed int64) []SpawnDef {
	band := trafficBands[tier]
	rng := rand.New(rand.NewSource(seed))

	spawns := make([]SpawnDef, 0, band.count)
	for i := 0; i < band.count; i++ {
		// Bearing from the field out to the entry point.
		bearing := rng.Float64() * 2 * math.Pi
		dist := band.minDistNm + rng.Float64()*(band.maxDistNm-band.minDistNm)
		x, y := geometry.HeadingVector(bearing)
		pos := geometry.Point{X: x * dist, Y: y * dist}

		inbound := geometry.CourseTo(pos, geometry.Point{})
		offset := (rng.Float64()*2 - 1) * geometry.DegToRad(band.interceptDeg)

		spawns = append(spawns, SpawnDef{
			Callsign:   fmt.Sprintf("%s%d", trafficPrefixes[i%len(trafficPrefixes)], 1000+i),
			Category:   CategoryJet,
			XNm:        pos.X,
			YNm:        pos.Y,
			HeadingDeg: geometry.RadToDeg(geometry.NormalizeHeading(inbound + offset)),
			SpeedKt:    200 + rng.Float64()*80,
			AltitudeFt: band.minAltFt + rng.Float64()*(band.maxAltFt-band.minAltFt),
			Arrival:    true,
		})
	}
	return spawns
}
