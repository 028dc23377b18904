package sim

import (
	"math/rand"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

// Tier is the scenario difficulty tier driving weather generation.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierExtreme
)

func (t Tier) String() string {
	switch t {
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierExtreme:
		return "extreme"
	default:
		return "easy"
	}
}

// TierFromString maps a scenario definition difficulty onto a Tier,
// defaulting to easy.
func TierFromString(s string) Tier {
	switch s {
	case "medium", "intermediate":
		return TierMedium
	case "hard", "advanced":
		return TierHard
	case "extreme", "expert":
		return TierExtreme
	default:
		return TierEasy
	}
}

type WindLayer struct {
	DirectionDeg float64
	SpeedKt      float64
	GustKt       float64 // 0 when no gusts
}

type CloudLayer struct {
	Cover  string // few, scattered, broken, overcast
	BaseFt float64
}

// WeatherConditions is the weather state for one location. Owned by the
// WeatherModel; read by the integrator via SurfaceWind.
type WeatherConditions struct {
	Wind         []WindLayer
	VisibilitySm float64
	Clouds       []CloudLayer
}

// WeatherModel holds one WeatherConditions per location, created lazily as
// clear-sky defaults on first access, and drifts them with small random
// walks.
type WeatherModel struct {
	byLocation map[string]*WeatherConditions
	rng        *rand.Rand
}

func NewWeatherModel(seed int64) *WeatherModel {
	return &WeatherModel{
		byLocation: make(map[string]*WeatherConditions),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func clearSky() *WeatherConditions {
	return &WeatherConditions{
		Wind:         []WindLayer{{DirectionDeg: 270, SpeedKt: 5}},
		VisibilitySm: 10,
	}
}

// Conditions returns the weather for a location, creating clear-sky defaults
// on first access.
func (m *WeatherModel) Conditions(location string) *WeatherConditions {
	if wx, ok := m.byLocation[location]; ok {
		return wx
	}
	wx := clearSky()
	m.byLocation[location] = wx
	return wx
}

// SurfaceWind returns the lowest wind layer as seen by the integrator.
func (m *WeatherModel) SurfaceWind(location string) WindSample {
	wx := m.Conditions(location)
	if len(wx.Wind) == 0 {
		return WindSample{}
	}
	return WindSample{DirectionDeg: wx.Wind[0].DirectionDeg, SpeedKt: wx.Wind[0].SpeedKt}
}

// Update applies small independent random walks to each wind layer with a
// low per-tick probability scaled by dt. Direction moves by up to ±5
// degrees, speed by up to ±2 kt and never below zero.
func (m *WeatherModel) Update(location string, dt float64) {
	wx := m.Conditions(location)

	p := 0.05 * dt
	if p > 1 {
		p = 1
	}

	for i := range wx.Wind {
		layer := &wx.Wind[i]
		if m.rng.Float64() < p {
			layer.DirectionDeg += (m.rng.Float64()*2 - 1) * 5
			layer.DirectionDeg = geometry.RadToDeg(geometry.NormalizeHeading(geometry.DegToRad(layer.DirectionDeg)))
		}
		if m.rng.Float64() < p {
			layer.SpeedKt += (m.rng.Float64()*2 - 1) * 2
			if layer.SpeedKt < 0 {
				layer.SpeedKt = 0
			}
		}
	}
}

// GenerateRandom produces a full weather snapshot for a location,
// parameterized by difficulty tier. Used at scenario start, not per tick.
func (m *WeatherModel) GenerateRandom(location string, tier Tier) *WeatherConditions {
	var wx *WeatherConditions

	switch tier {
	case TierMedium:
		wx = &WeatherConditions{
			Wind:         []WindLayer{{DirectionDeg: m.rng.Float64() * 360, SpeedKt: 8 + m.rng.Float64()*7}},
			VisibilitySm: 5 + m.rng.Float64()*3,
			Clouds:       []CloudLayer{{Cover: "scattered", BaseFt: 4000 + m.rng.Float64()*4000}},
		}
	case TierHard:
		wind := WindLayer{DirectionDeg: m.rng.Float64() * 360, SpeedKt: 15 + m.rng.Float64()*10}
		wind.GustKt = wind.SpeedKt + 5 + m.rng.Float64()*5
		wx = &WeatherConditions{
			Wind:         []WindLayer{wind},
			VisibilitySm: 2 + m.rng.Float64()*3,
			Clouds:       []CloudLayer{{Cover: "broken", BaseFt: 1500 + m.rng.Float64()*2500}},
		}
	case TierExtreme:
		wind := WindLayer{DirectionDeg: m.rng.Float64() * 360, SpeedKt: 25 + m.rng.Float64()*15}
		wind.GustKt = wind.SpeedKt + 10 + m.rng.Float64()*10
		wx = &WeatherConditions{
			Wind:         []WindLayer{wind},
			VisibilitySm: 0.5 + m.rng.Float64()*1.5,
			Clouds:       []CloudLayer{{Cover: "overcast", BaseFt: 500 + m.rng.Float64()*1000}},
		}
	default: // easy
		wx = &WeatherConditions{
			Wind:         []WindLayer{{DirectionDeg: m.rng.Float64() * 360, SpeedKt: 3 + m.rng.Float64()*5}},
			VisibilitySm: 8 + m.rng.Float64()*2,
			Clouds:       []CloudLayer{{Cover: "few", BaseFt: 8000 + m.rng.Float64()*4000}},
		}
	}

	m.byLocation[location] = wx
	return wx
}
