package sim

import (
	"testing"
)

func TestTierFromString(t *testing.T) {
	cases := map[string]Tier{
		"easy":         TierEasy,
		"medium":       TierMedium,
		"intermediate": TierMedium,
		"hard":         TierHard,
		"advanced":     TierHard,
		"extreme":      TierExtreme,
		"expert":       TierExtreme,
		"":             TierEasy,
		"garbage":      TierEasy,
	}
	for in, want := range cases {
		if got := TierFromString(in); got != want {
			t.Errorf("TierFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWeatherDefaults(t *testing.T) {
	m := NewWeatherModel(1)
	wx := m.Conditions("KSEA")
	if len(wx.Wind) != 1 || wx.Wind[0].DirectionDeg != 270 || wx.Wind[0].SpeedKt != 5 {
		t.Errorf("default wind = %+v", wx.Wind)
	}
	if wx.VisibilitySm != 10 {
		t.Errorf("default visibility = %v", wx.VisibilitySm)
	}

	// The same conditions object is returned on the next access.
	wx.VisibilitySm = 3
	if m.Conditions("KSEA").VisibilitySm != 3 {
		t.Error("conditions not stable per location")
	}

	wind := m.SurfaceWind("KSEA")
	if wind.DirectionDeg != 270 || wind.SpeedKt != 5 {
		t.Errorf("surface wind = %+v", wind)
	}
}

func TestGenerateRandomTiers(t *testing.T) {
	m := NewWeatherModel(7)

	cases := []struct {
		tier             Tier
		minWind, maxWind float64
		minVis, maxVis   float64
		gusty            bool
	}{
		{TierEasy, 3, 8, 8, 10, false},
		{TierMedium, 8, 15, 5, 8, false},
		{TierHard, 15, 25, 2, 5, true},
		{TierExtreme, 25, 40, 0.5, 2, true},
	}

	for _, tc := range cases {
		t.Run(tc.tier.String(), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				wx := m.GenerateRandom("KSEA", tc.tier)
				wind := wx.Wind[0]
				if wind.SpeedKt < tc.minWind || wind.SpeedKt > tc.maxWind {
					t.Fatalf("wind %v kt outside [%v, %v]", wind.SpeedKt, tc.minWind, tc.maxWind)
				}
				if wx.VisibilitySm < tc.minVis || wx.VisibilitySm > tc.maxVis {
					t.Fatalf("visibility %v outside [%v, %v]", wx.VisibilitySm, tc.minVis, tc.maxVis)
				}
				if tc.gusty && wind.GustKt <= wind.SpeedKt {
					t.Fatalf("gust %v not above steady wind %v", wind.GustKt, wind.SpeedKt)
				}
				if !tc.gusty && wind.GustKt != 0 {
					t.Fatalf("unexpected gusts %v", wind.GustKt)
				}
				if len(wx.Clouds) != 1 {
					t.Fatalf("clouds = %+v", wx.Clouds)
				}
			}
		})
	}
}

func TestWeatherUpdateBounds(t *testing.T) {
	m := NewWeatherModel(3)
	m.GenerateRandom("KSEA", TierExtreme)

	for i := 0; i < 1000; i++ {
		m.Update("KSEA", 10)
		wind := m.Conditions("KSEA").Wind[0]
		if wind.SpeedKt < 0 {
			t.Fatalf("wind speed went negative: %v", wind.SpeedKt)
		}
		if wind.DirectionDeg < 0 || wind.DirectionDeg >= 360 {
			t.Fatalf("wind direction out of range: %v", wind.DirectionDeg)
		}
	}
}
