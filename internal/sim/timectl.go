package sim

import (
	"math"
)

const (
	DefaultMinTimeScale = 0.1
	DefaultMaxTimeScale = 5.0
)

// TimeController gates how much simulated time each tick advances and
// derives the score multiplier from the chosen time scale.
type TimeController struct {
	scale    float64
	minScale float64
	maxScale float64
	paused   bool
}

func NewTimeController() *TimeController {
	return &TimeController{
		scale:    1.0,
		minScale: DefaultMinTimeScale,
		maxScale: DefaultMaxTimeScale,
	}
}

// SetScale clamps the requested scale into [minScale, maxScale].
func (t *TimeController) SetScale(scale float64) {
	if scale < t.minScale {
		scale = t.minScale
	} else if scale > t.maxScale {
		scale = t.maxScale
	}
	t.scale = scale
}

func (t *TimeController) Scale() float64 {
	return t.scale
}

func (t *TimeController) Pause()  { t.paused = true }
func (t *TimeController) Resume() { t.paused = false }

func (t *TimeController) Paused() bool {
	return t.paused
}

// EffectiveScale is 0 while paused, which makes ApplyScale a no-op for
// kinematics and scenario progress without blocking command intake.
func (t *TimeController) EffectiveScale() float64 {
	if t.paused {
		return 0
	}
	return t.scale
}

// ApplyScale converts a real dt into simulated seconds.
func (t *TimeController) ApplyScale(dt float64) float64 {
	return dt * t.EffectiveScale()
}

// ScoreMultiplier rewards running faster than real time linearly:
// base × (1 + (scale − 1) × 0.5).
func (t *TimeController) ScoreMultiplier(base float64) float64 {
	return base * (1 + (t.scale-1)*0.5)
}

// ScoreMultiplierLog is the diminishing-returns variant for scenarios that
// discourage extreme time-acceleration farming:
// base × (1 + log2(scale + 0.5) × 0.5).
func (t *TimeController) ScoreMultiplierLog(base float64) float64 {
	return base * (1 + math.Log2(t.scale+0.5)*0.5)
}
