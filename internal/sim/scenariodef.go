package sim

import (
	"fmt"
	"math"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/util"
)

// RunwayDef is one runway available at the scenario airport.
type RunwayDef struct {
	ID         string  `yaml:"id"`
	HeadingDeg float64 `yaml:"heading_deg"`
}

// SpawnDef is the initial state of one aircraft in a scenario definition.
// Positions are planar nautical miles relative to the airport.
type SpawnDef struct {
	Callsign   string  `yaml:"callsign"`
	Category   string  `yaml:"category"`
	XNm        float64 `yaml:"x_nm"`
	YNm        float64 `yaml:"y_nm"`
	HeadingDeg float64 `yaml:"heading_deg"`
	SpeedKt    float64 `yaml:"speed_kt"`
	AltitudeFt float64 `yaml:"altitude_ft"`
	Arrival    bool    `yaml:"arrival"`
}

// ObjectiveDef is one objective in a scenario definition.
type ObjectiveDef struct {
	ID          string  `yaml:"id"`
	Type        string  `yaml:"type"`
	Description string  `yaml:"description"`
	Target      float64 `yaml:"target"`
	Required    bool    `yaml:"required"`
}

// ScenarioDef is a full scenario as loaded from YAML. It is pure data, so a
// deep copy of it seeds two independent engines identically.
type ScenarioDef struct {
	ID              string         `yaml:"id"`
	Name            string         `yaml:"name"`
	Location        string         `yaml:"location"`
	Difficulty      string         `yaml:"difficulty"`
	DurationSeconds float64        `yaml:"duration_seconds"`
	Seed            int64          `yaml:"seed"`
	Runways         []RunwayDef    `yaml:"runways"`
	Aircraft        []SpawnDef     `yaml:"aircraft"`
	Objectives      []ObjectiveDef `yaml:"objectives"`
}

// LoadScenarioDef reads and validates one scenario definition file.
func LoadScenarioDef(path string) (*ScenarioDef, error) {
	def, err := util.LoadConfig[ScenarioDef](path)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return def, nil
}

func (d *ScenarioDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("missing id")
	}
	if d.Location == "" {
		return fmt.Errorf("missing location")
	}
	if len(d.Runways) == 0 {
		return fmt.Errorf("no runways defined")
	}
	seen := make(map[string]bool)
	for _, ac := range d.Aircraft {
		if ac.Callsign == "" {
			return fmt.Errorf("aircraft with empty callsign")
		}
		if seen[ac.Callsign] {
			return fmt.Errorf("duplicate callsign %s", ac.Callsign)
		}
		seen[ac.Callsign] = true
	}
	for _, o := range d.Objectives {
		switch ObjectiveType(o.Type) {
		case ObjectiveLandAircraft, ObjectiveNoViolations, ObjectiveHandoffAircraft:
		default:
			return fmt.Errorf("objective %s: unknown type %q", o.ID, o.Type)
		}
		if o.Target <= 0 {
			return fmt.Errorf("objective %s: target must be positive", o.ID)
		}
	}
	return nil
}

// SelectRunway picks the runway with the smallest crosswind component for
// the given surface wind. Reciprocal runways carry the same crosswind, so
// ties break on the larger headwind; remaining ties keep the earlier runway.
func SelectRunway(runways []RunwayDef, wind WindSample) RunwayDef {
	best := runways[0]
	bestCross := math.Inf(1)
	bestHead := math.Inf(-1)

	windDirRad := geometry.DegToRad(wind.DirectionDeg)
	for _, rwy := range runways {
		rel := windDirRad - geometry.DegToRad(rwy.HeadingDeg)
		cross := math.Abs(wind.SpeedKt * math.Sin(rel))
		head := wind.SpeedKt * math.Cos(rel)

		const tie = 1e-9
		if cross < bestCross-tie || (math.Abs(cross-bestCross) <= tie && head > bestHead+tie) {
			best = rwy
			bestCross = cross
			bestHead = head
		}
	}
	return best
}

// buildScenario turns the definition's metadata and objectives into the
// runtime Scenario tracked by the state machine.
func buildScenario(def *ScenarioDef) *Scenario {
	s := &Scenario{
		ID:         def.ID,
		Name:       def.Name,
		Difficulty: TierFromString(def.Difficulty),
		Location:   def.Location,
		State:      ScenarioNotStarted,
	}
	for _, od := range def.Objectives {
		s.Objectives = append(s.Objectives, &Objective{
			ID:          od.ID,
			Type:        ObjectiveType(od.Type),
			Description: od.Description,
			Target:      od.Target,
			Required:    od.Required,
		})
	}
	return s
}
