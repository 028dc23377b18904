package sim

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/ivanlamont/AI-ATC-sub000/internal/command"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

// Aircraft beyond this range have left the controlled airspace and are
// removed from the engine.
const airspaceRangeNm = 100.0

// Engine is one independent simulation world: its own aircraft, weather,
// scenario machine and time controller. Two engines fed the same scenario
// definition, commands and dt sequence produce identical state.
type Engine struct {
	Name string

	aircraft map[string]*Aircraft
	order    []string // sorted callsigns, fixes iteration order

	weather  *WeatherModel
	scenario *ScenarioMachine
	timeCtl  *TimeController
	events   *EventQueue

	location       string
	simTimeSeconds float64
}

// NewEngine builds an empty engine. Name labels log lines when two engines
// run side by side.
func NewEngine(name string, seed int64) *Engine {
	e := &Engine{
		Name:     name,
		aircraft: make(map[string]*Aircraft),
		weather:  NewWeatherModel(seed),
		timeCtl:  NewTimeController(),
		events:   &EventQueue{},
	}
	e.scenario = NewScenarioMachine(e.events, func() float64 { return e.simTimeSeconds })
	return e
}

// LoadScenario resets the engine to the definition's initial state: tiered
// weather is generated, the runway with the least crosswind is selected, the
// aircraft spawn and the scenario starts running. A definition with no
// explicit aircraft gets seeded tier-banded traffic instead.
func (e *Engine) LoadScenario(def *ScenarioDef) error {
	e.location = def.Location
	e.simTimeSeconds = 0
	e.aircraft = make(map[string]*Aircraft)
	e.order = nil

	tier := TierFromString(def.Difficulty)
	e.weather.GenerateRandom(def.Location, tier)

	wind := e.weather.SurfaceWind(def.Location)
	rwy := SelectRunway(def.Runways, wind)
	log.WithFields(log.Fields{
		"engine":   e.Name,
		"scenario": def.ID,
		"runway":   rwy.ID,
		"wind":     fmt.Sprintf("%.0f@%.0fkt", wind.DirectionDeg, wind.SpeedKt),
	}).Info("scenario loaded")

	e.scenario.Register(buildScenario(def))
	if err := e.scenario.Start(def.ID); err != nil {
		return err
	}

	spawns := def.Aircraft
	if len(spawns) == 0 {
		spawns = GenerateTraffic(tier, def.Seed)
		log.WithFields(log.Fields{
			"engine":   e.Name,
			"scenario": def.ID,
			"count":    len(spawns),
			"tier":     tier.String(),
		}).Info("generated arrival traffic")
	}
	for _, spawn := range spawns {
		ac := NewAircraft(spawn.Callsign, spawn.Category,
			geometry.Point{X: spawn.XNm, Y: spawn.YNm},
			geometry.DegToRad(spawn.HeadingDeg), spawn.SpeedKt, spawn.AltitudeFt)
		ac.IsArrival = spawn.Arrival
		if spawn.Arrival {
			ac.Destination = Destination{
				Runway:       rwy.ID,
				RunwayHdgRad: geometry.DegToRad(rwy.HeadingDeg),
			}
		}
		e.addAircraft(ac)
	}
	return nil
}

func (e *Engine) addAircraft(ac *Aircraft) {
	e.aircraft[ac.Callsign] = ac
	e.order = append(e.order, ac.Callsign)
	sort.Strings(e.order)

	e.scenario.RecordSpawn()
	e.events.Post(Event{
		Type:           AircraftSpawnedEvent,
		SimTimeSeconds: e.simTimeSeconds,
		Callsign:       ac.Callsign,
	})
}

func (e *Engine) removeAircraft(callsign string) {
	delete(e.aircraft, callsign)
	for i, cs := range e.order {
		if cs == callsign {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// ApplyCommand validates and commits one clearance to the named aircraft.
// The reason is empty on success and states the rejection otherwise.
func (e *Engine) ApplyCommand(callsign string, cmd command.Command) (bool, string) {
	ac, ok := e.aircraft[callsign]
	if !ok {
		return false, fmt.Sprintf("no aircraft %s", callsign)
	}
	if ac.Landed {
		return false, fmt.Sprintf("%s has landed", callsign)
	}

	if ok, reason := ValidateClearance(cmd, ac); !ok {
		return false, reason
	}
	ApplyClearance(cmd, ac)

	if _, isContact := cmd.(command.Contact); isContact {
		e.scenario.RecordHandoff(callsign)
	}
	return true, ""
}

// Tick advances the whole world by dt real seconds. The time controller
// scales dt once; every subsystem then sees the same simulated interval.
func (e *Engine) Tick(dt float64) {
	simDt := e.timeCtl.ApplyScale(dt)
	if simDt <= 0 {
		return
	}

	// 1. Drift the weather, then sample the surface wind once for this tick.
	e.weather.Update(e.location, simDt)
	wind := e.weather.SurfaceWind(e.location)

	// 2. Integrate every aircraft in callsign order.
	var landed, departed []string
	for _, cs := range e.order {
		ac := e.aircraft[cs]
		if Advance(ac, simDt, wind) {
			landed = append(landed, cs)
			continue
		}
		if ac.DistanceTo(geometry.Point{}) > airspaceRangeNm {
			departed = append(departed, cs)
		}
	}

	for _, cs := range landed {
		e.events.Post(Event{
			Type:           AircraftLandedEvent,
			SimTimeSeconds: e.simTimeSeconds,
			Callsign:       cs,
		})
		e.scenario.RecordLanding(cs, e.timeCtl.ScoreMultiplier(1.0))
		e.removeAircraft(cs)
	}
	for _, cs := range departed {
		log.WithFields(log.Fields{"engine": e.Name, "callsign": cs}).
			Info("aircraft left controlled airspace")
		e.removeAircraft(cs)
	}

	// 3. Separation scan over the survivors.
	for _, v := range CheckSeparation(e.LiveAircraft()) {
		e.events.Post(Event{
			Type:           SeparationViolationEvent,
			SimTimeSeconds: e.simTimeSeconds,
			Pair:           [2]string{v.First, v.Second},
			LateralNm:      v.LateralNm,
			VerticalFt:     v.VerticalFt,
		})
		e.scenario.RecordViolation(v)
	}

	// 4. Scenario clock and completion check.
	e.scenario.Update(simDt)
	e.simTimeSeconds += simDt
}

// LiveAircraft returns the current aircraft in callsign order.
func (e *Engine) LiveAircraft() []*Aircraft {
	out := make([]*Aircraft, 0, len(e.order))
	for _, cs := range e.order {
		out = append(out, e.aircraft[cs])
	}
	return out
}

// Aircraft looks up one aircraft by callsign.
func (e *Engine) Aircraft(callsign string) (*Aircraft, bool) {
	ac, ok := e.aircraft[callsign]
	return ac, ok
}

func (e *Engine) SimTimeSeconds() float64 { return e.simTimeSeconds }

func (e *Engine) TimeController() *TimeController { return e.timeCtl }

func (e *Engine) Weather() *WeatherModel { return e.weather }

func (e *Engine) ScenarioMachine() *ScenarioMachine { return e.scenario }

// Score is the active scenario's accumulated score, 0 when none is active.
func (e *Engine) Score() float64 {
	if s := e.scenario.Active(); s != nil {
		return s.Score
	}
	return 0
}

// Events drains the engine's outbound event queue.
func (e *Engine) Events() []Event {
	return e.events.Drain()
}
