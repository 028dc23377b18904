package sim

import (
	"fmt"
)

type ScenarioState int

const (
	ScenarioNotStarted ScenarioState = iota
	ScenarioRunning
	ScenarioPaused
	ScenarioCompleted
	ScenarioFailed
)

func (s ScenarioState) String() string {
	return []string{"NotStarted", "Running", "Paused", "Completed", "Failed"}[s]
}

// Terminal reports whether the scenario can never leave this state.
func (s ScenarioState) Terminal() bool {
	return s == ScenarioCompleted || s == ScenarioFailed
}

type ObjectiveType string

const (
	ObjectiveLandAircraft    ObjectiveType = "land_aircraft"
	ObjectiveNoViolations    ObjectiveType = "no_violations"
	ObjectiveHandoffAircraft ObjectiveType = "handoff_aircraft"
)

// Objective is one scoring/completion condition tracked independently of the
// scenario lifecycle state.
type Objective struct {
	ID          string
	Type        ObjectiveType
	Description string
	Target      float64
	Progress    float64
	Completed   bool
	Failed      bool // only NoViolations force-fails
	Required    bool
}

// updateProgress adds to the objective's progress and flips Completed when
// the target is met. A failed objective never re-completes.
func (o *Objective) updateProgress(amount float64) {
	if o.Completed || o.Failed {
		return
	}
	o.Progress += amount
	if o.Progress >= o.Target {
		o.Completed = true
	}
}

// Scenario carries the metadata, objectives, lifecycle state, counters and
// score accumulator for one training scenario.
type Scenario struct {
	ID         string
	Name       string
	Difficulty Tier
	Location   string

	Objectives []*Objective
	State      ScenarioState

	ElapsedSeconds  float64
	AircraftSpawned int
	AircraftLanded  int
	Violations      int
	Score           float64

	FailReason string
}

// ScenarioMachine owns the scenario registry for one engine and drives the
// active scenario's lifecycle. Exactly one scenario is Running at a time.
type ScenarioMachine struct {
	scenarios map[string]*Scenario
	active    *Scenario
	events    *EventQueue
	now       func() float64

	// Pairs already counted this scenario, so one sustained conflict does
	// not inflate the violation counter every tick.
	seenPairs map[string]bool
}

func NewScenarioMachine(events *EventQueue, now func() float64) *ScenarioMachine {
	return &ScenarioMachine{
		scenarios: make(map[string]*Scenario),
		events:    events,
		now:       now,
		seenPairs: make(map[string]bool),
	}
}

func (m *ScenarioMachine) Register(s *Scenario) {
	m.scenarios[s.ID] = s
}

func (m *ScenarioMachine) Active() *Scenario {
	return m.active
}

// Start transitions a registered scenario to Running. It is rejected while
// another scenario is Running (or Paused, which is still in flight).
func (m *ScenarioMachine) Start(id string) error {
	s, ok := m.scenarios[id]
	if !ok {
		return fmt.Errorf("unknown scenario %q", id)
	}
	if m.active != nil && !m.active.State.Terminal() {
		return fmt.Errorf("scenario %q is already active", m.active.ID)
	}
	if s.State != ScenarioNotStarted {
		return fmt.Errorf("scenario %q already ran (state %s)", id, s.State)
	}

	m.active = s
	m.seenPairs = make(map[string]bool)
	m.transition(ScenarioRunning)
	return nil
}

func (m *ScenarioMachine) Pause() {
	if m.active != nil && m.active.State == ScenarioRunning {
		m.transition(ScenarioPaused)
	}
}

func (m *ScenarioMachine) Resume() {
	if m.active != nil && m.active.State == ScenarioPaused {
		m.transition(ScenarioRunning)
	}
}

// Fail is the explicit external trigger (timeout, operator abort). The core
// never calls it on its own.
func (m *ScenarioMachine) Fail(reason string) {
	if m.active == nil || m.active.State.Terminal() {
		return
	}
	m.active.FailReason = reason
	m.transition(ScenarioFailed)
}

// Update advances elapsed time while Running and checks auto-completion.
func (m *ScenarioMachine) Update(dt float64) {
	if m.active == nil || m.active.State != ScenarioRunning {
		return
	}
	m.active.ElapsedSeconds += dt
	m.checkCompletion()
}

// RecordSpawn counts an aircraft entering the active scenario.
func (m *ScenarioMachine) RecordSpawn() {
	if m.active == nil {
		return
	}
	m.active.AircraftSpawned++
}

// RecordLanding credits a landing against LandAircraft objectives and adds
// the base landing credit scaled by the caller's effective multiplier.
func (m *ScenarioMachine) RecordLanding(callsign string, multiplier float64) {
	if m.active == nil || m.active.State != ScenarioRunning {
		return
	}
	m.active.AircraftLanded++
	m.active.Score += baseLandingCredit * multiplier

	for _, o := range m.active.Objectives {
		if o.Type == ObjectiveLandAircraft {
			m.progressObjective(o, 1)
		}
	}
	m.checkCompletion()
}

// RecordViolation force-fails NoViolations objectives the moment a
// separation violation is recorded; they cannot re-complete later in the
// same scenario. The counter de-duplicates per unordered pair.
func (m *ScenarioMachine) RecordViolation(v Violation) {
	if m.active == nil || m.active.State != ScenarioRunning {
		return
	}
	if !m.seenPairs[v.PairKey()] {
		m.seenPairs[v.PairKey()] = true
		m.active.Violations++
	}

	for _, o := range m.active.Objectives {
		if o.Type == ObjectiveNoViolations && !o.Failed {
			o.Failed = true
			o.Completed = false
		}
	}
}

// RecordHandoff credits a contact-facility clearance against handoff
// objectives.
func (m *ScenarioMachine) RecordHandoff(callsign string) {
	if m.active == nil || m.active.State != ScenarioRunning {
		return
	}
	for _, o := range m.active.Objectives {
		if o.Type == ObjectiveHandoffAircraft {
			m.progressObjective(o, 1)
		}
	}
	m.checkCompletion()
}

func (m *ScenarioMachine) progressObjective(o *Objective, amount float64) {
	wasCompleted := o.Completed
	o.updateProgress(amount)
	if o.Completed && !wasCompleted {
		m.events.Post(Event{
			Type:           ObjectiveCompletedEvent,
			SimTimeSeconds: m.now(),
			ObjectiveID:    o.ID,
		})
	}
}

// checkCompletion auto-transitions to Completed once every required
// objective is complete.
func (m *ScenarioMachine) checkCompletion() {
	if m.active == nil || m.active.State != ScenarioRunning {
		return
	}

	// NoViolations is satisfied by staying clean, not by accruing progress,
	// so it never drives completion on its own: at least one required
	// progress objective must have finished.
	progressed := 0
	for _, o := range m.active.Objectives {
		if !o.Required {
			continue
		}
		if o.Failed {
			return
		}
		if o.Type == ObjectiveNoViolations {
			continue
		}
		if !o.Completed {
			return
		}
		progressed++
	}
	if progressed == 0 {
		return
	}

	// Surviving NoViolations objectives complete with the scenario.
	for _, o := range m.active.Objectives {
		if o.Type == ObjectiveNoViolations && !o.Failed {
			o.Progress = o.Target
			m.progressObjective(o, 0)
		}
	}
	m.transition(ScenarioCompleted)
}

func (m *ScenarioMachine) transition(next ScenarioState) {
	old := m.active.State
	m.active.State = next
	m.events.Post(Event{
		Type:           ScenarioStateChangedEvent,
		SimTimeSeconds: m.now(),
		OldState:       old,
		NewState:       next,
	})
}

// baseLandingCredit is the raw landing score unit; point policy beyond this
// belongs to the external scoring collaborator.
const baseLandingCredit = 100.0
