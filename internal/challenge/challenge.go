// Package challenge runs the head-to-head mode: the same scenario loaded
// into two engines, one flown by the human controller and one by the
// heuristic agent, stepped in lockstep and scored against each other.
package challenge

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"
	log "github.com/sirupsen/logrus"

	"github.com/ivanlamont/AI-ATC-sub000/internal/agent"
	"github.com/ivanlamont/AI-ATC-sub000/internal/command"
	"github.com/ivanlamont/AI-ATC-sub000/internal/session"
	"github.com/ivanlamont/AI-ATC-sub000/internal/sim"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

const (
	// The agent re-plans on a fixed simulated cadence rather than every tick.
	agentCadenceSeconds = 2.0

	// Fallback session length when the scenario sets no duration.
	defaultMaxSimSeconds = 3600.0
)

// CommandRecord is one clearance issued during the session, kept per side
// for the post-session comparison.
type CommandRecord struct {
	SimTimeSeconds float64
	Callsign       string
	Command        command.Command
	Accepted       bool
	Reason         string
}

// pendingCommand is a human clearance queued between ticks.
type pendingCommand struct {
	Callsign string
	Command  command.Command
}

// Session is one head-to-head run. Both engines start from deep copies of
// the same definition, so neither side's state can leak into the other.
type Session struct {
	ID string

	Human *sim.Engine
	Agent *sim.Engine

	recorder *session.Recorder

	maxSimSeconds float64
	nextAgentPlan float64
	pending       []pendingCommand
	humanLog      []CommandRecord
	agentLog      []CommandRecord
	lastDecisions map[string]agent.Decision
	done          bool
}

// NewSession loads the definition into two fresh engines seeded identically.
func NewSession(def *sim.ScenarioDef) (*Session, error) {
	s := &Session{
		ID:            uuid.NewString(),
		Human:         sim.NewEngine("human", def.Seed),
		Agent:         sim.NewEngine("agent", def.Seed),
		recorder:      session.NewRecorder(),
		maxSimSeconds: def.DurationSeconds,
		lastDecisions: make(map[string]agent.Decision),
	}
	if s.maxSimSeconds <= 0 {
		s.maxSimSeconds = defaultMaxSimSeconds
	}

	humanDef := deepcopy.Copy(def).(*sim.ScenarioDef)
	agentDef := deepcopy.Copy(def).(*sim.ScenarioDef)
	if err := s.Human.LoadScenario(humanDef); err != nil {
		return nil, fmt.Errorf("load human engine: %w", err)
	}
	if err := s.Agent.LoadScenario(agentDef); err != nil {
		return nil, fmt.Errorf("load agent engine: %w", err)
	}
	return s, nil
}

func (s *Session) Recorder() *session.Recorder { return s.recorder }

func (s *Session) Done() bool { return s.done }

// SetTimeScale applies one scale to both engines so they stay in lockstep.
func (s *Session) SetTimeScale(scale float64) {
	s.Human.TimeController().SetScale(scale)
	s.Agent.TimeController().SetScale(scale)
}

// Pause pauses both engines together.
func (s *Session) Pause() {
	s.Human.TimeController().Pause()
	s.Agent.TimeController().Pause()
}

func (s *Session) Resume() {
	s.Human.TimeController().Resume()
	s.Agent.TimeController().Resume()
}

// QueueHumanCommand stages a clearance for the human engine; it is applied
// at the start of the next tick so commands and kinematics never interleave.
func (s *Session) QueueHumanCommand(callsign string, cmd command.Command) {
	s.pending = append(s.pending, pendingCommand{Callsign: callsign, Command: cmd})
}

// Tick advances both engines by the same real dt. It returns true once the
// session has finished (scenario terminal on both sides, or time expired).
func (s *Session) Tick(dtReal float64) bool {
	if s.done {
		return true
	}

	// 1. Apply queued human clearances.
	for _, pc := range s.pending {
		ok, reason := s.Human.ApplyCommand(pc.Callsign, pc.Command)
		s.humanLog = append(s.humanLog, CommandRecord{
			SimTimeSeconds: s.Human.SimTimeSeconds(),
			Callsign:       pc.Callsign,
			Command:        pc.Command,
			Accepted:       ok,
			Reason:         reason,
		})
		s.recorder.RecordCommand(s.Human.SimTimeSeconds(), "human",
			pc.Callsign, describe(pc.Command, ok, reason))
	}
	s.pending = nil

	// 2. Let the agent re-plan on its cadence.
	if s.Agent.SimTimeSeconds() >= s.nextAgentPlan {
		s.runAgent()
		s.nextAgentPlan = s.Agent.SimTimeSeconds() + agentCadenceSeconds
	}

	// 3. Step both worlds with the identical interval.
	s.Human.Tick(dtReal)
	s.Agent.Tick(dtReal)

	s.recorder.RecordEngineEvents("human", s.Human.Events())
	s.recorder.RecordEngineEvents("agent", s.Agent.Events())

	// 4. Termination.
	if s.expired() || s.bothTerminal() || s.bothEmpty() {
		s.done = true
		s.recorder.Close(s.Human.SimTimeSeconds())
	}
	return s.done
}

func (s *Session) expired() bool {
	return s.Human.SimTimeSeconds() >= s.maxSimSeconds
}

func (s *Session) bothTerminal() bool {
	h, a := s.Human.ScenarioMachine().Active(), s.Agent.ScenarioMachine().Active()
	return h != nil && a != nil && h.State.Terminal() && a.State.Terminal()
}

// bothEmpty covers scenarios whose traffic all landed or left the airspace
// without satisfying the objectives.
func (s *Session) bothEmpty() bool {
	return len(s.Human.LiveAircraft()) == 0 && len(s.Agent.LiveAircraft()) == 0
}

// runAgent observes every live aircraft in the agent engine and converts the
// resulting decisions into ordinary clearances.
func (s *Session) runAgent() {
	live := s.Agent.LiveAircraft()
	for _, ac := range live {
		obs := observe(ac, live)
		dec := agent.Decide(obs)
		s.lastDecisions[ac.Callsign] = dec

		for _, cmd := range decisionCommands(dec, ac) {
			ok, reason := s.Agent.ApplyCommand(ac.Callsign, cmd)
			s.agentLog = append(s.agentLog, CommandRecord{
				SimTimeSeconds: s.Agent.SimTimeSeconds(),
				Callsign:       ac.Callsign,
				Command:        cmd,
				Accepted:       ok,
				Reason:         reason,
			})
			if !ok {
				log.WithFields(log.Fields{
					"callsign": ac.Callsign,
					"reason":   reason,
				}).Warn("agent clearance rejected")
			}
		}
	}
}

// observe builds the agent's view of one aircraft. The airport sits at the
// planar origin by convention.
func observe(ac *sim.Aircraft, all []*sim.Aircraft) agent.Observation {
	airport := geometry.Point{}

	closest := math.Inf(1)
	inApproach := 0
	for _, other := range all {
		if other.Callsign == ac.Callsign {
			continue
		}
		if d := geometry.Dist(ac.Position, other.Position); d < closest {
			closest = d
		}
		if other.DistanceTo(airport) <= 30 {
			inApproach++
		}
	}

	return agent.Observation{
		Callsign:                      ac.Callsign,
		DistanceToAirportNm:           ac.DistanceTo(airport),
		BearingToAirportDeg:           geometry.RadToDeg(geometry.CourseTo(ac.Position, airport)),
		HeadingDeg:                    geometry.RadToDeg(ac.HeadingRad),
		AltitudeFt:                    ac.AltitudeFt,
		SpeedKt:                       ac.SpeedKt,
		RunwayHeadingDeg:              geometry.RadToDeg(ac.Destination.RunwayHdgRad),
		SeparationFromOtherAircraftNm: closest,
		NumAircraftInApproach:         inApproach,
	}
}

// decisionCommands turns a decision into clearances, clamped so they always
// validate against the aircraft's envelope.
func decisionCommands(dec agent.Decision, ac *sim.Aircraft) []command.Command {
	hdg := math.Mod(dec.HeadingDeg, 360)
	if hdg < 0 {
		hdg += 360
	}

	alt := dec.AltitudeFt
	if alt < 0 {
		alt = 0
	} else if alt > sim.AbsoluteCeilingFt {
		alt = sim.AbsoluteCeilingFt
	}

	spd := dec.SpeedKt
	if spd < ac.Envelope.MinSpeedKt {
		spd = ac.Envelope.MinSpeedKt
	} else if spd > ac.Envelope.MaxSpeedKt {
		spd = ac.Envelope.MaxSpeedKt
	}

	return []command.Command{
		command.Heading{Degrees: hdg, Direction: command.TurnEither},
		command.Altitude{Feet: alt},
		command.Speed{Knots: spd},
	}
}

func describe(cmd command.Command, ok bool, reason string) string {
	if ok {
		return cmd.Kind()
	}
	return fmt.Sprintf("%s (rejected: %s)", cmd.Kind(), reason)
}

// Comparison is the end-of-session scoreboard.
type Comparison struct {
	HumanScore      float64
	AgentScore      float64
	HumanLandings   int
	AgentLandings   int
	HumanViolations int
	AgentViolations int
	HumanCommands   int
	AgentCommands   int
	Winner          string // "human", "agent" or "draw"
}

// Winner decides by score alone; equal scores are a draw.
func (s *Session) Winner() string {
	return s.Comparison().Winner
}

func (s *Session) Comparison() Comparison {
	c := Comparison{
		HumanScore:    s.Human.Score(),
		AgentScore:    s.Agent.Score(),
		HumanCommands: len(s.humanLog),
		AgentCommands: len(s.agentLog),
	}
	if h := s.Human.ScenarioMachine().Active(); h != nil {
		c.HumanLandings = h.AircraftLanded
		c.HumanViolations = h.Violations
	}
	if a := s.Agent.ScenarioMachine().Active(); a != nil {
		c.AgentLandings = a.AircraftLanded
		c.AgentViolations = a.Violations
	}

	c.Winner = winnerOf(c)
	return c
}

func winnerOf(c Comparison) string {
	switch {
	case c.HumanScore > c.AgentScore:
		return "human"
	case c.AgentScore > c.HumanScore:
		return "agent"
	default:
		return "draw"
	}
}

// LastDecision returns the agent's most recent decision for a callsign.
func (s *Session) LastDecision(callsign string) (agent.Decision, bool) {
	d, ok := s.lastDecisions[callsign]
	return d, ok
}

// HumanCommandLog returns the human side's issued clearances.
func (s *Session) HumanCommandLog() []CommandRecord { return s.humanLog }

// AgentCommandLog returns the agent side's issued clearances.
func (s *Session) AgentCommandLog() []CommandRecord { return s.agentLog }
