// Package session records what happened during a run: a timestamped event
// log plus summary counters, suitable for after-action review.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivanlamont/AI-ATC-sub000/internal/sim"
)

// EventType classifies one recorded event.
type EventType string

const (
	EventSessionStart  EventType = "session_start"
	EventSessionEnd    EventType = "session_end"
	EventCommand       EventType = "command"
	EventSpawn         EventType = "aircraft_spawned"
	EventLanding       EventType = "aircraft_landed"
	EventViolation     EventType = "separation_violation"
	EventObjective     EventType = "objective_completed"
	EventScenarioState EventType = "scenario_state_changed"
)

// Event is one recorded occurrence. Source names the engine it came from so
// a dual-engine run interleaves both logs in one timeline.
type Event struct {
	TimestampSeconds float64
	Type             EventType
	Source           string
	Description      string
	Data             map[string]string
}

// Recorder accumulates the event log and headline counters for one session.
type Recorder struct {
	SessionID string
	StartTime time.Time

	events []Event

	spawned    map[string]bool
	landings   int
	violations int
}

func NewRecorder() *Recorder {
	r := &Recorder{
		SessionID: uuid.NewString(),
		StartTime: time.Now(),
		spawned:   make(map[string]bool),
	}
	r.Record(Event{Type: EventSessionStart, Description: "session started"})
	return r
}

func (r *Recorder) Record(ev Event) {
	r.events = append(r.events, ev)
}

// RecordCommand logs one issued clearance.
func (r *Recorder) RecordCommand(simTime float64, source, callsign, text string) {
	r.Record(Event{
		TimestampSeconds: simTime,
		Type:             EventCommand,
		Source:           source,
		Description:      fmt.Sprintf("%s: %s", callsign, text),
		Data:             map[string]string{"callsign": callsign, "text": text},
	})
}

// RecordEngineEvents translates one engine's drained tick events into the
// session log and updates the counters.
func (r *Recorder) RecordEngineEvents(source string, events []sim.Event) {
	for _, ev := range events {
		rec := Event{
			TimestampSeconds: ev.SimTimeSeconds,
			Source:           source,
			Description:      ev.String(),
		}
		switch ev.Type {
		case sim.AircraftSpawnedEvent:
			rec.Type = EventSpawn
			r.spawned[ev.Callsign] = true
		case sim.AircraftLandedEvent:
			rec.Type = EventLanding
			r.landings++
		case sim.SeparationViolationEvent:
			rec.Type = EventViolation
			r.violations++
		case sim.ObjectiveCompletedEvent:
			rec.Type = EventObjective
		case sim.ScenarioStateChangedEvent:
			rec.Type = EventScenarioState
		}
		r.Record(rec)
	}
}

// Close stamps the session-end marker.
func (r *Recorder) Close(simTime float64) {
	r.Record(Event{
		TimestampSeconds: simTime,
		Type:             EventSessionEnd,
		Description:      "session ended",
	})
}

func (r *Recorder) Events() []Event {
	return r.events
}

// Metadata returns the headline counters.
func (r *Recorder) Metadata() map[string]int {
	return map[string]int{
		"aircraft_spawned": len(r.spawned),
		"landings":         r.landings,
		"violations":       r.violations,
		"events":           len(r.events),
	}
}

// Summary renders a short human-readable after-action report.
func (r *Recorder) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s\n", r.SessionID)
	fmt.Fprintf(&b, "started %s, wall duration %s\n",
		r.StartTime.Format(time.RFC3339), time.Since(r.StartTime).Round(time.Second))
	fmt.Fprintf(&b, "aircraft: %d spawned, %d landed, %d violations\n",
		len(r.spawned), r.landings, r.violations)
	fmt.Fprintf(&b, "%d events recorded", len(r.events))
	return b.String()
}
