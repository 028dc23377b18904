package sim

import (
	"fmt"
)

type EventType int

const (
	AircraftSpawnedEvent EventType = iota
	AircraftLandedEvent
	SeparationViolationEvent
	ObjectiveCompletedEvent
	ScenarioStateChangedEvent
)

func (t EventType) String() string {
	return []string{"AircraftSpawned", "AircraftLanded", "SeparationViolation",
		"ObjectiveCompleted", "ScenarioStateChanged"}[t]
}

// Event is one immutable record on an engine's outbound queue. The driver
// drains the queue after each tick, so every observer sees an event before
// the next tick runs.
type Event struct {
	Type           EventType
	SimTimeSeconds float64

	Callsign string // spawn / landing

	Pair       [2]string // separation violation
	LateralNm  float64
	VerticalFt float64

	ObjectiveID string // objective completion

	OldState ScenarioState // state change
	NewState ScenarioState
}

func (e Event) String() string {
	switch e.Type {
	case SeparationViolationEvent:
		return fmt.Sprintf("%s: %s/%s lateral %.1fnm vertical %.0fft",
			e.Type, e.Pair[0], e.Pair[1], e.LateralNm, e.VerticalFt)
	case ObjectiveCompletedEvent:
		return fmt.Sprintf("%s: %s", e.Type, e.ObjectiveID)
	case ScenarioStateChangedEvent:
		return fmt.Sprintf("%s: %s -> %s", e.Type, e.OldState, e.NewState)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Callsign)
	}
}

// EventQueue is a per-engine append-only queue of outbound events.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Post(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns all queued events and resets the queue.
func (q *EventQueue) Drain() []Event {
	evs := q.events
	q.events = nil
	return evs
}

func (q *EventQueue) Len() int {
	return len(q.events)
}
