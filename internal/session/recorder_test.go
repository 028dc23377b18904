package session

import (
	"strings"
	"testing"

	"github.com/ivanlamont/AI-ATC-sub000/internal/sim"
)

func TestRecorderTranslatesEngineEvents(t *testing.T) {
	r := NewRecorder()
	if r.SessionID == "" {
		t.Fatal("recorder has no session ID")
	}

	r.RecordEngineEvents("human", []sim.Event{
		{Type: sim.AircraftSpawnedEvent, Callsign: "UAL101"},
		{Type: sim.AircraftSpawnedEvent, Callsign: "DAL202"},
		{Type: sim.AircraftLandedEvent, Callsign: "UAL101", SimTimeSeconds: 120},
		{Type: sim.SeparationViolationEvent, Pair: [2]string{"DAL202", "UAL101"}},
	})

	meta := r.Metadata()
	if meta["aircraft_spawned"] != 2 {
		t.Errorf("spawned = %d, want 2", meta["aircraft_spawned"])
	}
	if meta["landings"] != 1 {
		t.Errorf("landings = %d, want 1", meta["landings"])
	}
	if meta["violations"] != 1 {
		t.Errorf("violations = %d, want 1", meta["violations"])
	}

	// Re-spawning the same callsign in the other engine does not double count.
	r.RecordEngineEvents("agent", []sim.Event{
		{Type: sim.AircraftSpawnedEvent, Callsign: "UAL101"},
	})
	if r.Metadata()["aircraft_spawned"] != 2 {
		t.Error("duplicate callsign inflated the spawn counter")
	}
}

func TestRecorderTimeline(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand(10, "human", "UAL101", "turn left heading 220")
	r.Close(30)

	evs := r.Events()
	if evs[0].Type != EventSessionStart {
		t.Errorf("first event = %s, want session start", evs[0].Type)
	}
	if evs[len(evs)-1].Type != EventSessionEnd {
		t.Errorf("last event = %s, want session end", evs[len(evs)-1].Type)
	}

	var cmd *Event
	for i := range evs {
		if evs[i].Type == EventCommand {
			cmd = &evs[i]
		}
	}
	if cmd == nil {
		t.Fatal("command event missing")
	}
	if cmd.Source != "human" || cmd.Data["callsign"] != "UAL101" {
		t.Errorf("command event = %+v", cmd)
	}
}

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder()
	r.RecordEngineEvents("human", []sim.Event{
		{Type: sim.AircraftSpawnedEvent, Callsign: "UAL101"},
		{Type: sim.AircraftLandedEvent, Callsign: "UAL101"},
	})
	r.Close(60)

	s := r.Summary()
	if !strings.Contains(s, r.SessionID) {
		t.Error("summary omits the session ID")
	}
	if !strings.Contains(s, "1 spawned, 1 landed, 0 violations") {
		t.Errorf("summary = %q", s)
	}
}
