// Package server exposes a running challenge session over HTTP and
// WebSocket: a JSON status endpoint, a state feed pushed to every connected
// client, and a command intake that parses controller phraseology.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/ivanlamont/AI-ATC-sub000/internal/challenge"
	"github.com/ivanlamont/AI-ATC-sub000/internal/command"
	"github.com/ivanlamont/AI-ATC-sub000/internal/sim"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/util"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// AircraftState is one aircraft in the outbound state feed.
type AircraftState struct {
	Callsign   string  `json:"callsign"`
	XNm        float64 `json:"x_nm"`
	YNm        float64 `json:"y_nm"`
	HeadingDeg float64 `json:"heading_deg"`
	AltitudeFt float64 `json:"altitude_ft"`
	SpeedKt    float64 `json:"speed_kt"`
	Landed     bool    `json:"landed"`
}

// Snapshot is one state-feed frame covering both engines.
type Snapshot struct {
	SimTimeSeconds float64         `json:"sim_time_seconds"`
	HumanAircraft  []AircraftState `json:"human_aircraft"`
	AgentAircraft  []AircraftState `json:"agent_aircraft"`
	HumanScore     float64         `json:"human_score"`
	AgentScore     float64         `json:"agent_score"`
}

// commandMsg is the inbound WebSocket command frame.
type commandMsg struct {
	Callsign string `json:"callsign"`
	Text     string `json:"text"`
}

// commandReply acknowledges a command frame. Suggestions are populated when
// nothing in the text parsed.
type commandReply struct {
	Accepted    bool     `json:"accepted"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Server serves one session. The mutex is shared with the tick loop so
// handlers never read engine state mid-tick.
type Server struct {
	session *challenge.Session
	mu      *sync.Mutex

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

func New(session *challenge.Session, mu *sync.Mutex) *Server {
	return &Server{
		session: session,
		mu:      mu,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/session", s.handleSession)
	r.Get("/ws", s.handleWS)
	return r
}

// Start runs the HTTP + WebSocket server on addr (e.g. ":8080") and returns
// the *http.Server so the caller can shut it down when desired.
func (s *Server) Start(addr string) *http.Server {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server stopped")
		}
	}()
	return srv
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]interface{}{
		"id":               s.session.ID,
		"sim_time_seconds": s.session.Human.SimTimeSeconds(),
		"human_score":      s.session.Human.Score(),
		"agent_score":      s.session.Agent.Score(),
		"done":             s.session.Done(),
	}
	if sc := s.session.Human.ScenarioMachine().Active(); sc != nil {
		resp["scenario"] = sc.ID
		resp["scenario_state"] = sc.State.String()
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	for {
		var msg commandMsg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("websocket read ended")
			}
			return
		}
		s.handleCommand(conn, msg)
	}
}

func (s *Server) handleCommand(conn *websocket.Conn, msg commandMsg) {
	cmds := command.ParseMultiple(msg.Text)
	if len(cmds) == 0 {
		util.SendJSON(conn, commandReply{
			Accepted:    false,
			Error:       "unrecognized command",
			Suggestions: command.Suggestions(msg.Text),
		})
		return
	}

	s.mu.Lock()
	for _, cmd := range cmds {
		s.session.QueueHumanCommand(msg.Callsign, cmd)
	}
	s.mu.Unlock()

	util.SendJSON(conn, commandReply{Accepted: true})
}

// Broadcast pushes one state frame to every connected client. The caller
// holds the session mutex while building the snapshot, not here.
func (s *Server) Broadcast(snap Snapshot) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for conn := range s.clients {
		if err := util.SendJSON(conn, snap); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// BuildSnapshot reads both engines into one frame. Call with the session
// mutex held.
func BuildSnapshot(session *challenge.Session) Snapshot {
	return Snapshot{
		SimTimeSeconds: session.Human.SimTimeSeconds(),
		HumanAircraft:  aircraftStates(session.Human.LiveAircraft()),
		AgentAircraft:  aircraftStates(session.Agent.LiveAircraft()),
		HumanScore:     session.Human.Score(),
		AgentScore:     session.Agent.Score(),
	}
}

func aircraftStates(aircraft []*sim.Aircraft) []AircraftState {
	out := make([]AircraftState, 0, len(aircraft))
	for _, ac := range aircraft {
		out = append(out, AircraftState{
			Callsign:   ac.Callsign,
			XNm:        ac.Position.X,
			YNm:        ac.Position.Y,
			HeadingDeg: geometry.RadToDeg(ac.HeadingRad),
			AltitudeFt: ac.AltitudeFt,
			SpeedKt:    ac.SpeedKt,
			Landed:     ac.Landed,
		})
	}
	return out
}
