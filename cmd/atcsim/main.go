package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ivanlamont/AI-ATC-sub000/internal/challenge"
	"github.com/ivanlamont/AI-ATC-sub000/internal/server"
	"github.com/ivanlamont/AI-ATC-sub000/internal/sim"
	"github.com/ivanlamont/AI-ATC-sub000/pkg/util"
)

// Config is the top-level service configuration loaded from config.yaml.
type Config struct {
	ListenAddr       string  `yaml:"listen_addr"`
	ScenarioFile     string  `yaml:"scenario_file"`
	TickMilliseconds int     `yaml:"tick_milliseconds"`
	TimeScale        float64 `yaml:"time_scale"`
	LogLevel         string  `yaml:"log_level"`
}

func main() {
	// 1. Load configuration. An optional argument overrides the default path.
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := util.LoadConfig[Config](configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	// 2. Load the scenario and build the head-to-head session.
	def, err := sim.LoadScenarioDef(cfg.ScenarioFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load scenario")
	}
	sess, err := challenge.NewSession(def)
	if err != nil {
		log.WithError(err).Fatal("failed to start session")
	}
	if cfg.TimeScale > 0 {
		sess.SetTimeScale(cfg.TimeScale)
	}
	log.WithFields(log.Fields{
		"session":  sess.ID,
		"scenario": def.ID,
	}).Info("session started")

	// 3. Start the HTTP + WebSocket frontend. The mutex serializes the tick
	// loop against command intake and status reads.
	var mu sync.Mutex
	srv := server.New(sess, &mu)
	httpSrv := srv.Start(cfg.ListenAddr)

	// 4. Run the fixed-cadence tick loop until the session finishes or an
	// interrupt arrives.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	tickInterval := time.Duration(cfg.TickMilliseconds) * time.Millisecond
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	dt := tickInterval.Seconds()
loop:
	for {
		select {
		case <-ticker.C:
			mu.Lock()
			done := sess.Tick(dt)
			snap := server.BuildSnapshot(sess)
			mu.Unlock()

			srv.Broadcast(snap)
			if done {
				break loop
			}
		case <-interrupt:
			log.Info("interrupt received, shutting down")
			break loop
		}
	}

	// 5. Report the outcome and shut down.
	cmp := sess.Comparison()
	log.WithFields(log.Fields{
		"winner":           cmp.Winner,
		"human_score":      cmp.HumanScore,
		"agent_score":      cmp.AgentScore,
		"human_landings":   cmp.HumanLandings,
		"agent_landings":   cmp.AgentLandings,
		"human_violations": cmp.HumanViolations,
		"agent_violations": cmp.AgentViolations,
	}).Info("session finished")
	log.Info(sess.Recorder().Summary())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(ctx)
}
