package main

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	simservice "github.com/zappabad/crowdcraft/internal/sim/service"
	"github.com/zappabad/crowdcraft/tui"
)

// Env holds environment overrides for the terminal viewer, e.g.
// CROWDCRAFT_SEED=7 CROWDCRAFT_DAY_INTERVAL=20ms crowdcraft-terminal.
type Env struct {
	Seed           int64         `envconfig:"SEED" default:"1"`
	Days           int           `envconfig:"DAYS" default:"365"`
	MomentumAgents int           `envconfig:"MOMENTUM_AGENTS" default:"50"`
	ValueAgents    int           `envconfig:"VALUE_AGENTS" default:"50"`
	DayInterval    time.Duration `envconfig:"DAY_INTERVAL" default:"50ms"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var env Env
	if err := envconfig.Process("CROWDCRAFT", &env); err != nil {
		log.Fatal().Err(err).Msg("bad environment")
	}

	cfg := simservice.DefaultConfig()
	cfg.Engine.Seed = env.Seed
	cfg.Engine.SimulationDays = env.Days
	cfg.MomentumAgents = env.MomentumAgents
	cfg.ValueAgents = env.ValueAgents
	cfg.DayInterval = env.DayInterval

	// The service logger stays silent so it cannot scribble over the
	// alt-screen UI.
	svc, err := simservice.New(cfg, zerolog.Nop())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build simulation")
	}
	defer svc.Close()

	svc.Start()

	p := tea.NewProgram(tui.NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("ui error")
	}
}
