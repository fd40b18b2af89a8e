package service

import (
	"time"

	"github.com/zappabad/crowdcraft/internal/engine"
)

// Config holds configuration for the simulation service.
type Config struct {
	// Engine is the configuration for the underlying simulation.
	Engine engine.Config
	// MomentumAgents and ValueAgents set the initial population mix.
	MomentumAgents int
	ValueAgents    int
	// DayInterval paces the run for consumers that want to watch it. Zero
	// or negative runs days back-to-back.
	DayInterval time.Duration
	// SnapshotBuffer is the size of the outbound snapshot channel.
	SnapshotBuffer int
	// DropSnapshots determines whether the snapshot channel drops on
	// overflow instead of blocking the run loop.
	DropSnapshots bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Engine:         engine.DefaultConfig(),
		MomentumAgents: 50,
		ValueAgents:    50,
		DayInterval:    50 * time.Millisecond,
		SnapshotBuffer: 512,
		DropSnapshots:  true,
	}
}
