package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Engine.SimulationDays = 40
	cfg.DayInterval = 0 // back-to-back
	cfg.DropSnapshots = false
	return cfg
}

func TestServiceRunsToCompletion(t *testing.T) {
	svc, err := New(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	svc.Start()

	var last engine.DaySnapshot
	count := 0
	timeout := time.After(5 * time.Second)
	for count < 40 {
		select {
		case snap := <-svc.Snapshots():
			assert.Equal(t, count, snap.Day)
			assert.GreaterOrEqual(t, snap.Price, engine.PriceFloor)
			last = snap
			count++
		case <-timeout:
			t.Fatalf("timed out after %d snapshots", count)
		}
	}

	assert.False(t, last.Active, "final snapshot should be inactive")
	assert.False(t, svc.Active())
	assert.Equal(t, 40, svc.CurrentDay())
}

func TestServiceBootstrapDemandIsZero(t *testing.T) {
	cfg := testConfig()
	svc, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	svc.Start()

	seen := 0
	timeout := time.After(5 * time.Second)
	for seen < 40 {
		select {
		case snap := <-svc.Snapshots():
			if snap.Day <= cfg.Engine.BootstrapDays {
				assert.Zero(t, snap.Demand, "day %d", snap.Day)
			}
			seen++
		case <-timeout:
			t.Fatalf("timed out after %d snapshots", seen)
		}
	}
}

func TestServiceRejectsInvalidPopulation(t *testing.T) {
	cfg := testConfig()
	cfg.MomentumAgents = 0
	cfg.ValueAgents = 0
	_, err := New(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, agents.ErrInvalidPopulation)
}

func TestServiceSetPopulationBeforeStart(t *testing.T) {
	svc, err := New(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.SetPopulation(90, 10))
	assert.Equal(t, agents.Population{Momentum: 90, Value: 10}, svc.Population())

	assert.ErrorIs(t, svc.SetPopulation(-1, 5), agents.ErrInvalidPopulation)
}

func TestServiceSetPopulationMidRunRejected(t *testing.T) {
	cfg := testConfig()
	cfg.DayInterval = 10 * time.Millisecond
	cfg.Engine.SimulationDays = 1000
	svc, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	svc.Start()

	// Wait for at least one day to land so the run counts as started.
	select {
	case <-svc.Snapshots():
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot arrived")
	}

	assert.ErrorIs(t, svc.SetPopulation(10, 90), engine.ErrRunInProgress)
}

func TestServiceHistoryCopyIsDetached(t *testing.T) {
	svc, err := New(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	svc.Start()
	for i := 0; i < 40; i++ {
		select {
		case <-svc.Snapshots():
		case <-time.After(5 * time.Second):
			t.Fatal("timed out draining snapshots")
		}
	}

	h := svc.History()
	require.Len(t, h, 40)
	h[0].Price = -1
	assert.NotEqual(t, -1.0, svc.History()[0].Price)
}
