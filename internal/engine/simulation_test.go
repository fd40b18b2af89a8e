package engine

import (
	"context"
	"testing"

	"github.com/zappabad/crowdcraft/internal/agents"
)

func newTestSim(t *testing.T, cfg Config, momentum, value int) *Simulation {
	t.Helper()
	pop, err := agents.NewPopulation(momentum, value)
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	sim, err := New(cfg, pop)
	if err != nil {
		t.Fatalf("simulation: %v", err)
	}
	return sim
}

func TestSimulationInitialState(t *testing.T) {
	sim := newTestSim(t, DefaultConfig(), 50, 50)

	if sim.CurrentPrice() != 50 {
		t.Errorf("expected initial price 50, got %v", sim.CurrentPrice())
	}
	if sim.IntrinsicValue() != 50 {
		t.Errorf("expected intrinsic 50, got %v", sim.IntrinsicValue())
	}
	if sim.CurrentDay() != 0 {
		t.Errorf("expected day 0, got %d", sim.CurrentDay())
	}
	if sim.CurrentDemand() != 0 {
		t.Errorf("expected demand 0, got %v", sim.CurrentDemand())
	}
	if !sim.Active() {
		t.Error("fresh simulation should be active")
	}
}

func TestSimulationRunsToTerminalDay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseVolatility = 0
	cfg.SimulationDays = 60
	sim := newTestSim(t, cfg, 50, 50)

	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sim.Active() {
		t.Error("run should be terminal")
	}
	if sim.CurrentDay() != 60 {
		t.Errorf("expected day 60, got %d", sim.CurrentDay())
	}
}

func TestSimulationPriceFloorAlwaysHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialPrice = 0.02
	cfg.BaseVolatility = 0.5
	cfg.SimulationDays = 200
	sim := newTestSim(t, cfg, 90, 10)

	for sim.Active() {
		if _, err := sim.AdvanceDay(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if sim.CurrentPrice() < PriceFloor {
			t.Fatalf("day %d: price %v below floor", sim.CurrentDay(), sim.CurrentPrice())
		}
	}
	for _, snap := range sim.History() {
		if snap.Price < PriceFloor {
			t.Fatalf("day %d: recorded price %v below floor", snap.Day, snap.Price)
		}
	}
}

func TestSimulationDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationDays = 120
	cfg.Seed = 99

	a := newTestSim(t, cfg, 70, 30)
	b := newTestSim(t, cfg, 70, 30)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run a: %v", err)
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run b: %v", err)
	}

	ha, hb := a.History(), b.History()
	if len(ha) != len(hb) {
		t.Fatalf("history lengths differ: %d vs %d", len(ha), len(hb))
	}
	for i := range ha {
		if ha[i] != hb[i] {
			t.Fatalf("day %d: runs diverged: %+v vs %+v", i, ha[i], hb[i])
		}
	}
}

func TestSimulationHistoryCoversEveryDay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationDays = 50
	sim := newTestSim(t, cfg, 50, 50)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	h := sim.History()
	if len(h) != 50 {
		t.Fatalf("expected 50 snapshots, got %d", len(h))
	}
	for i, snap := range h {
		if snap.Day != i {
			t.Errorf("snapshot %d has day %d", i, snap.Day)
		}
		if snap.Demand != 0 && snap.Day <= sim.Config().BootstrapDays {
			t.Errorf("day %d: demand %v during bootstrap", snap.Day, snap.Demand)
		}
	}
	if h[len(h)-1].Active {
		t.Error("final snapshot should be inactive")
	}
}

func TestSetPopulationRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationDays = 40
	sim := newTestSim(t, cfg, 50, 50)

	// Legal before the run starts.
	if err := sim.SetPopulation(80, 20); err != nil {
		t.Fatalf("pre-run reconfiguration failed: %v", err)
	}
	if sim.Population().Momentum != 80 {
		t.Errorf("population not applied: %+v", sim.Population())
	}

	// Invalid counts rejected.
	if err := sim.SetPopulation(0, 0); err != agents.ErrInvalidPopulation {
		t.Errorf("expected ErrInvalidPopulation, got %v", err)
	}
	if err := sim.SetPopulation(-5, 10); err != agents.ErrInvalidPopulation {
		t.Errorf("expected ErrInvalidPopulation, got %v", err)
	}

	// Illegal mid-run.
	if _, err := sim.AdvanceDay(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := sim.SetPopulation(10, 90); err != ErrRunInProgress {
		t.Errorf("expected ErrRunInProgress, got %v", err)
	}

	// Legal again after the run completes and resets.
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	sim.Reset()
	if err := sim.SetPopulation(10, 90); err != nil {
		t.Errorf("post-reset reconfiguration failed: %v", err)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationDays = 45
	sim := newTestSim(t, cfg, 60, 40)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	first := append([]DaySnapshot(nil), sim.History()...)

	sim.Reset()
	if sim.CurrentPrice() != 50 || sim.CurrentDay() != 0 || !sim.Active() {
		t.Fatalf("reset did not restore initial state: price=%v day=%d active=%v",
			sim.CurrentPrice(), sim.CurrentDay(), sim.Active())
	}

	// Same seed: the second run replays the first exactly.
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	second := sim.History()
	if len(first) != len(second) {
		t.Fatalf("history lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("day %d: reset run diverged: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNewRejectsEmptyPopulation(t *testing.T) {
	if _, err := New(DefaultConfig(), agents.Population{}); err != agents.ErrInvalidPopulation {
		t.Errorf("expected ErrInvalidPopulation, got %v", err)
	}
}
