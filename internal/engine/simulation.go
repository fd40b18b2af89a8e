package engine

import (
	"context"
	"errors"
	"math/rand"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/window"
)

// ErrRunInProgress rejects reconfiguration while a run is underway.
// Population changes are only legal between runs, never mid-tick.
var ErrRunInProgress = errors.New("engine: population can only change between runs")

// DaySnapshot is the per-day read-only view handed to consumers. The engine
// mutates nothing mid-snapshot: a day either fully completes or the run
// aborts with state untouched.
type DaySnapshot struct {
	Day       int
	Price     float64
	Intrinsic float64
	Demand    float64
	Active    bool
}

// Simulation wires the clock, price process, rolling windows, intrinsic
// tracker and agent population into one strictly tick-sequential run. Each
// instance owns all of its state exclusively; two simulations with the same
// config and seed produce identical numbers, back-to-back or paced.
type Simulation struct {
	cfg    Config
	clock  Clock
	proc   *Process
	anchor *Tracker
	pop    agents.Population

	trendWin     *window.Window // 10 daily closes feeding the momentum signal
	valuationWin *window.Window // 30 daily closes feeding the value signal
	anchorWin    *window.Window // 50 daily closes, mean-reversion anchor
	yearWin      *window.Window // full trailing year of daily closes

	lastDemand float64
	started    bool

	history []DaySnapshot
}

// New builds a simulation with every window pre-filled at the initial price,
// so both signals are defined from the first steady-state tick.
func New(cfg Config, pop agents.Population) (*Simulation, error) {
	if pop.Total() == 0 {
		return nil, agents.ErrInvalidPopulation
	}
	cfg = cfg.normalized()

	s := &Simulation{
		cfg:          cfg,
		proc:         NewProcess(cfg.InitialPrice, cfg.BaseVolatility, cfg.DemandSensitivity, rand.New(rand.NewSource(cfg.Seed))),
		anchor:       NewTracker(cfg.InitialPrice),
		pop:          pop,
		trendWin:     window.New(TrendWindowCap),
		valuationWin: window.New(ValuationWindowCap),
		anchorWin:    window.New(AnchorWindowCap),
		yearWin:      window.New(YearWindowCap),
		history:      make([]DaySnapshot, 0, cfg.SimulationDays),
	}
	s.seedWindows()
	return s, nil
}

func (s *Simulation) seedWindows() {
	s.trendWin.Fill(s.cfg.InitialPrice)
	s.valuationWin.Fill(s.cfg.InitialPrice)
	s.anchorWin.Fill(s.cfg.InitialPrice)
	s.yearWin.Fill(s.cfg.InitialPrice)
}

// AdvanceDay runs one simulated day: the action batch when the clock calls
// for one, then the daily window pushes and intrinsic-value update, then the
// day counter. It reports whether the run is still active afterwards. A
// failed tick aborts before any state for that tick is mutated.
func (s *Simulation) AdvanceDay() (bool, error) {
	if s.clock.Terminal(s.cfg.SimulationDays) {
		return false, nil
	}
	s.started = true

	if s.clock.ActionDay(s.cfg.BootstrapDays) {
		bootstrapping := s.clock.Bootstrapping(s.cfg.BootstrapDays)
		for i := 0; i < s.cfg.ActionsPerDay; i++ {
			if bootstrapping {
				s.proc.StepBootstrap()
				continue
			}
			demand, err := agents.Demand(s.trendWin, s.valuationWin, s.proc.Price(), s.pop)
			if err != nil {
				return false, err
			}
			s.lastDemand = demand
			s.proc.StepSteady(demand, s.anchor.Value())
		}
	}

	// Daily close: feed every horizon from the same price, then refresh the
	// mean-reversion anchor.
	price := s.proc.Price()
	s.trendWin.Push(price)
	s.valuationWin.Push(price)
	s.anchorWin.Push(price)
	s.yearWin.Push(price)
	s.anchor.Update(s.anchorWin)

	day := s.clock.Day
	s.clock = s.clock.NextDay()
	active := !s.clock.Terminal(s.cfg.SimulationDays)
	s.history = append(s.history, DaySnapshot{
		Day:       day,
		Price:     price,
		Intrinsic: s.anchor.Value(),
		Demand:    s.lastDemand,
		Active:    active,
	})
	return active, nil
}

// Run advances days back-to-back until the clock is terminal or ctx is
// cancelled. Pacing for visualization lives outside the engine.
func (s *Simulation) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		active, err := s.AdvanceDay()
		if err != nil {
			return err
		}
		if !active {
			return nil
		}
	}
}

// CurrentPrice returns the canonical price.
func (s *Simulation) CurrentPrice() float64 { return s.proc.Price() }

// IntrinsicValue returns the current mean-reversion anchor.
func (s *Simulation) IntrinsicValue() float64 { return s.anchor.Value() }

// CurrentDay returns the day counter.
func (s *Simulation) CurrentDay() int { return s.clock.Day }

// CurrentDemand returns the last computed demand, 0 during bootstrap.
func (s *Simulation) CurrentDemand() float64 { return s.lastDemand }

// YearAverage returns the mean over the trailing year of daily closes.
func (s *Simulation) YearAverage() float64 {
	m, err := s.yearWin.Mean()
	if err != nil {
		return s.cfg.InitialPrice
	}
	return m
}

// Active reports whether the clock has not reached its terminal day.
func (s *Simulation) Active() bool { return !s.clock.Terminal(s.cfg.SimulationDays) }

// Population returns the current agent mix.
func (s *Simulation) Population() agents.Population { return s.pop }

// Config returns the normalized configuration the run was built with.
func (s *Simulation) Config() Config { return s.cfg }

// History returns the per-day snapshots recorded so far. The slice is owned
// by the simulation; callers must not mutate it.
func (s *Simulation) History() []DaySnapshot { return s.history }

// SetPopulation reconfigures the agent mix. Only legal between runs: before
// the first day advances, or after Reset once a run has finished.
func (s *Simulation) SetPopulation(momentum, value int) error {
	if s.started && s.Active() {
		return ErrRunInProgress
	}
	pop, err := agents.NewPopulation(momentum, value)
	if err != nil {
		return err
	}
	s.pop = pop
	return nil
}

// Reset restores the simulation to its initial state with the same config
// and seed, keeping the current population.
func (s *Simulation) Reset() {
	s.proc = NewProcess(s.cfg.InitialPrice, s.cfg.BaseVolatility, s.cfg.DemandSensitivity, rand.New(rand.NewSource(s.cfg.Seed)))
	s.anchor = NewTracker(s.cfg.InitialPrice)
	s.clock = Clock{}
	s.lastDemand = 0
	s.started = false
	s.history = s.history[:0]
	s.trendWin.Reset()
	s.valuationWin.Reset()
	s.anchorWin.Reset()
	s.yearWin.Reset()
	s.seedWindows()
}
