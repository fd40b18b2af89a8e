package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
)

// Service runs a Simulation on its own goroutine and publishes per-day
// snapshots. Pacing and fan-out live here; the engine itself stays
// synchronous and deterministic. All queries are served under a mutex so
// consumers never observe a partial day.
type Service struct {
	cfg Config
	log zerolog.Logger

	mu  sync.Mutex
	sim *engine.Simulation

	snapshots chan engine.DaySnapshot
	dropped   atomic.Int64

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a simulation service. The run does not start until Start.
func New(cfg Config, log zerolog.Logger) (*Service, error) {
	if cfg.SnapshotBuffer <= 0 {
		cfg.SnapshotBuffer = DefaultConfig().SnapshotBuffer
	}

	pop, err := agents.NewPopulation(cfg.MomentumAgents, cfg.ValueAgents)
	if err != nil {
		return nil, err
	}
	sim, err := engine.New(cfg.Engine, pop)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:       cfg,
		log:       log,
		sim:       sim,
		snapshots: make(chan engine.DaySnapshot, cfg.SnapshotBuffer),
		closed:    make(chan struct{}),
	}, nil
}

// Start launches the run loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Service) run() {
	defer s.wg.Done()

	var tick <-chan time.Time
	if s.cfg.DayInterval > 0 {
		ticker := time.NewTicker(s.cfg.DayInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.log.Info().
		Int("momentum_agents", s.cfg.MomentumAgents).
		Int("value_agents", s.cfg.ValueAgents).
		Int("days", s.sim.Config().SimulationDays).
		Int64("seed", s.sim.Config().Seed).
		Msg("simulation started")

	for {
		if tick != nil {
			select {
			case <-s.closed:
				return
			case <-tick:
			}
		} else {
			select {
			case <-s.closed:
				return
			default:
			}
		}

		s.mu.Lock()
		active, err := s.sim.AdvanceDay()
		var snap engine.DaySnapshot
		if h := s.sim.History(); len(h) > 0 {
			snap = h[len(h)-1]
		}
		s.mu.Unlock()

		if err != nil {
			s.log.Error().Err(err).Int("day", snap.Day).Msg("simulation aborted")
			return
		}
		s.publish(snap)

		if !active {
			s.log.Info().
				Float64("final_price", snap.Price).
				Float64("intrinsic", snap.Intrinsic).
				Msg("simulation complete")
			return
		}
	}
}

func (s *Service) publish(snap engine.DaySnapshot) {
	if s.cfg.DropSnapshots {
		select {
		case s.snapshots <- snap:
		default:
			s.dropped.Add(1)
		}
		return
	}
	select {
	case s.snapshots <- snap:
	case <-s.closed:
	}
}

// Snapshots returns the outbound per-day snapshot channel.
func (s *Service) Snapshots() <-chan engine.DaySnapshot {
	return s.snapshots
}

// Dropped returns the count of snapshots dropped on overflow.
func (s *Service) Dropped() int64 {
	return s.dropped.Load()
}

// CurrentPrice returns the canonical price.
func (s *Service) CurrentPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.CurrentPrice()
}

// IntrinsicValue returns the current mean-reversion anchor.
func (s *Service) IntrinsicValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.IntrinsicValue()
}

// CurrentDay returns the day counter.
func (s *Service) CurrentDay() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.CurrentDay()
}

// CurrentDemand returns the last computed demand, 0 during bootstrap.
func (s *Service) CurrentDemand() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.CurrentDemand()
}

// Active reports whether the run has days left.
func (s *Service) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Active()
}

// BootstrapDays returns the configured bootstrap length in days.
func (s *Service) BootstrapDays() int {
	return s.sim.Config().BootstrapDays
}

// Population returns the current agent mix.
func (s *Service) Population() agents.Population {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Population()
}

// History returns a copy of the per-day snapshots recorded so far.
func (s *Service) History() []engine.DaySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.DaySnapshot(nil), s.sim.History()...)
}

// SetPopulation reconfigures the agent mix; same rules as the engine's:
// only between runs.
func (s *Service) SetPopulation(momentum, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.SetPopulation(momentum, value)
}

// Close stops the run loop and waits for it to exit.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	s.wg.Wait()
}
