package engine

import (
	"math"
	"math/rand"
)

const (
	// PriceFloor is the hard lower bound on price. The clamp is the only
	// nonlinearity in the process and runs after every delta, every tick.
	PriceFloor = 0.01

	// driftAmplitude and phaseStep shape the smooth low-amplitude drift
	// that replaces demand during bootstrap.
	driftAmplitude = 0.01
	phaseStep      = 0.1

	// reversionRate pulls price toward intrinsic value in the steady state.
	reversionRate = 0.001
)

// Process owns the canonical price and the seeded noise source. It has two
// stepping modes: bootstrap (noise plus sinusoidal drift, no demand) and
// steady (demand plus noise plus mean reversion). The caller decides which
// mode applies; the process itself is stateless about the clock.
type Process struct {
	price       float64
	phase       float64
	vol         float64
	sensitivity float64
	rng         *rand.Rand
}

// NewProcess creates a price process starting at initialPrice.
func NewProcess(initialPrice, vol, sensitivity float64, rng *rand.Rand) *Process {
	return &Process{
		price:       math.Max(initialPrice, PriceFloor),
		vol:         vol,
		sensitivity: sensitivity,
		rng:         rng,
	}
}

// Price returns the current price.
func (p *Process) Price() float64 { return p.price }

// uniform draws from [-vol, vol).
func (p *Process) uniform() float64 {
	return (p.rng.Float64()*2 - 1) * p.vol
}

// StepBootstrap advances price one tick on noise plus the drift term. The
// phase advances monotonically with elapsed ticks, not with any clock unit.
func (p *Process) StepBootstrap() {
	delta := p.uniform()*p.price + math.Sin(p.phase)*p.price*driftAmplitude
	p.phase += phaseStep
	p.apply(delta)
}

// StepSteady advances price one tick on demand pressure, an independent
// noise draw, and mean reversion toward the intrinsic value.
func (p *Process) StepSteady(demand, intrinsic float64) {
	demandEffect := demand * p.sensitivity * p.price
	noise := p.uniform() * p.price
	reversion := (intrinsic - p.price) * reversionRate
	p.apply(demandEffect + noise + reversion)
}

func (p *Process) apply(delta float64) {
	p.price = math.Max(p.price+delta, PriceFloor)
}
