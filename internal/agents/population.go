package agents

import "errors"

var (
	// ErrInvalidPopulation rejects negative counts or an empty population.
	ErrInvalidPopulation = errors.New("agents: population counts must be non-negative and not both zero")
	// ErrZeroPopulation guards demand blending against a zero total. A
	// validated Population can never trip it.
	ErrZeroPopulation = errors.New("agents: total population is zero")
)

// Population is the mix of agents following each heuristic. It is a value
// object: the engine swaps the whole pair on reconfiguration and never
// mutates it mid-tick.
type Population struct {
	Momentum int
	Value    int
}

// NewPopulation validates and builds a Population.
func NewPopulation(momentum, value int) (Population, error) {
	if momentum < 0 || value < 0 || momentum+value == 0 {
		return Population{}, ErrInvalidPopulation
	}
	return Population{Momentum: momentum, Value: value}, nil
}

// Total returns the overall agent count.
func (p Population) Total() int { return p.Momentum + p.Value }

// MomentumShare returns the fraction of agents trading momentum.
func (p Population) MomentumShare() (float64, error) {
	total := p.Total()
	if total == 0 {
		return 0, ErrZeroPopulation
	}
	return float64(p.Momentum) / float64(total), nil
}
