package agents

import (
	"github.com/zappabad/crowdcraft/internal/signal"
	"github.com/zappabad/crowdcraft/internal/window"
)

// Demand blends the momentum and value signals weighted by how many agents
// follow each, then applies the crowding adjustment. The result is a signed
// scalar: positive is net buying pressure, negative net selling. It is
// recomputed fresh every tick and never persisted.
func Demand(trend, valuation *window.Window, price float64, pop Population) (float64, error) {
	share, err := pop.MomentumShare()
	if err != nil {
		return 0, err
	}

	mom := signal.Momentum(trend, price)
	val := signal.Value(valuation, price)

	blended := (mom*float64(pop.Momentum) + val*float64(pop.Value)) / float64(pop.Total())
	return Adjust(blended, share), nil
}
