package sweep

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
)

// Mix is one momentum/value population split to evaluate.
type Mix struct {
	Momentum int
	Value    int
}

// Grid builds mixes from all-value to all-momentum over a fixed total
// population, stepping the momentum count by step.
func Grid(total, step int) []Mix {
	if total <= 0 || step <= 0 {
		return nil
	}
	var mixes []Mix
	for m := 0; m <= total; m += step {
		mixes = append(mixes, Mix{Momentum: m, Value: total - m})
	}
	return mixes
}

// Result summarizes one complete run for a given mix.
type Result struct {
	Mix            Mix
	FinalPrice     float64
	FinalIntrinsic float64
	YearAverage    float64
	MinPrice       float64
	MaxPrice       float64
	MeanAbsDemand  float64
	Err            error
}

// Run evaluates every mix in parallel, one independent simulation per mix.
// Simulations share no state, so each result is deterministic for the given
// config and seed regardless of scheduling.
func Run(ctx context.Context, cfg engine.Config, mixes []Mix, log zerolog.Logger) []Result {
	results := make([]Result, len(mixes))

	var wg sync.WaitGroup
	for i, mix := range mixes {
		wg.Add(1)
		go func(i int, mix Mix) {
			defer wg.Done()
			results[i] = runOne(ctx, cfg, mix)
			log.Debug().
				Int("momentum", mix.Momentum).
				Int("value", mix.Value).
				Float64("final_price", results[i].FinalPrice).
				Err(results[i].Err).
				Msg("sweep cell done")
		}(i, mix)
	}
	wg.Wait()

	return results
}

func runOne(ctx context.Context, cfg engine.Config, mix Mix) Result {
	res := Result{Mix: mix}

	pop, err := agents.NewPopulation(mix.Momentum, mix.Value)
	if err != nil {
		res.Err = err
		return res
	}
	sim, err := engine.New(cfg, pop)
	if err != nil {
		res.Err = err
		return res
	}
	if err := sim.Run(ctx); err != nil {
		res.Err = err
		return res
	}

	res.FinalPrice = sim.CurrentPrice()
	res.FinalIntrinsic = sim.IntrinsicValue()
	res.YearAverage = sim.YearAverage()
	res.MinPrice = math.Inf(1)
	res.MaxPrice = math.Inf(-1)

	var absDemand float64
	history := sim.History()
	for _, snap := range history {
		res.MinPrice = math.Min(res.MinPrice, snap.Price)
		res.MaxPrice = math.Max(res.MaxPrice, snap.Price)
		absDemand += math.Abs(snap.Demand)
	}
	if len(history) > 0 {
		res.MeanAbsDemand = absDemand / float64(len(history))
	}
	return res
}
