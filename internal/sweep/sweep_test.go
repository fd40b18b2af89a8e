package sweep

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
)

func TestGrid(t *testing.T) {
	mixes := Grid(100, 25)
	require.Equal(t, []Mix{
		{Momentum: 0, Value: 100},
		{Momentum: 25, Value: 75},
		{Momentum: 50, Value: 50},
		{Momentum: 75, Value: 25},
		{Momentum: 100, Value: 0},
	}, mixes)

	assert.Nil(t, Grid(0, 10))
	assert.Nil(t, Grid(100, 0))
}

func TestRunSweep(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.SimulationDays = 60
	cfg.Seed = 7

	mixes := Grid(100, 50)
	results := Run(context.Background(), cfg, mixes, zerolog.Nop())
	require.Len(t, results, len(mixes))

	for _, res := range results {
		require.NoError(t, res.Err, "mix %+v", res.Mix)
		assert.GreaterOrEqual(t, res.MinPrice, engine.PriceFloor)
		assert.GreaterOrEqual(t, res.MaxPrice, res.MinPrice)
		assert.GreaterOrEqual(t, res.FinalPrice, engine.PriceFloor)
		assert.GreaterOrEqual(t, res.YearAverage, engine.PriceFloor)
		assert.GreaterOrEqual(t, res.MeanAbsDemand, 0.0)
	}
}

func TestRunSweepDeterministic(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.SimulationDays = 60
	cfg.Seed = 11

	mixes := Grid(100, 20)
	a := Run(context.Background(), cfg, mixes, zerolog.Nop())
	b := Run(context.Background(), cfg, mixes, zerolog.Nop())
	assert.Equal(t, a, b, "same config and seed must give identical sweeps")
}

func TestRunSweepInvalidMix(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.SimulationDays = 10

	results := Run(context.Background(), cfg, []Mix{{Momentum: 0, Value: 0}}, zerolog.Nop())
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, agents.ErrInvalidPopulation)
}
