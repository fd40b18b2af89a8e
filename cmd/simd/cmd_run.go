package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
)

var (
	flagMomentum int
	flagValue    int
	flagOut      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation headlessly",
	Long: `Run a single simulation to completion and report the outcome.
With --out the full daily price series is written as CSV.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().IntVar(&flagMomentum, "momentum", 50, "number of momentum agents")
	runCmd.Flags().IntVar(&flagValue, "value", 50, "number of value agents")
	runCmd.Flags().StringVar(&flagOut, "out", "", "write the daily series to this CSV file")
}

// loadEngineConfig resolves the engine config from file and flag overrides.
func loadEngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if flagConfig != "" {
		loaded, err := engine.LoadConfig(flagConfig)
		if err != nil {
			return engine.Config{}, err
		}
		cfg = loaded
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagDays != 0 {
		cfg.SimulationDays = flagDays
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	pop, err := agents.NewPopulation(flagMomentum, flagValue)
	if err != nil {
		return err
	}
	sim, err := engine.New(cfg, pop)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().
		Int("momentum", pop.Momentum).
		Int("value", pop.Value).
		Int("days", cfg.SimulationDays).
		Int64("seed", cfg.Seed).
		Msg("starting run")

	if err := sim.Run(ctx); err != nil {
		return err
	}

	log.Info().
		Float64("final_price", sim.CurrentPrice()).
		Float64("intrinsic", sim.IntrinsicValue()).
		Float64("last_demand", sim.CurrentDemand()).
		Msg("run complete")

	if flagOut != "" {
		if err := writeSeriesCSV(flagOut, sim.History()); err != nil {
			return err
		}
		log.Info().Str("path", flagOut).Int("rows", len(sim.History())).Msg("series written")
	}
	return nil
}

func writeSeriesCSV(path string, history []engine.DaySnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"day", "price", "intrinsic", "demand"}); err != nil {
		return err
	}
	for _, snap := range history {
		rec := []string{
			strconv.Itoa(snap.Day),
			strconv.FormatFloat(snap.Price, 'f', -1, 64),
			strconv.FormatFloat(snap.Intrinsic, 'f', -1, 64),
			strconv.FormatFloat(snap.Demand, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}
