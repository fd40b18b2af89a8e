package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zappabad/crowdcraft/internal/sweep"
)

var (
	flagTotal int
	flagStep  int
	flagMixes string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evaluate many momentum/value mixes in one batch",
	Long: `Run one independent simulation per population mix and print a summary
table. Mixes come either from a grid (--total, --step) or an explicit list
(--mixes "90:10,50:50,10:90"). Every run uses the same seed, so rows differ
only by the agent mix.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&flagTotal, "total", 100, "total agents per mix when sweeping a grid")
	sweepCmd.Flags().IntVar(&flagStep, "step", 10, "momentum-count step when sweeping a grid")
	sweepCmd.Flags().StringVar(&flagMixes, "mixes", "", "explicit momentum:value list, overrides the grid")
}

func parseMixes(s string) ([]sweep.Mix, error) {
	var mixes []sweep.Mix
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mv := strings.SplitN(part, ":", 2)
		if len(mv) != 2 {
			return nil, fmt.Errorf("invalid mix %q, want momentum:value", part)
		}
		m, err := strconv.Atoi(strings.TrimSpace(mv[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid momentum count in %q: %w", part, err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(mv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid value count in %q: %w", part, err)
		}
		mixes = append(mixes, sweep.Mix{Momentum: m, Value: v})
	}
	if len(mixes) == 0 {
		return nil, fmt.Errorf("no mixes in %q", s)
	}
	return mixes, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	var mixes []sweep.Mix
	if flagMixes != "" {
		mixes, err = parseMixes(flagMixes)
		if err != nil {
			return err
		}
	} else {
		mixes = sweep.Grid(flagTotal, flagStep)
		if len(mixes) == 0 {
			return fmt.Errorf("empty grid for total=%d step=%d", flagTotal, flagStep)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().Int("mixes", len(mixes)).Int64("seed", cfg.Seed).Msg("starting sweep")
	results := sweep.Run(ctx, cfg, mixes, log.Logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MOMENTUM\tVALUE\tFINAL\tINTRINSIC\tYEAR AVG\tMIN\tMAX\tMEAN|DEMAND|\tERROR")
	for _, res := range results {
		errStr := ""
		if res.Err != nil {
			errStr = res.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.4f\t%s\n",
			res.Mix.Momentum, res.Mix.Value,
			res.FinalPrice, res.FinalIntrinsic, res.YearAverage,
			res.MinPrice, res.MaxPrice,
			res.MeanAbsDemand, errStr)
	}
	return w.Flush()
}
