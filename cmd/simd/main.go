package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagSeed    int64
	flagDays    int
	flagVerbose bool
)

// rootCmd is the base command for the crowdcraft CLI.
var rootCmd = &cobra.Command{
	Use:   "simd",
	Short: "crowdcraft momentum/value crowding market simulator",
	Long: `crowdcraft simulates a single-asset market whose price moves under
synthetic buy/sell pressure from two competing heuristics (momentum and
value) and studies how the agent mix affects price dynamics.

Use 'simd run' for a single headless run or 'simd sweep' to evaluate many
population mixes in one batch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML engine config")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "override the noise seed (0 keeps config value)")
	rootCmd.PersistentFlags().IntVar(&flagDays, "days", 0, "override simulation length in days (0 keeps config value)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
