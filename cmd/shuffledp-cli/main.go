// Command shuffledp-cli drives the three-party shuffle-with-differential-
// privacy protocol from the command line: run the offline correlation
// generator, feed contributor data through the online phase, or simulate
// failure scenarios, all in local-process mode. Adapted from the teacher's
// cmd/threshold-cli, trimmed to the subcommands this protocol needs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threeparty/shuffledp/pkg/config"
)

var (
	// Global flags
	sessionLabel    string
	numContributors int
	featureDim      int
	fieldModulus    uint64
	epsilon         float64
	delta           float64
	noiseScale      float64
	verbose         bool

	rootCmd = &cobra.Command{
		Use:   "shuffledp-cli",
		Short: "CLI tool for the three-party shuffle-with-differential-privacy protocol",
		Long: `A CLI tool for running and exercising the three-party shuffle protocol:
one auxiliary party generates correlated randomness offline, and two
computational parties shuffle and randomize contributor data online without
ever communicating with each other directly.`,
	}

	onlineCmd = &cobra.Command{
		Use:   "online",
		Short: "Run a full offline+online protocol session locally",
		Long:  `Generate offline correlations, submit contributor data, and reconstruct the shuffled, noised output, all in one process.`,
		RunE:  runSession,
	}

	offlineCmd = &cobra.Command{
		Use:   "offline",
		Short: "Run the offline correlation generator and report its shape",
		Long:  `Run the offline phase alone and print the size of the correlations it produced, without running any online submission.`,
		RunE:  runOffline,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Simulate protocol scenarios",
		Long:  `Simulate failure and edge-case scenarios: insufficient shares, a dropped computational party, a malformed configuration.`,
		RunE:  runSimulate,
	}

	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Display protocol information",
		Long:  `Display the protocol's fixed parameters and supported scenarios.`,
		RunE:  runInfo,
	}
)

func init() {
	def := config.Default()

	rootCmd.PersistentFlags().StringVarP(&sessionLabel, "session", "s", "shuffledp-cli-session", "Session label used to derive contributor seeds")
	rootCmd.PersistentFlags().IntVarP(&numContributors, "contributors", "n", 8, "Number of contributors")
	rootCmd.PersistentFlags().IntVarP(&featureDim, "feature-dim", "d", def.FeatureDim, "Number of field elements per contributor")
	rootCmd.PersistentFlags().Uint64Var(&fieldModulus, "modulus", def.FieldModulus, "Field modulus (must be prime)")
	rootCmd.PersistentFlags().Float64Var(&epsilon, "epsilon", def.Epsilon, "Differential-privacy epsilon")
	rootCmd.PersistentFlags().Float64Var(&delta, "delta", def.Delta, "Differential-privacy delta")
	rootCmd.PersistentFlags().Float64Var(&noiseScale, "noise-scale", def.NoiseScale, "Noise scale before dividing by epsilon")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	simulateCmd.Flags().String("scenario", "insufficient-shares", "Scenario to simulate: insufficient-shares, dropped-party, bad-modulus")

	rootCmd.AddCommand(onlineCmd, offlineCmd, simulateCmd, infoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliConfig builds a config.Config from the current flag values.
func cliConfig() config.Config {
	return config.Config{
		FieldModulus:    fieldModulus,
		NumContributors: numContributors,
		FeatureDim:      featureDim,
		Epsilon:         epsilon,
		Delta:           delta,
		NoiseScale:      noiseScale,
	}
}
