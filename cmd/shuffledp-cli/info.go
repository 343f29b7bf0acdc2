package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threeparty/shuffledp/pkg/config"
)

func runInfo(cmd *cobra.Command, args []string) error {
	def := config.Default()

	fmt.Printf("shuffledp-cli\n\n")
	fmt.Printf("Protocol: three-party shuffle with differential privacy\n")
	fmt.Printf("Parties:\n")
	fmt.Printf("  - auxiliary: generates permutation, mask and noise correlations offline\n")
	fmt.Printf("  - comp1, comp2: shuffle and randomize contributor data online, never communicating directly\n\n")

	fmt.Printf("Security model: semi-honest, tolerates collusion of at most one party\n")
	fmt.Printf("Secret sharing: Shamir (2,3) over a prime field\n\n")

	fmt.Printf("Default configuration:\n")
	fmt.Printf("  field modulus: 0x%x\n", def.FieldModulus)
	fmt.Printf("  contributors:  %d\n", def.NumContributors)
	fmt.Printf("  feature dim:   %d\n", def.FeatureDim)
	fmt.Printf("  epsilon:       %.4f\n", def.Epsilon)
	fmt.Printf("  delta:         %.6g\n", def.Delta)
	fmt.Printf("  noise scale:   %.4f\n\n", def.NoiseScale)

	fmt.Printf("Subcommands:\n")
	fmt.Printf("  online    run a full offline+online session locally\n")
	fmt.Printf("  offline   run the offline correlation generator alone\n")
	fmt.Printf("  simulate  exercise failure scenarios (insufficient-shares, dropped-party, bad-modulus)\n")

	if verbose {
		fmt.Printf("\nCurrent flags:\n")
		fmt.Printf("  session:      %s\n", sessionLabel)
		fmt.Printf("  contributors: %d\n", numContributors)
		fmt.Printf("  feature dim:  %d\n", featureDim)
	}

	return nil
}
