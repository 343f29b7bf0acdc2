package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threeparty/shuffledp/internal/offline"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/protocol"
)

func runOffline(cmd *cobra.Command, args []string) error {
	cfg := cliConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := field.New(cfg.FieldModulus)
	if err != nil {
		return fmt.Errorf("constructing field: %w", err)
	}

	gen := offline.New(cfg, f, sessionLabel)
	result, err := gen.Run()
	if err != nil {
		return fmt.Errorf("offline phase failed: %w", err)
	}

	set := protocol.NewSet(cfg)
	set.InitializeAll()

	comp1, err := set.Get(party.Comp1)
	if err != nil {
		return err
	}
	comp2, err := set.Get(party.Comp2)
	if err != nil {
		return err
	}
	comp1.StoreBundle(result.Distributor.BundleFor(party.Comp1))
	comp2.StoreBundle(result.Distributor.BundleFor(party.Comp2))

	comp1Stats := comp1.Stats()
	comp2Stats := comp2.Stats()

	fmt.Printf("=== Offline phase complete ===\n")
	fmt.Printf("Contributors: %d, feature dim: %d\n", cfg.NumContributors, cfg.FeatureDim)
	fmt.Printf("Comp1 stats: state=%s permutation_shares=%d mask_shares=%d noise_shares=%d\n",
		comp1Stats.State, comp1Stats.PermutationSharesCount, comp1Stats.MaskSharesCount, comp1Stats.NoiseSharesCount)
	fmt.Printf("Comp2 stats: state=%s permutation_shares=%d mask_shares=%d noise_shares=%d\n",
		comp2Stats.State, comp2Stats.PermutationSharesCount, comp2Stats.MaskSharesCount, comp2Stats.NoiseSharesCount)
	fmt.Printf("Contributor seeds derived: %d\n", len(result.ContributorSeeds))
	fmt.Printf("Noise budget: epsilon=%.4f delta=%.6g\n", result.NoiseLabel.Epsilon, result.NoiseLabel.Delta)

	return nil
}
