package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threeparty/shuffledp/internal/offline"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/protocol"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

func runSimulate(cmd *cobra.Command, args []string) error {
	scenario, _ := cmd.Flags().GetString("scenario")

	fmt.Printf("=== Simulating scenario: %s ===\n", scenario)

	switch scenario {
	case "insufficient-shares":
		return simulateInsufficientShares()
	case "dropped-party":
		return simulateDroppedParty()
	case "bad-modulus":
		return simulateBadModulus()
	default:
		return fmt.Errorf("unknown scenario: %s", scenario)
	}
}

// simulateInsufficientShares reconstructs a secret from only one of its two
// required shares and reports the resulting InsufficientShares error,
// demonstrating that reconstruction never silently accepts a short set.
func simulateInsufficientShares() error {
	cfg := cliConfig()
	f, err := field.New(cfg.FieldModulus)
	if err != nil {
		return err
	}

	shares, err := sharing.ShareSecret(f, f.Element(42), party.Roles())
	if err != nil {
		return err
	}

	only, _ := sharing.ShareFor(shares, party.Comp1)
	_, err = sharing.ReconstructSecret(f, []sharing.Share{only})

	kind, ok := shuffleerr.KindOf(err)
	if !ok || !errors.Is(err, shuffleerr.InsufficientShares) {
		return fmt.Errorf("expected an InsufficientShares error, got %v", err)
	}
	fmt.Printf("Reconstruction with one share correctly failed: %s (%s)\n", err, kind)
	return nil
}

// simulateDroppedParty runs the offline phase, stores the correlation
// bundle on Comp1 only, and shows that Comp2 remaining un-bundled leaves it
// unable to produce its half of the online phase's output.
func simulateDroppedParty() error {
	cfg := cliConfig()
	f, err := field.New(cfg.FieldModulus)
	if err != nil {
		return err
	}

	gen := offline.New(cfg, f, sessionLabel)
	result, err := gen.Run()
	if err != nil {
		return err
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
	comp2.Fail(fmt.Errorf("simulated: comp2 dropped before receiving its bundle"))

	comp1Stats := comp1.Stats()
	comp2Stats := comp2.Stats()
	fmt.Printf("Comp1 stats: state=%s permutation_shares=%d mask_shares=%d noise_shares=%d has_final_result=%v\n",
		comp1Stats.State, comp1Stats.PermutationSharesCount, comp1Stats.MaskSharesCount, comp1Stats.NoiseSharesCount, comp1Stats.HasFinalResult)
	fmt.Printf("Comp2 stats: state=%s, failure: %v\n", comp2Stats.State, comp2.FailureReason())

	if comp2.IsAvailable() {
		return fmt.Errorf("expected comp2 to be unavailable after being dropped")
	}
	fmt.Printf("As expected, the session cannot complete: comp2 is unavailable (%v)\n", comp2.FailureReason())
	return nil
}

// simulateBadModulus shows the result of constructing a field over a
// non-prime modulus: construction fails immediately rather than producing
// arithmetic that silently misbehaves later.
func simulateBadModulus() error {
	const composite = 100
	_, err := field.New(composite)
	if err == nil {
		return fmt.Errorf("expected field.New(%d) to fail, it did not", composite)
	}
	kind, _ := shuffleerr.KindOf(err)
	fmt.Printf("field.New(%d) correctly failed: %s (%s)\n", composite, err, kind)
	return nil
}
