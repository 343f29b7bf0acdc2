package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threeparty/shuffledp/internal/offline"
	"github.com/threeparty/shuffledp/internal/online"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/transport"
)

func runSession(cmd *cobra.Command, args []string) error {
	cfg := cliConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := field.New(cfg.FieldModulus)
	if err != nil {
		return fmt.Errorf("constructing field: %w", err)
	}

	fmt.Printf("Running offline phase for %d contributors, feature dim %d...\n", cfg.NumContributors, cfg.FeatureDim)
	gen := offline.New(cfg, f, sessionLabel)
	result, err := gen.Run()
	if err != nil {
		return fmt.Errorf("offline phase failed: %w", err)
	}

	contributorData := randomContributorData(f, cfg.NumContributors, cfg.FeatureDim)

	bus := transport.NewBus()
	submissions := make([][]field.Element, cfg.NumContributors)
	for i, data := range contributorData {
		share, err := online.Submit(f, data, result.ContributorSeeds[i])
		if err != nil {
			return fmt.Errorf("contributor %d submission failed: %w", i, err)
		}
		submissions[i] = share

		sub := transport.Submission{UserID: uint32(i), MaskedValues: share}
		msg1, err := transport.EncodeSubmission(party.Auxiliary, party.Comp1, sub)
		if err != nil {
			return fmt.Errorf("encoding submission for comp1 failed: %w", err)
		}
		msg2, err := transport.EncodeSubmission(party.Auxiliary, party.Comp2, sub)
		if err != nil {
			return fmt.Errorf("encoding submission for comp2 failed: %w", err)
		}
		bus.Send(msg1)
		bus.Send(msg2)
	}

	for _, r := range []party.Role{party.Comp1, party.Comp2} {
		for _, msg := range bus.Inbox(r) {
			if _, err := transport.DecodeSubmission(f, msg); err != nil {
				return fmt.Errorf("decoding submission for %s failed: %w", r, err)
			}
		}
	}

	comp1Bundle := result.Distributor.BundleFor(party.Comp1)
	comp2Bundle := result.Distributor.BundleFor(party.Comp2)

	comp1Result, err := online.LocalCompute(submissions, comp1Bundle)
	if err != nil {
		return fmt.Errorf("comp1 local compute failed: %w", err)
	}
	comp2Result, err := online.LocalCompute(submissions, comp2Bundle)
	if err != nil {
		return fmt.Errorf("comp2 local compute failed: %w", err)
	}

	final, err := online.Reconstruct(f, comp1Result, comp2Result)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	for i, row := range comp1Result {
		values := make([]field.Element, len(row))
		for k, s := range row {
			values[k] = s.Value
		}
		reveal := transport.Reveal{Values: values, Point: party.Comp1.Point(f)}
		msg, err := transport.EncodeReveal(party.Comp1, party.Auxiliary, reveal)
		if err != nil {
			return fmt.Errorf("encoding reveal for row %d failed: %w", i, err)
		}
		bus.Send(msg)
	}
	for _, msg := range bus.Inbox(party.Auxiliary) {
		if _, err := transport.DecodeReveal(f, msg); err != nil {
			return fmt.Errorf("decoding reveal failed: %w", err)
		}
	}

	fmt.Printf("\n=== Result ===\n")
	fmt.Printf("Computational parties exchanged %d messages directly (must be 0)\n", bus.CompToCompMessageCount())
	for i, row := range final {
		values := make([]uint64, len(row))
		for k, e := range row {
			values[k] = e.Uint64()
		}
		fmt.Printf("row %d: %v\n", i, values)
	}

	if verbose {
		fmt.Printf("\nNoise label: epsilon=%.4f delta=%.6g proven=%v\n", result.NoiseLabel.Epsilon, result.NoiseLabel.Delta, result.NoiseLabel.IsProven)
	}

	return nil
}

// randomContributorData builds deterministic placeholder data for each
// contributor: row i's features are i*10, i*10+1, ... This lets `online` be
// exercised without requiring a real dataset on disk.
func randomContributorData(f *field.Field, n, d int) [][]field.Element {
	out := make([][]field.Element, n)
	for i := 0; i < n; i++ {
		row := make([]field.Element, d)
		for k := 0; k < d; k++ {
			row[k] = f.Element(uint64(i*10 + k))
		}
		out[i] = row
	}
	return out
}
