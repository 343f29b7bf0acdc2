// Package online implements the fully-local online phase: once a
// contributor's masked submission reaches both computational parties, each
// party shuffles and randomizes it entirely on its own, using only the
// correlation shares it received during the offline phase. Neither
// computational party ever sends the other a message; reconstruction only
// happens once, out of band, when the two parties' final result shares are
// combined. Adapted from the original toy implementation's OnlinePhase.
package online

import (
	"context"

	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/prg"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
	"github.com/threeparty/shuffledp/pkg/workerpool"
)

// Submit computes a contributor's public share x-a, where a is the mask
// the contributor derives from its own seed — the same seed Auxiliary used
// during the offline phase to generate that contributor's row of the mask
// matrix, so the two never need to exchange a.
func Submit(f *field.Field, data []field.Element, seed [32]byte) ([]field.Element, error) {
	const op = "online.Submit"
	mask, err := prg.NewMaskStream(seed).Elements(f, len(data))
	if err != nil {
		return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
	}
	share, err := field.VectorSub(data, mask)
	if err != nil {
		return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
	}
	return share, nil
}

// LocalCompute runs one computational party's entire share of the online
// phase: shuffle every contributor's public submission using this party's
// share of the permutation, add this party's share of the pre-permuted
// mask matrix, and add this party's share of the noise matrix. The result
// is this party's share of Πx+ν; it cancels against the other party's
// share only once both are reconstructed together.
//
// submissions[k] is the public value x_k-a_k for contributor k, identical
// as seen by both computational parties (it was computed once by the
// contributor and sent to both). bundle is this party's correlation
// bundle from the offline phase.
func LocalCompute(submissions [][]field.Element, bundle sharing.Bundle) ([][]sharing.Share, error) {
	const op = "online.LocalCompute"
	n := len(submissions)
	if n == 0 {
		return nil, shuffleerr.New(op, shuffleerr.EmptyInput)
	}
	if len(bundle.PermutationShares) != n || len(bundle.MaskShares) != n || len(bundle.NoiseShares) != n {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	d := len(submissions[0])

	shuffled, err := localShuffle(submissions, bundle.PermutationShares, n, d)
	if err != nil {
		return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
	}

	result := make([][]sharing.Share, n)
	for i := 0; i < n; i++ {
		withMask, err := sharing.AddShares(shuffled[i], bundle.MaskShares[i])
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		result[i] = withMask
	}

	for i := 0; i < n; i++ {
		noised, err := sharing.AddShares(result[i], bundle.NoiseShares[i])
		if err != nil {
			return nil, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
		}
		result[i] = noised
	}

	return result, nil
}

// localShuffle computes, for every output row i and feature k, the share
// sum_j perm_share[i][j] * submissions[j][k]. This is a share-times-public-
// scalar multiplication (submissions are public after the contributor
// publishes x-a), so it stays linear and needs no interaction — exactly
// the step the protocol calls the "silent shuffle". Each output row is
// independent of every other, so the n*n*d multiply-accumulate is fanned
// out across rows via pkg/workerpool instead of running strictly
// sequentially.
func localShuffle(submissions [][]field.Element, permShares [][]sharing.Share, n, d int) ([][]sharing.Share, error) {
	out := make([][]sharing.Share, n)
	err := workerpool.Run(context.Background(), n, 0, func(_ context.Context, i int) error {
		row := make([]sharing.Share, d)
		for j := 0; j < n; j++ {
			scalar := submissions[j]
			for k := 0; k < d; k++ {
				term, err := sharing.MulByConstant([]sharing.Share{permShares[i][j]}, scalar[k])
				if err != nil {
					return err
				}
				if j == 0 {
					row[k] = term[0]
				} else {
					sum, err := sharing.AddShares([]sharing.Share{row[k]}, term)
					if err != nil {
						return err
					}
					row[k] = sum[0]
				}
			}
		}
		out[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reconstruct combines the two computational parties' final result shares
// into the shuffled, noised output Πx+ν.
func Reconstruct(f *field.Field, comp1Result, comp2Result [][]sharing.Share) ([][]field.Element, error) {
	const op = "online.Reconstruct"
	if len(comp1Result) != len(comp2Result) {
		return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
	}
	out := make([][]field.Element, len(comp1Result))
	for i := range comp1Result {
		row1, row2 := comp1Result[i], comp2Result[i]
		if len(row1) != len(row2) {
			return nil, shuffleerr.New(op, shuffleerr.DimensionMismatch)
		}
		row := make([]field.Element, len(row1))
		for k := range row1 {
			v, err := sharing.ReconstructSecret(f, []sharing.Share{row1[k], row2[k]})
			if err != nil {
				return nil, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
			}
			row[k] = v
		}
		out[i] = row
	}
	return out, nil
}
