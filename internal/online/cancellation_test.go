package online_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/internal/online"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/sharing"
)

// TestMaskCancellationExact builds a known permutation, known masks and
// known (zero) noise by hand, bypassing the offline generator's randomness,
// and checks that the reconstructed online-phase output is exactly the
// permuted input — proving the masks cancel algebraically regardless of
// what values they happen to take.
func TestMaskCancellationExact(t *testing.T) {
	f, err := field.New(97)
	require.NoError(t, err)

	// permutation: row 0 -> col 1, row 1 -> col 0 (swap)
	permutation := [][]field.Element{
		{f.Element(0), f.Element(1)},
		{f.Element(1), f.Element(0)},
	}
	x := [][]field.Element{
		{f.Element(5), f.Element(6)},
		{f.Element(7), f.Element(8)},
	}
	masks := [][]field.Element{
		{f.Element(11), f.Element(22)},
		{f.Element(33), f.Element(44)},
	}
	permutedMasks, err := field.MatMul(permutation, masks)
	require.NoError(t, err)
	zeroNoise := [][]field.Element{
		{f.Zero(), f.Zero()},
		{f.Zero(), f.Zero()},
	}

	permShares, err := sharing.ShareMatrix(f, permutation, party.Roles())
	require.NoError(t, err)
	maskShares, err := sharing.ShareMatrix(f, permutedMasks, party.Roles())
	require.NoError(t, err)
	noiseShares, err := sharing.ShareMatrix(f, zeroNoise, party.Roles())
	require.NoError(t, err)

	dist := sharing.NewDistributor(permShares, maskShares, noiseShares)
	comp1Bundle := dist.BundleFor(party.Comp1)
	comp2Bundle := dist.BundleFor(party.Comp2)

	submissions := make([][]field.Element, len(x))
	for i := range x {
		sub, err := field.VectorSub(x[i], masks[i])
		require.NoError(t, err)
		submissions[i] = sub
	}

	comp1Result, err := online.LocalCompute(submissions, comp1Bundle)
	require.NoError(t, err)
	comp2Result, err := online.LocalCompute(submissions, comp2Bundle)
	require.NoError(t, err)

	final, err := online.Reconstruct(f, comp1Result, comp2Result)
	require.NoError(t, err)

	// row 0 of output should equal x[1] (since permutation swaps), row 1
	// should equal x[0]
	assert.True(t, final[0][0].Equal(x[1][0]))
	assert.True(t, final[0][1].Equal(x[1][1]))
	assert.True(t, final[1][0].Equal(x[0][0]))
	assert.True(t, final[1][1].Equal(x[0][1]))
}
