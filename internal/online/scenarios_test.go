package online_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/internal/online"
	"github.com/threeparty/shuffledp/pkg/config"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/protocol"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

// TestScenarioS1RevealsThePermutation mirrors the first end-to-end
// scenario: p=7, n=3, d=1, zero noise, with a known permutation, checks
// the reconstructed output is the exact expected permutation of the input.
func TestScenarioS1RevealsThePermutation(t *testing.T) {
	f, err := field.New(7)
	require.NoError(t, err)

	// sigma: 0->1, 1->2, 2->0; output row i holds input row sigma(i), so
	// Pi[i][sigma(i)] = 1.
	permutation := [][]field.Element{
		{f.Element(0), f.Element(1), f.Element(0)},
		{f.Element(0), f.Element(0), f.Element(1)},
		{f.Element(1), f.Element(0), f.Element(0)},
	}
	x := [][]field.Element{{f.Element(2)}, {f.Element(5)}, {f.Element(3)}}
	masks := [][]field.Element{{f.Element(4)}, {f.Element(1)}, {f.Element(6)}}

	permutedMasks, err := field.MatMul(permutation, masks)
	require.NoError(t, err)
	zeroNoise := [][]field.Element{{f.Zero()}, {f.Zero()}, {f.Zero()}}

	permShares, err := sharing.ShareMatrix(f, permutation, party.Roles())
	require.NoError(t, err)
	maskShares, err := sharing.ShareMatrix(f, permutedMasks, party.Roles())
	require.NoError(t, err)
	noiseShares, err := sharing.ShareMatrix(f, zeroNoise, party.Roles())
	require.NoError(t, err)

	dist := sharing.NewDistributor(permShares, maskShares, noiseShares)

	submissions := make([][]field.Element, len(x))
	for i := range x {
		sub, err := field.VectorSub(x[i], masks[i])
		require.NoError(t, err)
		submissions[i] = sub
	}

	comp1Result, err := online.LocalCompute(submissions, dist.BundleFor(party.Comp1))
	require.NoError(t, err)
	comp2Result, err := online.LocalCompute(submissions, dist.BundleFor(party.Comp2))
	require.NoError(t, err)

	final, err := online.Reconstruct(f, comp1Result, comp2Result)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), final[0][0].Uint64())
	assert.Equal(t, uint64(3), final[1][0].Uint64())
	assert.Equal(t, uint64(2), final[2][0].Uint64())
}

// TestScenarioS2OutputIsAPermutationOfInput mirrors the second scenario:
// p=97, n=4, d=2, zero noise — the output multiset must equal the input
// multiset regardless of which permutation was drawn.
func TestScenarioS2OutputIsAPermutationOfInput(t *testing.T) {
	f, err := field.New(97)
	require.NoError(t, err)

	x := [][]field.Element{
		{f.Element(1), f.Element(2)},
		{f.Element(3), f.Element(4)},
		{f.Element(5), f.Element(6)},
		{f.Element(7), f.Element(8)},
	}

	masks := [][]field.Element{
		{f.Element(10), f.Element(20)},
		{f.Element(30), f.Element(40)},
		{f.Element(50), f.Element(60)},
		{f.Element(70), f.Element(80)},
	}

	// an arbitrary fixed permutation: 0->3, 1->1, 2->0, 3->2
	permutation := [][]field.Element{
		{f.Element(0), f.Element(0), f.Element(0), f.Element(1)},
		{f.Element(0), f.Element(1), f.Element(0), f.Element(0)},
		{f.Element(1), f.Element(0), f.Element(0), f.Element(0)},
		{f.Element(0), f.Element(0), f.Element(1), f.Element(0)},
	}

	permutedMasks, err := field.MatMul(permutation, masks)
	require.NoError(t, err)
	zeroNoise := make([][]field.Element, 4)
	for i := range zeroNoise {
		zeroNoise[i] = []field.Element{f.Zero(), f.Zero()}
	}

	permShares, err := sharing.ShareMatrix(f, permutation, party.Roles())
	require.NoError(t, err)
	maskShares, err := sharing.ShareMatrix(f, permutedMasks, party.Roles())
	require.NoError(t, err)
	noiseShares, err := sharing.ShareMatrix(f, zeroNoise, party.Roles())
	require.NoError(t, err)

	dist := sharing.NewDistributor(permShares, maskShares, noiseShares)

	submissions := make([][]field.Element, len(x))
	for i := range x {
		sub, err := field.VectorSub(x[i], masks[i])
		require.NoError(t, err)
		submissions[i] = sub
	}

	comp1Result, err := online.LocalCompute(submissions, dist.BundleFor(party.Comp1))
	require.NoError(t, err)
	comp2Result, err := online.LocalCompute(submissions, dist.BundleFor(party.Comp2))
	require.NoError(t, err)

	final, err := online.Reconstruct(f, comp1Result, comp2Result)
	require.NoError(t, err)

	expectedSum := uint64(0)
	for _, row := range x {
		for _, e := range row {
			expectedSum += e.Uint64()
		}
	}
	gotSum := uint64(0)
	for _, row := range final {
		for _, e := range row {
			gotSum += e.Uint64()
		}
	}
	assert.Equal(t, expectedSum%97, gotSum%97)

	seen := make(map[uint64]int)
	for _, row := range x {
		seen[row[0].Uint64()*1000+row[1].Uint64()]++
	}
	for _, row := range final {
		key := row[0].Uint64()*1000 + row[1].Uint64()
		seen[key]--
	}
	for _, count := range seen {
		assert.Zero(t, count, "output must be exactly a permutation of the input multiset")
	}
}

// TestScenarioS4WithholdingComp2FailsReconstruction mirrors the fourth
// scenario: reconstruction without Comp2's result share must fail with
// InsufficientShares, never fall back to a partial or guessed answer.
func TestScenarioS4WithholdingComp2FailsReconstruction(t *testing.T) {
	f, err := field.New(97)
	require.NoError(t, err)

	shares, err := sharing.ShareSecret(f, f.Element(5), party.Roles())
	require.NoError(t, err)
	comp1Share, ok := sharing.ShareFor(shares, party.Comp1)
	require.True(t, ok)

	_, err = sharing.ReconstructSecret(f, []sharing.Share{comp1Share})
	require.Error(t, err)
	kind, ok := shuffleerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, shuffleerr.InsufficientShares, kind)
}

// TestScenarioS5ContributorTimeoutAbortsWithNoPartialOutput mirrors the
// fifth scenario: a contributor who never submits leaves its computational
// parties unable to complete the online phase, and the session must report
// failure rather than returning a result with that contributor silently
// dropped or zeroed.
func TestScenarioS5ContributorTimeoutAbortsWithNoPartialOutput(t *testing.T) {
	f, err := field.New(97)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.FieldModulus = 97
	cfg.NumContributors = 3
	cfg.FeatureDim = 1

	set := protocol.NewSet(cfg)
	set.InitializeAll()

	comp1, err := set.Get(party.Comp1)
	require.NoError(t, err)

	// Only two of the three contributors submitted in time; the session
	// cannot proceed to LocalCompute with a short submissions slice: comp1
	// holds no bundle here, and LocalCompute rejects any bundle whose share
	// matrices are not sized for exactly the submissions it is given.
	fullSubmissions := make([][]field.Element, 3)
	fullSubmissions[0] = []field.Element{f.Element(1)}
	fullSubmissions[1] = []field.Element{f.Element(2)}
	// fullSubmissions[2] deliberately left nil: contributor 2 never submitted.

	bundle, ok := comp1.Bundle()
	require.False(t, ok, "comp1 never received a bundle in this scenario, matching the aborted session")

	_, err = online.LocalCompute(fullSubmissions[:2], bundle)
	require.Error(t, err, "a short submission set must not silently produce a partial result")

	comp1.Fail(shuffleerr.New("scenario.S5", shuffleerr.Timeout))
	assert.True(t, comp1.IsFailed())
	assert.False(t, comp1.IsAvailable())
}
