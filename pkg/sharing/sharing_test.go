package sharing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

func TestShareAndReconstruct(t *testing.T) {
	f, err := field.New(97)
	require.NoError(t, err)

	secret := f.Element(42)
	shares, err := sharing.ShareSecret(f, secret, party.Roles())
	require.NoError(t, err)
	require.Len(t, shares, 3)

	// any 2-of-3 subset reconstructs
	subsets := [][]sharing.Share{
		{shares[0], shares[1]},
		{shares[1], shares[2]},
		{shares[0], shares[2]},
	}
	for _, subset := range subsets {
		got, err := sharing.ReconstructSecret(f, subset)
		require.NoError(t, err)
		assert.True(t, got.Equal(secret))
	}
}

func TestReconstructInsufficientShares(t *testing.T) {
	f, _ := field.New(97)
	secret := f.Element(10)
	shares, err := sharing.ShareSecret(f, secret, party.Roles())
	require.NoError(t, err)

	_, err = sharing.ReconstructSecret(f, shares[:1])
	require.Error(t, err)
	kind, ok := shuffleerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, shuffleerr.InsufficientShares, kind)
}

func TestAddSharesLinearity(t *testing.T) {
	f, _ := field.New(97)
	a := f.Element(11)
	b := f.Element(22)

	sharesA, err := sharing.ShareSecret(f, a, party.Roles())
	require.NoError(t, err)
	sharesB, err := sharing.ShareSecret(f, b, party.Roles())
	require.NoError(t, err)

	sum, err := sharing.AddShares(sharesA, sharesB)
	require.NoError(t, err)

	reconstructed, err := sharing.ReconstructSecret(f, sum[:2])
	require.NoError(t, err)

	expected, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, reconstructed.Equal(expected))
}

func TestMulByConstantLinearity(t *testing.T) {
	f, _ := field.New(97)
	a := f.Element(7)
	c := f.Element(5)

	shares, err := sharing.ShareSecret(f, a, party.Roles())
	require.NoError(t, err)

	scaled, err := sharing.MulByConstant(shares, c)
	require.NoError(t, err)

	reconstructed, err := sharing.ReconstructSecret(f, scaled[:2])
	require.NoError(t, err)

	expected, err := a.Mul(c)
	require.NoError(t, err)
	assert.True(t, reconstructed.Equal(expected))
}

func TestShareVectorRoundTrip(t *testing.T) {
	f, _ := field.New(97)
	secrets := []field.Element{f.Element(1), f.Element(2), f.Element(3)}

	shares, err := sharing.ShareVector(f, secrets, party.Roles())
	require.NoError(t, err)

	reconstructed, err := sharing.ReconstructVector(f, shares)
	require.NoError(t, err)
	require.Len(t, reconstructed, 3)
	for i, s := range secrets {
		assert.True(t, s.Equal(reconstructed[i]))
	}
}

func TestShareMatrixRoundTrip(t *testing.T) {
	f, _ := field.New(97)
	matrix := [][]field.Element{
		{f.Element(1), f.Element(2)},
		{f.Element(3), f.Element(4)},
	}

	shares, err := sharing.ShareMatrix(f, matrix, party.Roles())
	require.NoError(t, err)

	reconstructed, err := sharing.ReconstructMatrix(f, shares)
	require.NoError(t, err)
	require.Len(t, reconstructed, 2)
	for i, row := range matrix {
		for j, v := range row {
			assert.True(t, v.Equal(reconstructed[i][j]))
		}
	}
}

func TestDistributorBundleFor(t *testing.T) {
	f, _ := field.New(97)
	matrix := [][]field.Element{{f.Element(5), f.Element(6)}}
	permShares, err := sharing.ShareMatrix(f, matrix, party.Roles())
	require.NoError(t, err)
	maskShares, err := sharing.ShareMatrix(f, matrix, party.Roles())
	require.NoError(t, err)
	noiseShares, err := sharing.ShareMatrix(f, [][]field.Element{{f.Element(1), f.Element(2)}}, party.Roles())
	require.NoError(t, err)

	d := sharing.NewDistributor(permShares, maskShares, noiseShares)
	bundle := d.BundleFor(party.Comp1)
	assert.Equal(t, party.Comp1, bundle.Role)
	require.Len(t, bundle.PermutationShares, 1)
	require.Len(t, bundle.PermutationShares[0], 2)
	require.Len(t, bundle.NoiseShares, 1)
	require.Len(t, bundle.NoiseShares[0], 2)
}
