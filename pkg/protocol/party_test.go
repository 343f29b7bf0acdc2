package protocol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/pkg/config"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/protocol"
	"github.com/threeparty/shuffledp/pkg/sharing"
)

func TestPartyCreation(t *testing.T) {
	p := protocol.New(party.Auxiliary, config.Default())
	assert.Equal(t, party.Auxiliary, p.Role)
	assert.Equal(t, protocol.Offline, p.State())
}

func TestPartyInitialize(t *testing.T) {
	p := protocol.New(party.Comp1, config.Default())
	p.Initialize()
	assert.Equal(t, protocol.Online, p.State())
	assert.True(t, p.IsAvailable())
}

func TestPartyFailure(t *testing.T) {
	p := protocol.New(party.Auxiliary, config.Default())
	p.SetState(protocol.Participating)
	assert.True(t, p.IsAvailable())

	cause := errors.New("network error")
	p.Fail(cause)
	assert.False(t, p.IsAvailable())
	assert.True(t, p.IsFailed())
	assert.Equal(t, cause, p.FailureReason())
}

func TestBundleStorageGatedByRole(t *testing.T) {
	aux := protocol.New(party.Auxiliary, config.Default())
	comp := protocol.New(party.Comp1, config.Default())

	bundle := sharing.Bundle{Role: party.Comp1}

	aux.StoreBundle(bundle)
	_, ok := aux.Bundle()
	assert.False(t, ok, "auxiliary party must never store shares")

	comp.StoreBundle(bundle)
	got, ok := comp.Bundle()
	require.True(t, ok)
	assert.Equal(t, party.Comp1, got.Role)
}

func TestStatsReflectsStoredBundle(t *testing.T) {
	comp := protocol.New(party.Comp1, config.Default())
	comp.Initialize()

	stats := comp.Stats()
	assert.Equal(t, party.Comp1, stats.Role)
	assert.Equal(t, protocol.Online, stats.State)
	assert.Zero(t, stats.PermutationSharesCount)
	assert.False(t, stats.HasFinalResult)

	bundle := sharing.Bundle{
		Role:              party.Comp1,
		PermutationShares: [][]sharing.Share{{}, {}},
		MaskShares:        [][]sharing.Share{{}},
		NoiseShares:       [][]sharing.Share{{}},
	}
	comp.StoreBundle(bundle)

	stats = comp.Stats()
	assert.Equal(t, 2, stats.PermutationSharesCount)
	assert.Equal(t, 1, stats.MaskSharesCount)
	assert.Equal(t, 1, stats.NoiseSharesCount)
}

func TestSetGet(t *testing.T) {
	s := protocol.NewSet(config.Default())
	s.InitializeAll()

	for _, r := range party.Roles() {
		p, err := s.Get(r)
		require.NoError(t, err)
		assert.Equal(t, protocol.Online, p.State())
	}

	comp := s.Computational()
	require.Len(t, comp, 2)
	assert.Equal(t, party.Comp1, comp[0].Role)
	assert.Equal(t, party.Comp2, comp[1].Role)

	assert.Equal(t, party.Auxiliary, s.Auxiliary().Role)
}
