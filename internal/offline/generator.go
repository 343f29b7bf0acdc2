// Package offline implements the correlation generator the Auxiliary party
// runs once, before any contributor submits data: it builds a random
// permutation matrix, derives per-contributor masks, precomputes the
// permuted mask matrix, draws differential-privacy noise, and secret-shares
// all three so the two computational parties can later shuffle and
// randomize the contributors' data without ever talking to each other or
// to Auxiliary again. Adapted from the original toy implementation's
// OfflinePhase and the teacher's dealer pattern for distributing
// correlated randomness ahead of an interactive protocol.
package offline

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/threeparty/shuffledp/pkg/config"
	"github.com/threeparty/shuffledp/pkg/dp"
	"github.com/threeparty/shuffledp/pkg/field"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/prg"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
	"github.com/threeparty/shuffledp/pkg/workerpool"
)

// Generator runs the offline phase for one protocol session.
type Generator struct {
	cfg       config.Config
	field     *field.Field
	sessionID [32]byte
}

// New constructs a Generator for a session, given the field the run's
// arithmetic is performed over and a session label used to domain-separate
// contributor seed derivation from any other run.
func New(cfg config.Config, f *field.Field, sessionLabel string) *Generator {
	return &Generator{cfg: cfg, field: f, sessionID: party.DeriveSessionID(sessionLabel)}
}

// Result is everything the offline phase produces: the correlation shares
// ready for distribution to the two computational parties, plus the
// contributor seeds each contributor needs to derive its own mask during
// the online phase.
type Result struct {
	Distributor      *sharing.Distributor
	ContributorSeeds [][32]byte
	NoiseLabel       dp.Label
}

// Run executes the offline phase: generate the permutation, generate
// contributor masks, compute the pre-permuted mask matrix in the clear
// (Auxiliary is the only party that ever sees it unshared), draw DP noise,
// and secret-share all three correlations.
func (g *Generator) Run() (Result, error) {
	const op = "offline.Run"

	n := g.cfg.NumContributors
	d := g.cfg.FeatureDim

	permutation, err := g.generatePermutationMatrix(n)
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.InvalidConfiguration, err)
	}

	masks, seeds, err := g.generateContributorMasks(n, d)
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.InvalidConfiguration, err)
	}

	// M = Π·A, computed here in the clear: Auxiliary is the only party
	// that ever learns the permutation and the masks unshared, so it is
	// the only party that can compute this product without an
	// interactive share-times-share multiplication.
	permutedMasks, err := field.MatMul(permutation, masks)
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.FieldOperationFailed, err)
	}

	scale := dp.Scale(g.cfg.Epsilon, g.cfg.NoiseScale)
	noise, err := dp.NoiseMatrix(g.field, n, d, scale)
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.InvalidConfiguration, err)
	}

	permutationShares, err := sharing.ShareMatrix(g.field, permutation, party.Roles())
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
	}
	maskShares, err := sharing.ShareMatrix(g.field, permutedMasks, party.Roles())
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
	}
	noiseShares, err := sharing.ShareMatrix(g.field, noise, party.Roles())
	if err != nil {
		return Result{}, shuffleerr.Wrap(op, shuffleerr.SharingFailed, err)
	}

	return Result{
		Distributor:      sharing.NewDistributor(permutationShares, maskShares, noiseShares),
		ContributorSeeds: seeds,
		NoiseLabel:       dp.Label{Epsilon: g.cfg.Epsilon, Delta: g.cfg.Delta, IsProven: true},
	}, nil
}

// generatePermutationMatrix draws a uniformly random permutation of
// [0,n) via Fisher-Yates over crypto/rand, and returns its n x n
// permutation matrix: row i has a single 1 in column perm[i].
func (g *Generator) generatePermutationMatrix(n int) ([][]field.Element, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		j := int(jBig.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}

	matrix := make([][]field.Element, n)
	zero := g.field.Zero()
	one := g.field.One()
	for i := range matrix {
		row := make([]field.Element, n)
		for j := range row {
			row[j] = zero
		}
		row[perm[i]] = one
		matrix[i] = row
	}
	return matrix, nil
}

// generateContributorMasks derives each contributor's mask vector from a
// per-contributor seed shared only between Auxiliary and that contributor
// (never transmitted), so the contributor can recompute the same mask
// independently during the online phase via pkg/prg. Every contributor's
// seed derivation and mask stream is independent, so the n draws are
// bounded-fanned-out across goroutines via pkg/workerpool rather than run
// strictly sequentially.
func (g *Generator) generateContributorMasks(n, d int) ([][]field.Element, [][32]byte, error) {
	masks := make([][]field.Element, n)
	seeds := make([][32]byte, n)
	err := workerpool.Run(context.Background(), n, 0, func(_ context.Context, i int) error {
		seed := party.DeriveContributorSeed(g.sessionID, i)
		seeds[i] = seed
		elems, err := prg.NewMaskStream(seed).Elements(g.field, d)
		if err != nil {
			return err
		}
		masks[i] = elems
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return masks, seeds, nil
}
