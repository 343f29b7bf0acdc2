package sharing

import "github.com/threeparty/shuffledp/pkg/party"

// Bundle groups every share a single party receives from one offline run:
// its share of the permutation matrix, its share of the pre-permuted mask
// matrix, and its share of the noise matrix (one independent draw per
// (contributor, feature) pair). internal/offline builds one Bundle per
// computational role and hands it to that party; this mirrors the
// distribute_shares step of the original offline phase, generalized from a
// flat share list to the structured correlation this protocol needs.
type Bundle struct {
	Role              party.Role
	PermutationShares [][]Share // row-major, PermutationShares[i][j] is row i, col j
	MaskShares        [][]Share // row-major, this role's share of each (row, feature) entry
	NoiseShares       [][]Share // row-major, this role's share of each (row, feature) entry
}

// Distributor routes whole correlation bundles to computational parties,
// the way the original share distributor routed flat share lists to
// numbered servers, adapted here to the protocol's fixed three-role set.
type Distributor struct {
	permutation [][][]Share
	masks       [][][]Share
	noise       [][][]Share
}

// NewDistributor packages the three correlated share matrices produced by
// an offline run so BundleFor can slice out a single party's view.
func NewDistributor(permutation, masks, noise [][][]Share) *Distributor {
	return &Distributor{permutation: permutation, masks: masks, noise: noise}
}

// BundleFor extracts the Bundle belonging to role r.
func (d *Distributor) BundleFor(r party.Role) Bundle {
	perm := make([][]Share, len(d.permutation))
	for i, row := range d.permutation {
		perm[i] = filterRole(row, r)
	}
	masks := make([][]Share, len(d.masks))
	for i, row := range d.masks {
		masks[i] = filterRole(row, r)
	}
	noise := make([][]Share, len(d.noise))
	for i, row := range d.noise {
		noise[i] = filterRole(row, r)
	}
	return Bundle{Role: r, PermutationShares: perm, MaskShares: masks, NoiseShares: noise}
}

func filterRole(groups [][]Share, r party.Role) []Share {
	out := make([]Share, len(groups))
	for i, group := range groups {
		if s, ok := ShareFor(group, r); ok {
			out[i] = s
		}
	}
	return out
}
