// Package party names the three fixed roles of the protocol and the
// arithmetic Shamir evaluation points attached to each. Unlike the teacher's
// pkg/party (which indexes an arbitrary-size threshold-signature group),
// this protocol is always exactly three parties, so the type is a closed
// enum rather than an open ID space.
package party

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/threeparty/shuffledp/pkg/field"
)

// Role identifies one of the three fixed parties in the protocol.
type Role int

const (
	// Auxiliary runs the offline correlation generator. It sees the
	// permutation, masks and noise in the clear but participates in no
	// online computation.
	Auxiliary Role = iota
	// Comp1 is the first computational party.
	Comp1
	// Comp2 is the second computational party.
	Comp2
)

func (r Role) String() string {
	switch r {
	case Auxiliary:
		return "auxiliary"
	case Comp1:
		return "comp1"
	case Comp2:
		return "comp2"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// IsComputational reports whether r is one of the two online compute
// parties, as opposed to the offline auxiliary party.
func (r Role) IsComputational() bool { return r == Comp1 || r == Comp2 }

// Point returns the fixed Shamir evaluation point assigned to a role.
// The protocol always evaluates sharing polynomials at x=1 (Auxiliary),
// x=2 (Comp1), x=3 (Comp2); reconstruction never needs Auxiliary's point
// since Auxiliary never holds a share of online-phase secrets, but the
// point is defined uniformly so sharing code does not special-case it.
func (r Role) Point(f *field.Field) field.Element {
	switch r {
	case Auxiliary:
		return f.Element(1)
	case Comp1:
		return f.Element(2)
	case Comp2:
		return f.Element(3)
	default:
		return f.Element(0)
	}
}

// Roles lists all three roles in a fixed order, for callers that need to
// range over the whole party set deterministically.
func Roles() []Role { return []Role{Auxiliary, Comp1, Comp2} }

// ComputationalRoles lists the two online compute parties.
func ComputationalRoles() []Role { return []Role{Comp1, Comp2} }

const sessionIDContext = "github.com/threeparty/shuffledp 2026 session ID"
const contributorSeedContext = "github.com/threeparty/shuffledp 2026 contributor seed"

// DeriveSessionID derives a domain-separated, deterministic session
// identifier from a run label, the way the teacher's FROST round derives a
// per-signature hash key with blake3.DeriveKey rather than a raw hash.
func DeriveSessionID(label string) [32]byte {
	key := make([]byte, 32)
	blake3.DeriveKey(sessionIDContext, []byte(label), key)
	var out [32]byte
	copy(out[:], key)
	return out
}

// DeriveContributorSeed derives the per-contributor PRG seed that both the
// contributor and Auxiliary compute independently from the session ID and
// the contributor's index, so that contributor-side mask generation and
// Auxiliary's offline mask generation agree without any message exchange.
func DeriveContributorSeed(sessionID [32]byte, contributorIndex int) [32]byte {
	h := blake3.New()
	_, _ = h.Write(sessionID[:])
	_, _ = h.Write([]byte(contributorSeedContext))
	_, _ = h.Write([]byte{
		byte(contributorIndex >> 24), byte(contributorIndex >> 16),
		byte(contributorIndex >> 8), byte(contributorIndex),
	})
	sum := h.Sum(nil)
	var out [32]byte
	copy(out[:], sum)
	return out
}
