// Package protocol holds the three-party container and state machine the
// offline and online phases drive: each party tracks its role, lifecycle
// state, and (for the two computational parties) the correlation shares it
// has received. Adapted from the original toy implementation's Server type.
package protocol

import (
	"fmt"

	"github.com/threeparty/shuffledp/pkg/config"
	"github.com/threeparty/shuffledp/pkg/party"
	"github.com/threeparty/shuffledp/pkg/sharing"
	"github.com/threeparty/shuffledp/pkg/shuffleerr"
)

// State is a party's lifecycle stage.
type State int

const (
	// Offline is the state a party starts in, before it has been
	// initialized for a run.
	Offline State = iota
	// Online means the party is initialized and ready to participate.
	Online
	// Participating means the party is actively running its part of the
	// protocol.
	Participating
	// Completed means the party has finished its part of the protocol.
	Completed
	// Failed means the party encountered an unrecoverable error; the
	// failure reason is carried on Party.failure, not on the state itself.
	Failed
)

func (s State) String() string {
	switch s {
	case Offline:
		return "offline"
	case Online:
		return "online"
	case Participating:
		return "participating"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsAvailable reports whether a party in this state can still take part in
// the protocol.
func (s State) IsAvailable() bool {
	return s == Online || s == Participating || s == Completed
}

// IsFailed reports whether a party in this state has failed.
func (s State) IsFailed() bool { return s == Failed }

// Party is one of the three fixed protocol participants. Only a
// computational party's share fields are ever populated; storing onto an
// auxiliary party's fields is a silent no-op, matching the original
// Server's role-gated store_* methods — the auxiliary party never needs to
// hold shares of anything, since it is the one party that knows every
// secret in the clear.
type Party struct {
	Role    party.Role
	state   State
	failure error
	Config  config.Config

	bundle      sharing.Bundle
	hasBundle   bool
	finalResult [][]sharing.Share
}

// New constructs a Party in the Offline state.
func New(role party.Role, cfg config.Config) *Party {
	return &Party{Role: role, state: Offline, Config: cfg}
}

// Initialize transitions a party from Offline to Online.
func (p *Party) Initialize() { p.state = Online }

// State returns the party's current lifecycle state.
func (p *Party) State() State { return p.state }

// SetState overwrites the party's lifecycle state directly, for
// transitions driven by the surrounding orchestration (entering
// Participating, or Completed once a phase finishes).
func (p *Party) SetState(s State) { p.state = s }

// Fail transitions the party to Failed, recording cause so later
// inspection (ServerStats-equivalent, or an error returned to the caller)
// can report why.
func (p *Party) Fail(cause error) {
	p.state = Failed
	p.failure = cause
}

// FailureReason returns the cause passed to Fail, or nil if the party has
// not failed.
func (p *Party) FailureReason() error { return p.failure }

// IsAvailable reports whether the party's current state still lets it
// participate.
func (p *Party) IsAvailable() bool { return p.state.IsAvailable() }

// IsFailed reports whether the party has failed.
func (p *Party) IsFailed() bool { return p.state.IsFailed() }

// StoreBundle stores this party's correlation bundle from the offline
// phase. A no-op for the auxiliary party, which never holds shares.
func (p *Party) StoreBundle(b sharing.Bundle) {
	if !p.Role.IsComputational() {
		return
	}
	p.bundle = b
	p.hasBundle = true
}

// Bundle returns this party's stored correlation bundle and whether one has
// been stored yet.
func (p *Party) Bundle() (sharing.Bundle, bool) { return p.bundle, p.hasBundle }

// SetFinalResult stores this party's share of the online phase's result. A
// no-op for the auxiliary party.
func (p *Party) SetFinalResult(result [][]sharing.Share) {
	if !p.Role.IsComputational() {
		return
	}
	p.finalResult = result
}

// FinalResult returns this party's stored result shares.
func (p *Party) FinalResult() [][]sharing.Share { return p.finalResult }

// Stats mirrors the original's ServerStats snapshot, useful for CLI
// reporting and tests.
type Stats struct {
	Role                   party.Role
	State                  State
	PermutationSharesCount int
	MaskSharesCount        int
	NoiseSharesCount       int
	HasFinalResult         bool
}

// Stats snapshots the party's counters.
func (p *Party) Stats() Stats {
	return Stats{
		Role:                   p.Role,
		State:                  p.state,
		PermutationSharesCount: len(p.bundle.PermutationShares),
		MaskSharesCount:        len(p.bundle.MaskShares),
		NoiseSharesCount:       len(p.bundle.NoiseShares),
		HasFinalResult:         p.finalResult != nil,
	}
}

// Set is the fixed three-party container the offline and online phases
// operate over.
type Set struct {
	parties map[party.Role]*Party
}

// NewSet constructs a Set with one Party per role, all starting Offline.
func NewSet(cfg config.Config) *Set {
	s := &Set{parties: make(map[party.Role]*Party, 3)}
	for _, r := range party.Roles() {
		s.parties[r] = New(r, cfg)
	}
	return s
}

// Get returns the Party for role r, or an error wrapping ServerNotFound if
// somehow absent (never happens for a Set built via NewSet, but kept as an
// explicit check rather than a silent nil return).
func (s *Set) Get(r party.Role) (*Party, error) {
	p, ok := s.parties[r]
	if !ok {
		return nil, shuffleerr.New("protocol.Set.Get", shuffleerr.ServerNotFound)
	}
	return p, nil
}

// InitializeAll transitions every party to Online.
func (s *Set) InitializeAll() {
	for _, p := range s.parties {
		p.Initialize()
	}
}

// Computational returns the two computational parties in order
// [Comp1, Comp2].
func (s *Set) Computational() []*Party {
	out := make([]*Party, 0, 2)
	for _, r := range party.ComputationalRoles() {
		out = append(out, s.parties[r])
	}
	return out
}

// Auxiliary returns the auxiliary party.
func (s *Set) Auxiliary() *Party { return s.parties[party.Auxiliary] }
