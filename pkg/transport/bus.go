package transport

import (
	"sync"

	"github.com/threeparty/shuffledp/pkg/party"
)

// Bus is an in-memory message bus connecting the three parties. It exists
// mainly so tests and the CLI's online command can exercise the protocol
// without a real network, and so tests can assert the online phase's
// defining property: the two computational parties never exchange a
// message directly.
type Bus struct {
	mu              sync.Mutex
	inboxes         map[party.Role][]Message
	compToCompCount int
}

// NewBus constructs an empty Bus with one inbox per role.
func NewBus() *Bus {
	b := &Bus{inboxes: make(map[party.Role][]Message, 3)}
	for _, r := range party.Roles() {
		b.inboxes[r] = nil
	}
	return b
}

// Send delivers msg to its recipient's inbox, counting it if it passes
// directly between the two computational parties.
func (b *Bus) Send(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg.From.IsComputational() && msg.To.IsComputational() {
		b.compToCompCount++
	}
	b.inboxes[msg.To] = append(b.inboxes[msg.To], msg)
}

// Inbox returns (a copy of) every message delivered to role r so far.
func (b *Bus) Inbox(r party.Role) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.inboxes[r]))
	copy(out, b.inboxes[r])
	return out
}

// CompToCompMessageCount returns the number of messages ever sent directly
// between the two computational parties. The online phase must keep this
// at zero: every piece of data a computational party needs either arrives
// from a contributor or was distributed by Auxiliary during the offline
// phase.
func (b *Bus) CompToCompMessageCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.compToCompCount
}
