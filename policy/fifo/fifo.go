// Package fifo implements the strict insertion-order eviction policy.
package fifo

import "github.com/DoubleNemesis/mongo-test/policy"

// fifo orders entries purely by insertion time: new entries enter at the
// front and the oldest entry is always the eviction candidate at the back.
// Access never refreshes an entry's position.
type fifo struct {
	h policy.Hooks
}

type fifoPolicy struct{}

// New returns a Policy factory that constructs FIFO instances.
func New() policy.Policy { return fifoPolicy{} }

// New implements policy.Policy by binding pool hooks and returning
// a pool-local policy instance.
func (fifoPolicy) New(h policy.Hooks) policy.ListPolicy {
	return &fifo{h: h}
}

// OnAdd places the new entry at the newest position.
func (p *fifo) OnAdd(n policy.Node) { p.h.PushFront(n) }

// OnGet is a no-op: insertion order is never refreshed by access.
func (p *fifo) OnGet(_ policy.Node) {}

// OnRemove is a no-op (nothing to clean up in policy state).
func (p *fifo) OnRemove(_ policy.Node) {}
