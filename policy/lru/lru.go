// Package lru implements the LRU eviction policy.
package lru

import "github.com/DoubleNemesis/mongo-test/policy"

// lru is a classic "move-to-front" Least-Recently-Used policy.
// It delegates list manipulation to policy.Hooks provided by the pool.
//
// The pool defaults to FIFO; LRU is opt-in for deployments where a busy
// connection should outlive idle ones under capacity pressure.
type lru struct {
	h policy.Hooks
}

type lruPolicy struct{}

// New returns a Policy factory that constructs per-pool LRU instances.
func New() policy.Policy { return lruPolicy{} }

// New implements policy.Policy by binding pool hooks and returning
// a pool-local policy instance.
func (lruPolicy) New(h policy.Hooks) policy.ListPolicy {
	return &lru{h: h}
}

// OnAdd places the new entry at the newest position.
func (p *lru) OnAdd(n policy.Node) { p.h.PushFront(n) }

// OnGet promotes the entry to the newest position.
func (p *lru) OnGet(n policy.Node) { p.h.MoveToFront(n) }

// OnRemove is a no-op for pure LRU (nothing to clean up in policy state).
func (p *lru) OnRemove(_ policy.Node) {}
