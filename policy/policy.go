package policy

// Node is the minimal contract a pool entry must satisfy for a policy.
// Keys are connection URIs; they may embed credentials, so policies must
// not log or retain them beyond list bookkeeping.
type Node interface {
	Key() string
}

// Hooks expose O(1) list operations that a policy can use to manipulate
// the pool's intrusive newest/oldest list. Implementations are provided
// by the pool.
//
// Concurrency: all hook calls happen under the pool lock.
// Important: hooks manage only the list; the pool owns the key->node map.
type Hooks interface {
	// MoveToFront promotes the node to the newest position.
	MoveToFront(Node)
	// PushFront inserts the node at the newest position (used on admission).
	PushFront(Node)
	// Remove detaches the node from the list (map bookkeeping is done by the pool).
	Remove(Node)
	// Back returns the current oldest node (or nil if empty).
	Back() Node
	// Len returns the number of resident nodes.
	Len() int
}

// ListPolicy is a policy instance bound to a pool's hooks.
// All methods are invoked under the pool lock.
//
// Semantics:
//   - OnAdd places a newly admitted entry (typically at the front).
//   - OnGet may promote the entry; strict FIFO deliberately does not.
//   - OnRemove is a notification to update policy-internal state.
//     The pool performs the actual deletion.
type ListPolicy interface {
	OnAdd(Node)
	OnGet(Node)
	OnRemove(Node)
}

// Policy is a factory that creates policy instances bound to a
// particular pool's hooks.
type Policy interface {
	New(Hooks) ListPolicy
}
