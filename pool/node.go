package pool

// node is an intrusive doubly linked list element owned by the pool.
// It is a resolved-in-place future: inserted in the Pending state when a
// key is first seen, it becomes Ready (conn/err published, done closed)
// once the dial completes. The node is never re-linked on resolution.
type node[C any] struct {
	key string

	// Intrusive list links: head is newest, tail is oldest.
	prev *node[C]
	next *node[C]

	// done is closed once conn/err are published. Waiters read
	// conn/err only after done; publication happens-before the close.
	done chan struct{}
	conn C
	err  error

	// Guarded by the pool lock.
	// resolved marks conn/err as published; evicted marks a node that
	// was dropped (or the pool closed) while its dial was in flight, so
	// the dialer routes the finished connection to OnEvict.
	resolved bool
	evicted  bool
	reason   EvictReason
}

// Key returns the node key (part of the policy.Node interface).
func (n *node[C]) Key() string { return n.key }
