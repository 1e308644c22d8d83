package pool

import "context"

// Pool is a bounded cache of live backend connections keyed by
// connection URI. All methods are safe for concurrent use by multiple
// goroutines.
//
// Typical complexity for Acquire is O(1) on a hit: a map lookup plus
// constant-time list adjustments under the pool lock. A miss pays for
// one backend dial, shared by every concurrent caller of the same key.
type Pool[C any] interface {
	// Acquire returns the live connection for key, dialing it on first
	// use. Repeated calls with the same key are cheap and return the
	// same underlying connection. Concurrent calls for one unseen key
	// perform exactly one dial.
	//
	// The returned connection is borrowed: the pool retains ownership
	// and callers must not close it. ctx cancellation unblocks the
	// caller but does not abandon an in-flight dial other waiters may
	// still join.
	Acquire(ctx context.Context, key string) (C, error)

	// Len returns the number of resident entries (including pending
	// dials, which count against capacity).
	Len() int

	// Close marks the pool closed and releases every resident
	// connection through the OnEvict callback. Subsequent Acquire
	// calls fail with ErrClosed.
	Close() error
}
