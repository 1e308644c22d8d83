package pool

import (
	"context"

	"github.com/DoubleNemesis/mongo-test/policy"
)

// DefaultSchemes are the URI prefixes Acquire accepts when
// Options.Schemes is nil.
var DefaultSchemes = []string{"mongodb://", "mongodb+srv://"}

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — the oldest entry was dropped to admit a new key.
	EvictCapacity EvictReason = iota
	// EvictClosed — the pool was closed and released its entries.
	EvictClosed
)

// Metrics exposes pool-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	DialError()
	Size(entries int)
}

// DialFunc establishes a new backend connection for key.
// It is invoked outside the pool lock; at most one dial per key is in
// flight at a time.
type DialFunc[C any] func(ctx context.Context, key string) (C, error)

// Options configures the pool. Capacity and Dial are mandatory;
// sane defaults are applied in New() for the rest:
//   - nil Policy  => strict FIFO
//   - nil Schemes => DefaultSchemes
//   - nil Metrics => NoopMetrics
type Options[C any] struct {
	// Capacity is the entry count limit (pending dials included).
	Capacity int

	// Dial establishes a connection for a previously-unseen key.
	Dial DialFunc[C]

	// Policy orders entries for eviction. The default (FIFO) never
	// refreshes an entry's position on access; use policy/lru for
	// recency-based ordering.
	Policy policy.Policy

	// Schemes lists accepted key prefixes (syntactic gate only).
	Schemes []string

	// OnEvict is called with every connection the pool stops owning,
	// including residents released by Close. It runs under the pool
	// lock; keep callbacks lightweight and do slow cleanup (driver
	// disconnect) in a goroutine.
	OnEvict func(key string, conn C, reason EvictReason)

	Metrics Metrics
}
