package pool

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/DoubleNemesis/mongo-test/internal/util"
	"github.com/DoubleNemesis/mongo-test/policy"
	"github.com/DoubleNemesis/mongo-test/policy/fifo"
)

// pool is a bounded connection cache. A single mutex guards the map and
// the intrusive list; the dial itself runs outside the lock so slow
// backends never block unrelated keys.
type pool[C any] struct {
	// ---- guarded by mu ----
	mu   sync.Mutex
	m    map[string]*node[C]
	head *node[C] // newest
	tail *node[C] // oldest
	size int
	cap  int

	// Policy and options (policy uses hooks to manipulate the list).
	pol policy.ListPolicy
	opt Options[C]

	closed atomic.Bool

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicUint64
}

// New constructs a pool with the provided Options.
// Capacity and Dial are mandatory. Defaults:
//   - nil Policy  -> strict FIFO
//   - nil Schemes -> DefaultSchemes
//   - nil Metrics -> NoopMetrics
func New[C any](opt Options[C]) Pool[C] {
	if opt.Capacity <= 0 {
		panic("Capacity must be > 0")
	}
	if opt.Dial == nil {
		panic("Dial must be set")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = fifo.New()
	}
	if opt.Schemes == nil {
		opt.Schemes = DefaultSchemes
	}

	p := &pool[C]{
		m:   make(map[string]*node[C], opt.Capacity),
		cap: opt.Capacity,
		opt: opt,
	}
	// return pointer-to-impl as the interface (avoids unexported-return lint)
	p.pol = opt.Policy.New(poolHooks[C]{p: p})
	return p
}

// ---- Pool[C] implementation ----

// Acquire returns the connection for key, joining an in-flight dial or
// starting one. See the Pool interface for the full contract.
func (p *pool[C]) Acquire(ctx context.Context, key string) (C, error) {
	var zero C
	if !p.validKey(key) {
		return zero, ErrInvalidKey
	}
	if p.closed.Load() {
		return zero, ErrClosed
	}

	p.mu.Lock()
	if p.closed.Load() {
		// Lost the race with Close; don't insert into a swept map.
		p.mu.Unlock()
		return zero, ErrClosed
	}
	if n, ok := p.m[key]; ok {
		// Ready or pending: same path, the node is its own future.
		p.pol.OnGet(n)
		p.hits.Add(1)
		p.opt.Metrics.Hit()
		p.mu.Unlock()
		return p.wait(ctx, n)
	}

	p.misses.Add(1)
	p.opt.Metrics.Miss()

	// Make room before admitting the placeholder: drop the single
	// oldest-inserted entry per admission while over capacity.
	for p.size >= p.cap {
		tail := p.tail
		if tail == nil {
			break
		}
		p.evictNode(tail, EvictCapacity)
	}

	n := &node[C]{key: key, done: make(chan struct{})}
	p.m[key] = n
	p.pol.OnAdd(n)
	p.opt.Metrics.Size(p.size)
	p.mu.Unlock()

	return p.dial(ctx, key, n)
}

// Len returns the number of resident entries (pending dials included).
func (p *pool[C]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Close marks the pool closed and releases every resident connection
// through OnEvict. Pending dials are released by their dialer once the
// connection lands.
func (p *pool[C]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.tail != nil {
		p.evictNode(p.tail, EvictClosed)
	}
	p.opt.Metrics.Size(p.size)
	return nil
}

// ---- internals ----

// wait blocks until n resolves (or ctx is done) and returns the
// published result. Cancelling ctx unblocks only this waiter; the dial
// keeps running for the others.
func (p *pool[C]) wait(ctx context.Context, n *node[C]) (C, error) {
	select {
	case <-n.done:
		return n.conn, n.err
	case <-ctx.Done():
		var zero C
		return zero, ctx.Err()
	}
}

// dial establishes the connection for the placeholder n and publishes
// the result in place. Caller must not hold the lock.
func (p *pool[C]) dial(ctx context.Context, key string, n *node[C]) (C, error) {
	conn, err := p.opt.Dial(ctx, key)

	p.mu.Lock()
	if err != nil {
		// A failed attempt must not poison the slot: drop the
		// placeholder so the next Acquire for key retries the dial.
		if cur, ok := p.m[key]; ok && cur == n {
			p.pol.OnRemove(n)
			p.unlink(n)
			delete(p.m, key)
			p.opt.Metrics.Size(p.size)
		}
		p.opt.Metrics.DialError()
		n.err = &DialError{Fingerprint: util.Fingerprint(key), Err: err}
		n.resolved = true
		p.mu.Unlock()
		close(n.done)
		var zero C
		return zero, n.err
	}

	n.conn = conn
	n.resolved = true
	stray := n.evicted
	reason := n.reason
	p.mu.Unlock()
	close(n.done)

	// The entry was evicted (or the pool closed) while the dial was in
	// flight: the pool no longer owns this connection, so route it to
	// the cleanup callback. Waiters already joined still get to use it.
	if stray && p.opt.OnEvict != nil {
		p.opt.OnEvict(key, conn, reason)
	}
	return conn, nil
}

// validKey applies the syntactic scheme gate.
func (p *pool[C]) validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, s := range p.opt.Schemes {
		if strings.HasPrefix(key, s) {
			return true
		}
	}
	return false
}

// -------------------- list ops (mu held) --------------------

// insertFront inserts n at the newest position in O(1).
func (p *pool[C]) insertFront(n *node[C]) {
	n.prev = nil
	n.next = p.head
	if p.head != nil {
		p.head.prev = n
	}
	p.head = n
	if p.tail == nil {
		p.tail = n
	}
	p.size++
}

// moveToFront promotes n to the newest position in O(1).
func (p *pool[C]) moveToFront(n *node[C]) {
	if n == p.head {
		return
	}
	// detach
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if p.tail == n {
		p.tail = n.prev
	}
	// insert at head
	n.prev = nil
	n.next = p.head
	if p.head != nil {
		p.head.prev = n
	}
	p.head = n
	if p.tail == nil {
		p.tail = n
	}
}

// unlink removes n from the list and updates counters in O(1).
func (p *pool[C]) unlink(n *node[C]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if p.head == n {
		p.head = n.next
	}
	if p.tail == n {
		p.tail = n.prev
	}
	n.prev, n.next = nil, nil
	p.size--
}

// evictNode drops the pool's reference to n and updates metrics.
// Ready connections go to OnEvict; pending ones are tagged so their
// dialer routes the finished connection there instead.
func (p *pool[C]) evictNode(n *node[C], reason EvictReason) {
	p.pol.OnRemove(n)
	p.unlink(n)
	delete(p.m, n.key)
	p.evicts.Add(1)
	p.opt.Metrics.Evict(reason)
	if !n.resolved {
		n.evicted = true
		n.reason = reason
		return
	}
	if n.err == nil {
		if cb := p.opt.OnEvict; cb != nil {
			// Note: callbacks run under the lock; keep them light and
			// push slow cleanup (driver disconnect) into a goroutine.
			cb(n.key, n.conn, reason)
		}
	}
}

// -------------------- policy hooks --------------------

// poolHooks adapts the pool's list operations to policy.Hooks.
type poolHooks[C any] struct{ p *pool[C] }

func (h poolHooks[C]) MoveToFront(x policy.Node) { h.p.moveToFront(x.(*node[C])) }
func (h poolHooks[C]) PushFront(x policy.Node)   { h.p.insertFront(x.(*node[C])) }
func (h poolHooks[C]) Remove(x policy.Node) {
	// Policies call Remove while the pool lock is held.
	// Map bookkeeping is performed by the pool itself.
	h.p.unlink(x.(*node[C]))
}
func (h poolHooks[C]) Back() policy.Node {
	if t := h.p.tail; t != nil {
		return t
	}
	return nil
}
func (h poolHooks[C]) Len() int { return h.p.size }
