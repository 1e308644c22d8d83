// Package pool provides a bounded, insertion-ordered cache of live backend
// connections keyed by connection URI, with coalesced dialing and a
// pluggable eviction policy (strict FIFO by default).
//
// Design
//
//   - Storage: a map[string]*node for lookups and an intrusive
//     newest↔oldest doubly linked list for ordering. All map/list steps are
//     O(1) under a single mutex; only the dial itself happens outside it.
//
//   - Entries: each node is a resolved-in-place future. It is inserted in
//     the Pending state the moment a key is first seen, so concurrent
//     Acquire calls for the same unseen key join the one in-flight dial
//     instead of opening a second connection. Once the dial completes the
//     node becomes Ready (or is removed on failure) without re-linking.
//
//   - Eviction: when a new key arrives at capacity, the single
//     oldest-inserted entry is dropped. With the default FIFO policy,
//     access never refreshes an entry's position. Eviction only drops the
//     pool's reference; Options.OnEvict is the hook for best-effort
//     background cleanup (e.g. driver disconnect).
//
//   - Failure: a failed dial removes the placeholder, so the next Acquire
//     for that key retries instead of replaying the error. The failure is
//     surfaced to every waiter as a *DialError carrying the backend's
//     diagnostic.
//
//   - Ownership: the pool owns every handle it holds. Callers borrow a
//     handle per request and must not close it; entries are reclaimed only
//     by eviction or by Close at shutdown.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/DialError/Size
//     signals. By default NoopMetrics is used; plug a Prometheus adapter
//     to export metrics.
//
// Basic usage
//
//	p := pool.New[*mongo.Client](pool.Options[*mongo.Client]{
//	    Capacity: 50,
//	    Dial:     backend.Dial,
//	})
//	defer p.Close()
//
//	client, err := p.Acquire(ctx, uri)
package pool
