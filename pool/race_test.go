package pool

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// A mixed workload of concurrent Acquire calls over a keyspace larger
// than capacity, with a slice of failing dials. Should pass under
// `-race` without detector reports, and the pool must never exceed its
// capacity.
func TestRace_AcquireChurn(t *testing.T) {
	var dials atomic.Int64
	dial := func(_ context.Context, key string) (*fakeConn, error) {
		id := dials.Add(1)
		if id%17 == 0 { // sprinkle failures
			return nil, errors.New("transient dial failure")
		}
		return &fakeConn{key: key, id: id}, nil
	}

	const capacity = 16
	p := New[*fakeConn](Options[*fakeConn]{Capacity: capacity, Dial: dial})
	t.Cleanup(func() { _ = p.Close() })

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 100
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				key := fmt.Sprintf("mongodb://h%d", r.Intn(keyspace))
				c, err := p.Acquire(context.Background(), key)
				if err != nil {
					var de *DialError
					if !errors.As(err, &de) {
						t.Errorf("unexpected error: %v", err)
						return
					}
					continue
				}
				if c.key != key {
					t.Errorf("wrong connection: got %q want %q", c.key, key)
					return
				}
				if l := p.Len(); l > capacity {
					t.Errorf("len %d exceeds capacity %d", l, capacity)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// One hundred goroutines storm a single unseen key concurrently.
// The dial should run at most once (coalescing on the pending node).
func TestRace_SameKeyStorm(t *testing.T) {
	var dials int64
	dial := func(_ context.Context, key string) (*fakeConn, error) {
		atomic.AddInt64(&dials, 1)
		time.Sleep(2 * time.Millisecond) // simulate I/O
		return &fakeConn{key: key, id: 1}, nil
	}

	p := New[*fakeConn](Options[*fakeConn]{Capacity: 8, Dial: dial})
	t.Cleanup(func() { _ = p.Close() })

	const goroutines = 100
	key := "mongodb://same-key"

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			c, err := p.Acquire(context.Background(), key)
			if err != nil {
				t.Errorf("Acquire error: %v", err)
				return
			}
			if c.key != key {
				t.Errorf("unexpected connection: %v", c)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt64(&dials); got > 1 {
		t.Fatalf("dial should run at most once, got %d", got)
	}

	// Subsequent call is a pure cache hit.
	if _, err := p.Acquire(context.Background(), key); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if got := atomic.LoadInt64(&dials); got != 1 {
		t.Fatalf("hit must not re-dial, got %d", got)
	}
}
