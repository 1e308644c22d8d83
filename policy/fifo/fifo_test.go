package fifo

import (
	"testing"

	"github.com/DoubleNemesis/mongo-test/policy"
)

// --- test doubles ---

type testNode struct {
	k string
}

func (n *testNode) Key() string { return n.k }

type mockHooks struct {
	pushFrontCnt   int
	moveToFrontCnt int
	removeCnt      int

	lastPush policy.Node

	lenVal  int
	backVal policy.Node
}

func (h *mockHooks) MoveToFront(n policy.Node) { h.moveToFrontCnt++ }
func (h *mockHooks) PushFront(n policy.Node)   { h.pushFrontCnt++; h.lastPush = n }
func (h *mockHooks) Remove(n policy.Node)      { h.removeCnt++ }
func (h *mockHooks) Back() policy.Node         { return h.backVal }
func (h *mockHooks) Len() int                  { return h.lenVal }

// --- tests ---

// OnAdd should push the node to the newest position.
func TestFIFO_OnAdd_PushFront(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	n := &testNode{k: "mongodb://a"}
	p.OnAdd(n)

	if h.pushFrontCnt != 1 || h.lastPush != n {
		t.Fatalf("OnAdd must call PushFront exactly once with the node")
	}
	if h.moveToFrontCnt != 0 || h.removeCnt != 0 {
		t.Fatalf("OnAdd must not call MoveToFront/Remove")
	}
}

// OnGet must NOT touch the list: access never refreshes insertion order.
func TestFIFO_OnGet_NoPromotion(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	n := &testNode{k: "mongodb://b"}
	for i := 0; i < 10; i++ {
		p.OnGet(n)
	}

	if h.moveToFrontCnt != 0 || h.pushFrontCnt != 0 || h.removeCnt != 0 {
		t.Fatalf("OnGet must not manipulate the list for FIFO")
	}
}

// OnRemove is a pure notification for FIFO.
func TestFIFO_OnRemove_Noop(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	p.OnRemove(&testNode{k: "mongodb://c"})

	if h.pushFrontCnt != 0 || h.moveToFrontCnt != 0 || h.removeCnt != 0 {
		t.Fatalf("OnRemove must not manipulate the list")
	}
}
