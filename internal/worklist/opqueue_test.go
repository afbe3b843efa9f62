package worklist

import "testing"

func TestOpQueue_DedupsPush(t *testing.T) {
	q := NewOpQueue(4)
	q.Push(1)
	q.Push(1)
	q.Push(2)

	if !q.Contains(1) || !q.Contains(2) {
		t.Fatalf("expected both 1 and 2 to be scheduled")
	}

	got := []int{q.Pop(), q.Pop()}
	want := []int{1, 2}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Pop order = %v, want %v", got, want)
	}
	if !q.Empty() {
		t.Fatalf("queue should be empty after draining both entries")
	}
}

func TestOpQueue_PopClearsMembership(t *testing.T) {
	q := NewOpQueue(2)
	q.Push(0)
	q.Pop()
	if q.Contains(0) {
		t.Fatalf("Contains(0) = true after Pop, want false")
	}
	q.Push(0) // must be re-schedulable
	if !q.Contains(0) {
		t.Fatalf("re-push after pop did not register")
	}
}

func TestOpQueue_Reset(t *testing.T) {
	q := NewOpQueue(3)
	q.Push(0)
	q.Push(1)
	q.Reset()

	if !q.Empty() {
		t.Fatalf("queue not empty after Reset")
	}
	for i := 0; i < 3; i++ {
		if q.Contains(i) {
			t.Fatalf("Contains(%d) = true after Reset", i)
		}
	}
}

func TestRing_GrowsAndPreservesOrder(t *testing.T) {
	r := newRing[int](2)
	for i := 0; i < 20; i++ {
		r.Push(i)
	}
	for i := 0; i < 20; i++ {
		if got := r.Pop(); got != i {
			t.Fatalf("Pop() = %d, want %d", got, i)
		}
	}
}

func TestRing_WrapAroundThenGrow(t *testing.T) {
	r := newRing[int](4)
	r.Push(1)
	r.Push(2)
	r.Pop()
	r.Push(3)
	r.Push(4)
	r.Push(5) // wraps before growing
	r.Push(6)

	var got []int
	for r.Len() > 0 {
		got = append(got, r.Pop())
	}
	want := []int{2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drained %v, want %v", got, want)
		}
	}
}
