package aircraft

import "testing"

func TestQueueAppendAndPopFront(t *testing.T) {
	q := NewQueue[int]()
	q.Append(1)
	q.Append(2)
	q.Append(3)

	if q.Len() != 3 {
		t.Fatalf("expected length 3, got %d", q.Len())
	}
	v, ok := q.PopFront()
	if !ok || v != 1 {
		t.Fatalf("expected to pop 1, got %d ok=%v", v, ok)
	}
	if q.Len() != 2 {
		t.Fatalf("expected length 2 after pop, got %d", q.Len())
	}
}

func TestQueueTruncateAfter(t *testing.T) {
	q := NewQueue[int]()
	q.Append(1)
	n2 := q.Append(2)
	q.Append(3)
	q.Append(4)

	q.TruncateAfter(n2)
	if q.Len() != 2 {
		t.Fatalf("expected length 2 after truncate, got %d", q.Len())
	}
	last, _ := q.PeekLast()
	if last != 2 {
		t.Fatalf("expected tail 2 after truncate, got %d", last)
	}
}

func TestQueueTruncateAfterNilClears(t *testing.T) {
	q := NewQueue[int]()
	q.Append(1)
	q.Append(2)
	q.TruncateAfter(nil)
	if !q.IsEmpty() {
		t.Fatalf("expected empty queue after truncating from nil")
	}
}

func TestQueueForwardAndBackward(t *testing.T) {
	q := NewQueue[int]()
	q.Append(10)
	q.Append(20)
	q.Append(30)

	var forward []int
	for v := range q.Forward() {
		forward = append(forward, v)
	}
	if len(forward) != 3 || forward[0] != 10 || forward[2] != 30 {
		t.Fatalf("unexpected forward order: %v", forward)
	}

	var backward []int
	for v := range q.Backward() {
		backward = append(backward, v)
	}
	if len(backward) != 3 || backward[0] != 30 || backward[2] != 10 {
		t.Fatalf("unexpected backward order: %v", backward)
	}
}

func TestQueueBackwardPrevNodeIsForwardPredecessor(t *testing.T) {
	q := NewQueue[int]()
	q.Append(1)
	q.Append(2)
	q.Append(3)

	for v, prev := range q.Backward() {
		if v == 1 && prev != nil {
			t.Fatalf("expected nil prev at the head, got %v", prev.Value)
		}
		if v == 3 && (prev == nil || prev.Value != 2) {
			t.Fatalf("expected prev value 2 for tail, got %v", prev)
		}
	}
}
