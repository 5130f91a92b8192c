package pqueue

import (
	"math/rand"
	"testing"
)

// intPri is a minimal Priority for exercising the heap mechanics
// independent of the assign package's pqEntry: larger int is higher
// priority.
type intPri int

func (a intPri) Less(other Priority) bool {
	return a < other.(intPri)
}

func bruteForceArgmax(pris []intPri) int {
	best := 0
	for i, p := range pris {
		if p > pris[best] {
			best = i
		}
	}
	return best + 1 // handles are 1-based
}

func TestTopPriorityIsMax(t *testing.T) {
	raw := []intPri{3, 1, 9, 4, 1, 5, 9, 2}
	pri := make([]Priority, len(raw))
	for i, v := range raw {
		pri[i] = v
	}
	q := NewFromPriorities(pri)

	wantHandle := bruteForceArgmax(raw)
	if got := q.Top(); got != wantHandle {
		t.Errorf("Top() = %d, want %d", got, wantHandle)
	}
	if got := q.TopPriority().(intPri); got != raw[wantHandle-1] {
		t.Errorf("TopPriority() = %v, want %v", got, raw[wantHandle-1])
	}
}

func TestSetPriorityTracksArgmax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 50
	raw := make([]intPri, n)
	pri := make([]Priority, n)
	for i := range raw {
		raw[i] = intPri(rng.Intn(1000))
		pri[i] = raw[i]
	}
	q := NewFromPriorities(pri)

	for step := 0; step < 500; step++ {
		h := rng.Intn(n) + 1
		newVal := intPri(rng.Intn(1000))
		raw[h-1] = newVal
		q.SetPriority(h, newVal)

		want := bruteForceArgmax(raw)
		if got := q.Top(); got != want {
			t.Fatalf("step %d: Top() = %d (pri %v), want %d (pri %v)", step, got, raw[got-1], want, raw[want-1])
		}
	}
}

func TestHandlesAreStable(t *testing.T) {
	q := New(5, intPri(0))
	q.SetPriority(3, intPri(10))
	q.SetPriority(1, intPri(20))
	q.SetPriority(3, intPri(30))

	if got := q.Priority(3).(intPri); got != 30 {
		t.Errorf("Priority(3) = %v, want 30", got)
	}
	if got := q.Priority(1).(intPri); got != 20 {
		t.Errorf("Priority(1) = %v, want 20", got)
	}
	if got := q.Top(); got != 3 {
		t.Errorf("Top() = %d, want 3", got)
	}
}

func TestZeroInitializedHeapIsValid(t *testing.T) {
	q := New(10, intPri(0))
	if q.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", q.Len())
	}
	// All priorities equal; top must still be some valid handle in [1,10].
	top := q.Top()
	if top < 1 || top > 10 {
		t.Fatalf("Top() = %d out of range", top)
	}
}
