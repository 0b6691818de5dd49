package server

import (
	"testing"

	"github.com/darter-io/darter/scheduler/domain"
)

func makeTask(requestID string, index int) *taskRecord {
	return &taskRecord{
		id:      domain.TaskID{RequestID: requestID, TaskIndex: index},
		payload: []byte("task"),
	}
}

// ensures a single worker's reservations are served oldest first
func Test_WorkerQueue_FIFO(t *testing.T) {
	q := &workerQueue{}
	t1, t2, t3 := makeTask("req1", 0), makeTask("req1", 1), makeTask("req1", 2)
	q.enqueue(&reservation{task: t1})
	q.enqueue(&reservation{task: t2})
	q.enqueue(&reservation{task: t3})

	for i, want := range []*taskRecord{t1, t2, t3} {
		claimed, _ := q.claim(1, nil)
		if len(claimed) != 1 || claimed[0] != want {
			t.Fatalf("claim #%d: expected task %v, got %v", i, want.id, claimed)
		}
	}
	if claimed, _ := q.claim(1, nil); len(claimed) != 0 {
		t.Errorf("expected empty queue, claimed %v", claimed)
	}
}

// ensures entries whose task was claimed elsewhere are skipped and dropped
func Test_WorkerQueue_StaleEntriesDropped(t *testing.T) {
	q := &workerQueue{}
	t1, t2 := makeTask("req1", 0), makeTask("req1", 1)
	q.enqueue(&reservation{task: t1})
	q.enqueue(&reservation{task: t2})

	// t1 is claimed via a sibling reservation on another queue.
	if !t1.tryClaim() {
		t.Fatal("expected tryClaim to succeed on fresh task")
	}

	claimed, stale := q.claim(1, nil)
	if len(claimed) != 1 || claimed[0] != t2 {
		t.Fatalf("expected to skip stale t1 and claim t2, got %v", claimed)
	}
	if stale != 1 {
		t.Errorf("expected 1 stale entry dropped, got %d", stale)
	}
	if pending, staleLeft := q.len(); pending != 0 || staleLeft != 0 {
		t.Errorf("expected empty queue after scan, pending=%d stale=%d", pending, staleLeft)
	}
}

// ensures scanning a fully-stale queue is a harmless no-op that leaves the
// queue usable
func Test_WorkerQueue_IdempotentStaleness(t *testing.T) {
	q := &workerQueue{}
	t1 := makeTask("req1", 0)
	q.enqueue(&reservation{task: t1})
	t1.tryClaim()

	for i := 0; i < 2; i++ {
		if claimed, _ := q.claim(1, nil); len(claimed) != 0 {
			t.Fatalf("scan #%d: expected no claim for stale task, got %v", i, claimed)
		}
	}

	// Queue still functions for new reservations.
	t2 := makeTask("req2", 0)
	q.enqueue(&reservation{task: t2})
	if claimed, _ := q.claim(1, nil); len(claimed) != 1 || claimed[0] != t2 {
		t.Errorf("expected queue to still serve new reservations, got %v", claimed)
	}
}

// ensures non-matching entries keep their queue position across scoped claims
func Test_WorkerQueue_ScopedClaimKeepsOrder(t *testing.T) {
	q := &workerQueue{}
	a0, b0, a1 := makeTask("reqA", 0), makeTask("reqB", 0), makeTask("reqA", 1)
	q.enqueue(&reservation{task: a0})
	q.enqueue(&reservation{task: b0})
	q.enqueue(&reservation{task: a1})

	matchB := func(tr *taskRecord) bool { return tr.id.RequestID == "reqB" }
	claimed, _ := q.claim(10, matchB)
	if len(claimed) != 1 || claimed[0] != b0 {
		t.Fatalf("expected scoped claim to take reqB only, got %v", claimed)
	}

	claimed, _ = q.claim(10, nil)
	if len(claimed) != 2 || claimed[0] != a0 || claimed[1] != a1 {
		t.Errorf("expected remaining tasks in order [a0 a1], got %v", claimed)
	}
}

// ensures claim honors the batch bound and leaves the tail in place
func Test_WorkerQueue_BatchBound(t *testing.T) {
	q := &workerQueue{}
	for i := 0; i < 5; i++ {
		q.enqueue(&reservation{task: makeTask("req1", i)})
	}
	claimed, _ := q.claim(2, nil)
	if len(claimed) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(claimed))
	}
	if pending, _ := q.len(); pending != 3 {
		t.Errorf("expected 3 pending after batch, got %d", pending)
	}
}

func Test_ReservationTable_QueuePerWorker(t *testing.T) {
	table := newReservationTable()
	table.enqueue("w1", &reservation{task: makeTask("req1", 0)})
	table.enqueue("w2", &reservation{task: makeTask("req1", 1)})

	if got := len(table.workers()); got != 2 {
		t.Fatalf("expected 2 worker queues, got %d", got)
	}
	if table.numPending() != 2 {
		t.Errorf("expected 2 pending reservations, got %d", table.numPending())
	}
	if q1, q2 := table.queue("w1"), table.queue("w1"); q1 != q2 {
		t.Errorf("expected stable queue identity per worker address")
	}
}
