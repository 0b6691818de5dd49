package server

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/darter-io/darter/scheduler/domain"
)

// taskRecord is the single shared record for one task, referenced by every
// sibling reservation placed for it. The claimed flag is the only
// cross-queue state: whichever pull CASes it first owns the task, and every
// other reservation observing it set is stale.
type taskRecord struct {
	id      domain.TaskID
	payload []byte
	claimed int32 // accessed atomically
}

func (t *taskRecord) tryClaim() bool {
	return atomic.CompareAndSwapInt32(&t.claimed, 0, 1)
}

func (t *taskRecord) isClaimed() bool {
	return atomic.LoadInt32(&t.claimed) != 0
}

func (t *taskRecord) launchSpec() domain.LaunchSpec {
	return domain.LaunchSpec{TaskID: t.id, Payload: t.payload}
}

// reservation is one placement of a task onto one worker's queue. The queue
// owns it exclusively; siblings on other queues share only the taskRecord.
type reservation struct {
	task *taskRecord
}

// workerQueue holds one worker's outstanding reservations in placement
// order. Each queue has its own lock so placement and pulls on different
// workers never contend.
type workerQueue struct {
	mu sync.Mutex
	rs []*reservation
}

func (q *workerQueue) enqueue(r *reservation) {
	q.mu.Lock()
	q.rs = append(q.rs, r)
	q.mu.Unlock()
}

// claim scans oldest-first, discarding stale entries as they are visited and
// claiming up to max unclaimed tasks that match the filter. Entries whose
// task doesn't match keep their queue position. A nil match accepts all.
// Losing the claim race to another queue's pull mid-scan just makes the
// entry stale; it is dropped like any other. Returns the claimed tasks and
// the number of stale entries discarded.
func (q *workerQueue) claim(max int, match func(*taskRecord) bool) ([]*taskRecord, int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var claimed []*taskRecord
	stale := 0
	kept := q.rs[:0]
	for i, r := range q.rs {
		if len(claimed) == max {
			kept = append(kept, q.rs[i:]...)
			break
		}
		if r.task.isClaimed() {
			stale++ // claimed via another queue, drop
			continue
		}
		if match != nil && !match(r.task) {
			kept = append(kept, r)
			continue
		}
		if r.task.tryClaim() {
			claimed = append(claimed, r.task)
		} else {
			stale++
		}
	}
	// Zero the tail so dropped reservations don't pin their taskRecords.
	for i := len(kept); i < len(q.rs); i++ {
		q.rs[i] = nil
	}
	q.rs = kept
	return claimed, stale
}

// stale counts entries whose task has been claimed elsewhere but which
// haven't been visited by a pull yet. Test/introspection only.
func (q *workerQueue) len() (pending, stale int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range q.rs {
		if r.task.isClaimed() {
			stale++
		} else {
			pending++
		}
	}
	return pending, stale
}

// reservationTable is the exclusive owner of all reservations, keyed by
// worker address. A worker is only ever an address here; nothing about its
// lifecycle is tracked beyond the contents of its queue.
type reservationTable struct {
	mu     sync.Mutex
	queues map[string]*workerQueue
}

func newReservationTable() *reservationTable {
	return &reservationTable{queues: make(map[string]*workerQueue)}
}

// queue returns the worker's queue, creating it on first reference. Only the
// table map lookup is under the table lock; queue mutation locks the queue.
func (t *reservationTable) queue(workerAddr string) *workerQueue {
	t.mu.Lock()
	defer t.mu.Unlock()
	q, ok := t.queues[workerAddr]
	if !ok {
		q = &workerQueue{}
		t.queues[workerAddr] = q
	}
	return q
}

func (t *reservationTable) enqueue(workerAddr string, r *reservation) {
	t.queue(workerAddr).enqueue(r)
}

func (t *reservationTable) workers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var addrs []string
	for addr := range t.queues {
		addrs = append(addrs, addr)
	}
	return addrs
}

// numPending totals unclaimed reservations across all queues. Used by tests
// to assert placement atomicity.
func (t *reservationTable) numPending() int {
	total := 0
	for _, addr := range t.workers() {
		pending, _ := t.queue(addr).len()
		total += pending
	}
	return total
}

func (t *reservationTable) String() string {
	t.mu.Lock()
	n := len(t.queues)
	t.mu.Unlock()
	return fmt.Sprintf("{reservationTable queues:%d}", n)
}
