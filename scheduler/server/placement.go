package server

import (
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	cc "github.com/darter-io/darter/cloud/cluster"
	"github.com/darter-io/darter/common/stats"
)

// placementEngine creates reservations; it never transitions or removes
// them, that's the pull rendezvous' job. For every task it picks numProbes
// candidate workers uniformly at random without replacement (capped at pool
// size) and enqueues a pending reservation on each. Whichever candidate goes
// idle first claims the task; the rest go stale.
type placementEngine struct {
	table     *reservationTable
	numProbes int
	stat      stats.StatsReceiver

	mu sync.Mutex // guards r, rand.Rand is not concurrency-safe
	r  *rand.Rand
}

func newPlacementEngine(table *reservationTable, numProbes int, stat stats.StatsReceiver) *placementEngine {
	return &placementEngine{
		table:     table,
		numProbes: numProbes,
		stat:      stat,
		r:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// place enqueues reservations for every task of the job. The caller has
// already verified the pool is non-empty, so nothing below can fail and
// placement is all-or-nothing. At most one queue lock is held at a time;
// placement never blocks on anything but those appends.
func (p *placementEngine) place(requestID string, tasks []*taskRecord, nodes []cc.Node) {
	for _, task := range tasks {
		candidates := p.pickCandidates(nodes)
		for _, node := range candidates {
			p.table.enqueue(string(node.Id()), &reservation{task: task})
		}
		p.stat.Counter(stats.SchedReservationsCounter).Inc(int64(len(candidates)))
	}
	p.stat.Gauge(stats.SchedWorkerPoolSizeGauge).Update(int64(len(nodes)))
	log.WithFields(log.Fields{
		"requestID": requestID,
		"numTasks":  len(tasks),
		"poolSize":  len(nodes),
		"numProbes": p.numProbes,
	}).Info("Placed reservations")
}

// pickCandidates returns min(numProbes, len(nodes)) distinct nodes chosen
// uniformly at random.
func (p *placementEngine) pickCandidates(nodes []cc.Node) []cc.Node {
	d := p.numProbes
	if d > len(nodes) {
		d = len(nodes)
	}
	p.mu.Lock()
	idx := p.r.Perm(len(nodes))
	p.mu.Unlock()

	picked := make([]cc.Node, 0, d)
	for _, i := range idx[:d] {
		picked = append(picked, nodes[i])
	}
	return picked
}
