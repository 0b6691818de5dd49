package server

import (
	log "github.com/sirupsen/logrus"

	"github.com/darter-io/darter/common/stats"
	"github.com/darter-io/darter/scheduler/domain"
)

// pullRendezvous matches a worker's pull to pending reservations at the
// moment the worker has a free slot. It only ever locks the one queue it
// scans; sibling cleanup on other queues happens lazily when those queues
// are next scanned. Internally non-blocking: an empty result means no work
// for this worker right now, and whether to wait or retry is the caller's
// policy, not ours.
type pullRendezvous struct {
	table           *reservationTable
	maxTasksPerPull int
	stat            stats.StatsReceiver
}

func newPullRendezvous(table *reservationTable, maxTasksPerPull int, stat stats.StatsReceiver) *pullRendezvous {
	return &pullRendezvous{table: table, maxTasksPerPull: maxTasksPerPull, stat: stat}
}

// pull claims up to maxTasksPerPull tasks from the worker's queue in FIFO
// order and returns their launch specs. Stale entries visited during the
// scan are discarded; pulling a queue whose tasks were all claimed elsewhere
// is a harmless no-op that leaves the queue usable.
func (pr *pullRendezvous) pull(workerAddr string, match func(*taskRecord) bool) []domain.LaunchSpec {
	defer pr.stat.Latency(stats.SchedPullLatency_ms).Time().Stop()
	pr.stat.Counter(stats.SchedPullsCounter).Inc(1)

	q := pr.table.queue(workerAddr)
	claimed, stale := q.claim(pr.maxTasksPerPull, match)
	if stale > 0 {
		pr.stat.Counter(stats.SchedStaleReservationsCounter).Inc(int64(stale))
	}

	if len(claimed) == 0 {
		pr.stat.Counter(stats.SchedEmptyPullsCounter).Inc(1)
		return nil
	}

	specs := make([]domain.LaunchSpec, 0, len(claimed))
	for _, task := range claimed {
		specs = append(specs, task.launchSpec())
	}
	pr.stat.Counter(stats.SchedTasksLaunchedCounter).Inc(int64(len(specs)))
	log.WithFields(log.Fields{
		"workerAddr": workerAddr,
		"numTasks":   len(specs),
		"firstTask":  specs[0].TaskID.String(),
	}).Info("Fulfilled pull")
	return specs
}
