package server

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	cerrors "github.com/darter-io/darter/common/errors"
	"github.com/darter-io/darter/common/log/hooks"
	"github.com/darter-io/darter/common/stats"
	"github.com/darter-io/darter/scheduler/client"
	"github.com/darter-io/darter/scheduler/domain"
)

const (
	// Probe fan-out if the config leaves it unset. d=2 already captures most
	// of the queueing-delay win of the power-of-d strategy.
	DefaultNumProbes = 2

	// A pull redeems one reservation unless the deployment opts into batching.
	DefaultMaxTasksPerPull = 1
)

// Used to get proper logging from tests...
func init() {
	if loglevel := os.Getenv("DARTER_LOGLEVEL"); loglevel != "" {
		level, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Error(err)
			return
		}
		log.SetLevel(level)
		log.AddHook(hooks.NewContextHook())
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

// SchedulerConfig variables read at initialization.
// NumProbes - candidate workers per task (the d in power-of-d), >= 2.
// MaxTasksPerPull - upper bound on launch specs returned by one pull call.
type SchedulerConfig struct {
	NumProbes       int
	MaxTasksPerPull int
}

// placementScheduler ties the components together: intake validation,
// request id assignment, probe placement into the reservation table, pull
// rendezvous, and completion routing. Shared mutable state is confined to
// the frontend registry map, the per-worker queues, and the id counter; all
// methods are safe for concurrent use by many frontends and workers.
type placementScheduler struct {
	config     SchedulerConfig
	nodes      NodeLister
	registry   *frontendRegistry
	table      *reservationTable
	placer     *placementEngine
	rendezvous *pullRendezvous
	router     *completionRouter
	idGen      *requestIdGenerator
	stat       stats.StatsReceiver
}

// NewPlacementScheduler creates the engine. The NodeLister supplies the
// worker pool at each submit; the FrontendClient delivers status callbacks.
func NewPlacementScheduler(
	nodes NodeLister,
	fc client.FrontendClient,
	config SchedulerConfig,
	stat stats.StatsReceiver,
) Scheduler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	if config.NumProbes < 2 {
		config.NumProbes = DefaultNumProbes
	}
	if config.MaxTasksPerPull < 1 {
		config.MaxTasksPerPull = DefaultMaxTasksPerPull
	}

	table := newReservationTable()
	registry := newFrontendRegistry()
	s := &placementScheduler{
		config:     config,
		nodes:      nodes,
		registry:   registry,
		table:      table,
		placer:     newPlacementEngine(table, config.NumProbes, stat),
		rendezvous: newPullRendezvous(table, config.MaxTasksPerPull, stat),
		router:     newCompletionRouter(registry, fc, stat),
		idGen:      newRequestIdGenerator(),
		stat:       stat,
	}
	log.WithFields(log.Fields{
		"numProbes":       config.NumProbes,
		"maxTasksPerPull": config.MaxTasksPerPull,
	}).Info("Created placement scheduler")
	return s
}

func (s *placementScheduler) RegisterFrontend(app string, callbackAddr string) bool {
	s.stat.Counter(stats.SchedFrontendRegistrationsCounter).Inc(1)
	s.registry.register(app, callbackAddr)
	return true
}

// SubmitJob rejects fast (empty task list, unknown app, empty worker pool)
// before any reservation is created, so a failed submit leaves no partial
// state anywhere. On success every task has reservations on its candidate
// workers before the request id is returned.
func (s *placementScheduler) SubmitJob(app string, tasks []domain.TaskDefinition) (string, error) {
	defer s.stat.Latency(stats.SchedSubmitLatency_ms).Time().Stop()
	s.stat.Counter(stats.SchedJobRequestsCounter).Inc(1)

	if err := domain.ValidateTasks(tasks); err != nil {
		s.stat.Counter(stats.SchedInvalidJobsCounter).Inc(1)
		return "", cerrors.NewInvalidRequest(err)
	}
	if _, ok := s.registry.resolve(app); !ok {
		// Reject rather than accept a job whose results could never be
		// delivered.
		s.stat.Counter(stats.SchedInvalidJobsCounter).Inc(1)
		return "", cerrors.NewInvalidRequest(fmt.Errorf("no frontend registered for app %q", app))
	}

	nodes := s.nodes.Members()
	if len(nodes) == 0 {
		s.stat.Counter(stats.SchedNoWorkersCounter).Inc(1)
		return "", cerrors.NewNoWorkersAvailable(fmt.Errorf("no workers available to place %d tasks for app %q", len(tasks), app))
	}

	requestID := s.idGen.next()
	records := make([]*taskRecord, 0, len(tasks))
	for i, td := range tasks {
		records = append(records, &taskRecord{
			id:      domain.TaskID{RequestID: requestID, TaskIndex: i},
			payload: td.Payload,
		})
	}
	s.placer.place(requestID, records, nodes)

	s.stat.Counter(stats.SchedJobsCounter).Inc(1)
	log.WithFields(log.Fields{
		"requestID": requestID,
		"app":       app,
		"numTasks":  len(tasks),
	}).Info("Job submitted")
	return requestID, nil
}

func (s *placementScheduler) ReportFrontendMessage(app string, taskID domain.TaskID, status int, payload []byte) {
	msg := domain.StatusMessage{TaskID: taskID, Status: status, Payload: payload}
	if err := s.router.route(app, msg); err != nil {
		// Best-effort by contract; the result is dropped and the anomaly
		// logged, the worker's report must not fail.
		log.WithFields(log.Fields{
			"app":    app,
			"taskID": taskID.String(),
			"err":    err,
		}).Warn("Could not route frontend message")
	}
}

func (s *placementScheduler) PullTasks(workerAddr string) []domain.LaunchSpec {
	return s.rendezvous.pull(workerAddr, nil)
}

func (s *placementScheduler) PullTasksForRequest(workerAddr string, requestID string) []domain.LaunchSpec {
	return s.rendezvous.pull(workerAddr, func(t *taskRecord) bool {
		return t.id.RequestID == requestID
	})
}
