package server

import (
	"github.com/darter-io/darter/cloud/cluster"
	"github.com/darter-io/darter/scheduler/domain"
)

// Scheduler is the boundary the transport layer serves over the network.
// The transport owns connection lifecycle and message encoding; everything
// behind this interface is local and non-blocking.
type Scheduler interface {
	// RegisterFrontend records the callback address for an app name,
	// overwriting any previous registration. Always succeeds.
	RegisterFrontend(app string, callbackAddr string) bool

	// SubmitJob validates the job and places reservations for every task,
	// returning the assigned request id. Fails with an InvalidRequest error
	// for an empty task list or unregistered app, and NoWorkersAvailable
	// when the worker pool is empty. Placement is atomic: on failure no
	// reservation exists anywhere.
	SubmitJob(app string, tasks []domain.TaskDefinition) (string, error)

	// ReportFrontendMessage routes a task status message to the frontend
	// registered for the app. Best-effort: never fails the caller.
	ReportFrontendMessage(app string, taskID domain.TaskID, status int, payload []byte)

	// PullTasks claims up to the configured batch of launchable tasks for
	// the worker, oldest reservation first. May return an empty list; the
	// caller decides whether to retry or wait.
	PullTasks(workerAddr string) []domain.LaunchSpec

	// PullTasksForRequest is PullTasks scoped to a single request id.
	// Reservations for other requests keep their queue positions.
	PullTasksForRequest(workerAddr string, requestID string) []domain.LaunchSpec
}

// NodeLister provides the current worker pool to the placement engine.
// cluster.Cluster satisfies this.
type NodeLister interface {
	Members() []cluster.Node
}
