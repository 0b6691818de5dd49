package server

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	cerrors "github.com/darter-io/darter/common/errors"
	"github.com/darter-io/darter/common/stats"
	"github.com/darter-io/darter/scheduler/client"
	"github.com/darter-io/darter/scheduler/domain"
)

// completionRouter forwards task status messages one hop to the frontend
// registered for the app. It holds no copy of the message after the
// delivery attempt and never retries; at-least-once delivery, if wanted,
// is the reporting worker's obligation.
type completionRouter struct {
	registry *frontendRegistry
	client   client.FrontendClient
	stat     stats.StatsReceiver
}

func newCompletionRouter(registry *frontendRegistry, fc client.FrontendClient, stat stats.StatsReceiver) *completionRouter {
	return &completionRouter{registry: registry, client: fc, stat: stat}
}

// route resolves the app and makes exactly one delivery attempt. A missing
// frontend returns a NotFound error; the boundary above logs and swallows
// it, since a worker's completion report must never fail the worker.
func (cr *completionRouter) route(app string, msg domain.StatusMessage) error {
	cr.stat.Counter(stats.SchedFrontendMessagesCounter).Inc(1)

	addr, ok := cr.registry.resolve(app)
	if !ok {
		cr.stat.Counter(stats.SchedFrontendNotFoundCounter).Inc(1)
		return cerrors.NewNotFound(fmt.Errorf("no frontend registered for app %q, dropping message for task %s", app, msg.TaskID))
	}

	if err := cr.client.SendStatusMessage(addr, app, msg); err != nil {
		cr.stat.Counter(stats.SchedFrontendDeliveryErrCounter).Inc(1)
		return err
	}

	log.WithFields(log.Fields{
		"app":    app,
		"taskID": msg.TaskID.String(),
		"status": msg.Status,
		"addr":   addr,
	}).Debug("Routed frontend message")
	return nil
}
