// Package api serves the Scheduler boundary over HTTP/JSON. This is
// deployment glue around the engine: the engine itself neither knows nor
// cares how these calls arrive.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	cerrors "github.com/darter-io/darter/common/errors"
	"github.com/darter-io/darter/scheduler/domain"
	"github.com/darter-io/darter/scheduler/server"
)

func NewServer(addr string, sched server.Scheduler) *Server {
	return &Server{addr: addr, sched: sched}
}

type Server struct {
	addr  string
	sched server.Scheduler
}

func (s *Server) Serve() error {
	log.Info("Serving scheduler api on ", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/frontend/register", s.handleRegisterFrontend)
	r.Post("/jobs", s.handleSubmitJob)
	r.Post("/frontend/message", s.handleReportFrontendMessage)
	r.Post("/tasks/pull", s.handlePullTasks)
	return r
}

type registerFrontendReq struct {
	App          string `json:"app"`
	CallbackAddr string `json:"callbackAddr"`
}

func (s *Server) handleRegisterFrontend(w http.ResponseWriter, r *http.Request) {
	var req registerFrontendReq
	if !decode(w, r, &req) {
		return
	}
	ok := s.sched.RegisterFrontend(req.App, req.CallbackAddr)
	respond(w, map[string]bool{"ok": ok})
}

type submitJobReq struct {
	App   string `json:"app"`
	Tasks []struct {
		Payload []byte `json:"payload"`
	} `json:"tasks"`
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req submitJobReq
	if !decode(w, r, &req) {
		return
	}
	tasks := make([]domain.TaskDefinition, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, domain.TaskDefinition{Payload: t.Payload})
	}
	requestID, err := s.sched.SubmitJob(req.App, tasks)
	if err != nil {
		// InvalidRequest is the caller's bug; NoWorkersAvailable is a
		// transient cluster condition the caller may retry.
		status := http.StatusInternalServerError
		if cerrors.IsInvalidRequest(err) {
			status = http.StatusBadRequest
		} else if cerrors.IsNoWorkersAvailable(err) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	respond(w, map[string]string{"requestId": requestID})
}

type frontendMessageReq struct {
	App       string `json:"app"`
	RequestID string `json:"requestId"`
	TaskIndex int    `json:"taskIndex"`
	Status    int    `json:"status"`
	Payload   []byte `json:"payload"`
}

func (s *Server) handleReportFrontendMessage(w http.ResponseWriter, r *http.Request) {
	var req frontendMessageReq
	if !decode(w, r, &req) {
		return
	}
	taskID := domain.TaskID{RequestID: req.RequestID, TaskIndex: req.TaskIndex}
	s.sched.ReportFrontendMessage(req.App, taskID, req.Status, req.Payload)
	// Best-effort by contract, a worker's report never fails.
	respond(w, map[string]bool{"ok": true})
}

type pullTasksReq struct {
	WorkerAddr string `json:"workerAddr"`
	RequestID  string `json:"requestId,omitempty"`
}

type launchSpecResp struct {
	RequestID string `json:"requestId"`
	TaskIndex int    `json:"taskIndex"`
	Payload   []byte `json:"payload"`
}

func (s *Server) handlePullTasks(w http.ResponseWriter, r *http.Request) {
	var req pullTasksReq
	if !decode(w, r, &req) {
		return
	}
	var specs []domain.LaunchSpec
	if req.RequestID != "" {
		specs = s.sched.PullTasksForRequest(req.WorkerAddr, req.RequestID)
	} else {
		specs = s.sched.PullTasks(req.WorkerAddr)
	}
	resp := make([]launchSpecResp, 0, len(specs))
	for _, spec := range specs {
		resp = append(resp, launchSpecResp{
			RequestID: spec.TaskID.RequestID,
			TaskIndex: spec.TaskID.TaskIndex,
			Payload:   spec.Payload,
		})
	}
	respond(w, map[string]interface{}{"tasks": resp})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "could not decode request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Could not encode response: ", err)
	}
}
