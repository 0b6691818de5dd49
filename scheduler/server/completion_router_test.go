package server

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	cerrors "github.com/darter-io/darter/common/errors"
	"github.com/darter-io/darter/common/stats"
	"github.com/darter-io/darter/scheduler/client"
	"github.com/darter-io/darter/scheduler/domain"
)

func Test_CompletionRouter_DeliversToRegisteredFrontend(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	registry := newFrontendRegistry()
	registry.register("appA", "hostA:1234")

	msg := domain.StatusMessage{
		TaskID:  domain.TaskID{RequestID: "req1", TaskIndex: 0},
		Status:  0,
		Payload: []byte("result"),
	}

	clientMock := client.NewMockFrontendClient(mockCtrl)
	clientMock.EXPECT().SendStatusMessage("hostA:1234", "appA", msg).Return(nil)

	router := newCompletionRouter(registry, clientMock, stats.NilStatsReceiver())
	if err := router.route("appA", msg); err != nil {
		t.Errorf("expected delivery to succeed, got %v", err)
	}
}

func Test_CompletionRouter_UnknownAppIsNotFound(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// No SendStatusMessage expectation: the client must not be called.
	clientMock := client.NewMockFrontendClient(mockCtrl)
	router := newCompletionRouter(newFrontendRegistry(), clientMock, stats.NilStatsReceiver())

	err := router.route("ghostApp", domain.StatusMessage{})
	if !cerrors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

// ensures a delivery failure is surfaced once and not retried by the router
func Test_CompletionRouter_NoRetryOnDeliveryError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	registry := newFrontendRegistry()
	registry.register("appA", "hostA:1234")

	msg := domain.StatusMessage{TaskID: domain.TaskID{RequestID: "req1", TaskIndex: 0}}
	clientMock := client.NewMockFrontendClient(mockCtrl)
	clientMock.EXPECT().SendStatusMessage("hostA:1234", "appA", msg).
		Return(errors.New("connection refused"))

	router := newCompletionRouter(registry, clientMock, stats.NilStatsReceiver())
	if err := router.route("appA", msg); err == nil {
		t.Errorf("expected delivery error to be surfaced")
	}
}
