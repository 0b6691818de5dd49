// Package client provides the delivery client the completion router uses to
// forward task status messages to a frontend's callback address.
package client

//go:generate mockgen -source=frontend_client.go -package=client -destination=frontend_client_mock.go

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	perrors "github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/darter-io/darter/scheduler/domain"
)

const DefaultHttpTries = 3 // connect-level retries inside one delivery attempt

// FrontendClient delivers one status message to a frontend callback address.
// The router calls this exactly once per message; any retry beyond the
// client's own connect retries belongs to the reporting worker.
type FrontendClient interface {
	SendStatusMessage(callbackAddr string, app string, msg domain.StatusMessage) error
}

type Client interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

func MakePesterClient() *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = DefaultHttpTries
	client.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Retrying after failed attempt: %+v", e)
	}
	return client
}

// MakeHTTPFrontendClient returns a FrontendClient that POSTs messages to
// http://<callbackAddr>/frontend/message as JSON.
func MakeHTTPFrontendClient() FrontendClient {
	return &httpFrontendClient{client: MakePesterClient()}
}

func MakeCustomHTTPFrontendClient(client Client) FrontendClient {
	return &httpFrontendClient{client: client}
}

type httpFrontendClient struct {
	client Client
}

type statusMessageBody struct {
	App       string `json:"app"`
	RequestID string `json:"requestId"`
	TaskIndex int    `json:"taskIndex"`
	Status    int    `json:"status"`
	Payload   []byte `json:"payload"`
}

func (c *httpFrontendClient) SendStatusMessage(callbackAddr string, app string, msg domain.StatusMessage) error {
	body, err := json.Marshal(statusMessageBody{
		App:       app,
		RequestID: msg.TaskID.RequestID,
		TaskIndex: msg.TaskID.TaskIndex,
		Status:    msg.Status,
		Payload:   msg.Payload,
	})
	if err != nil {
		return perrors.Wrap(err, "could not marshal status message")
	}

	uri := callbackAddr
	if !strings.Contains(uri, "://") {
		uri = "http://" + uri
	}
	uri = strings.TrimSuffix(uri, "/") + "/frontend/message"

	req, err := http.NewRequest("POST", uri, bytes.NewReader(body))
	if err != nil {
		return perrors.Wrapf(err, "could not build request for %s", uri)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return perrors.Wrapf(err, "could not deliver status message to %s", uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("frontend at %s returned status %d", uri, resp.StatusCode)
	}
	return nil
}
