package cluster

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	perrors "github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

// MakeHTTPFetcher fetches membership from a registry endpoint that serves a
// JSON array of worker addresses, e.g. ["host1:9090","host2:9090"]. Intended
// for deployments where an external system (service discovery, an ops
// script) maintains the worker list.
func MakeHTTPFetcher(uri string) Fetcher {
	if !strings.Contains(uri, "://") {
		uri = "http://" + uri
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = 3
	client.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Retrying after failed membership fetch: %+v", e)
	}
	return &httpFetcher{uri: uri, client: client}
}

type httpFetcher struct {
	uri    string
	client *pester.Client
}

func (f *httpFetcher) Fetch() ([]Node, error) {
	resp, err := f.client.Get(f.uri)
	if err != nil {
		return nil, perrors.Wrapf(err, "could not fetch membership from %s", f.uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("membership registry at %s returned status %d", f.uri, resp.StatusCode)
	}
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, perrors.Wrap(err, "could not read membership response")
	}
	var addrs []string
	if err := json.Unmarshal(data, &addrs); err != nil {
		return nil, perrors.Wrapf(err, "could not parse membership response %q", data)
	}
	nodes := []Node{}
	for _, addr := range addrs {
		nodes = append(nodes, NewIdNode(addr))
	}
	return nodes, nil
}
