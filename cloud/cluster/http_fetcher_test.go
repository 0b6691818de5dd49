package cluster

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func Test_HTTPFetcher_ParsesAddressList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["host1:9090", "host2:9090"]`))
	}))
	defer ts.Close()

	f := MakeHTTPFetcher(strings.TrimPrefix(ts.URL, "http://"))
	nodes, err := f.Fetch()
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	if len(nodes) != 2 || nodes[0].Id() != "host1:9090" || nodes[1].Id() != "host2:9090" {
		t.Errorf("unexpected nodes: %v", nodes)
	}
}

func Test_HTTPFetcher_EmptyListEmptiesPool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	nodes, err := MakeHTTPFetcher(ts.URL).Fetch()
	if err != nil {
		t.Fatalf("expected empty list to fetch cleanly, got %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("expected no nodes, got %v", nodes)
	}
}

func Test_HTTPFetcher_BadResponseIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	if _, err := MakeHTTPFetcher(ts.URL).Fetch(); err == nil {
		t.Errorf("expected unparseable registry response to error")
	}
}
