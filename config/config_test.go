package config

import (
	"testing"
	"time"
)

func Test_Parse_Defaults(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("expected empty config to parse, got %v", err)
	}
	if c.Scheduler.NumProbes != DefaultNumProbes {
		t.Errorf("expected default NumProbes %d, got %d", DefaultNumProbes, c.Scheduler.NumProbes)
	}
	if c.Scheduler.MaxTasksPerPull != DefaultMaxTasksPerPull {
		t.Errorf("expected default MaxTasksPerPull %d, got %d", DefaultMaxTasksPerPull, c.Scheduler.MaxTasksPerPull)
	}
	if c.Cluster.Type != "static" {
		t.Errorf("expected default cluster type static, got %q", c.Cluster.Type)
	}
}

func Test_Parse_Overrides(t *testing.T) {
	text := `{
		"Scheduler": {"NumProbes": 3, "MaxTasksPerPull": 4},
		"Cluster": {"Type": "poll", "PollIntervalSec": 30}
	}`
	c, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("expected config to parse, got %v", err)
	}
	if c.Scheduler.NumProbes != 3 || c.Scheduler.MaxTasksPerPull != 4 {
		t.Errorf("unexpected scheduler config %+v", c.Scheduler)
	}
	if c.Cluster.PollInterval() != 30*time.Second {
		t.Errorf("expected 30s poll interval, got %v", c.Cluster.PollInterval())
	}
}

func Test_Parse_RejectsBadValues(t *testing.T) {
	cases := []string{
		`{"Scheduler": {"NumProbes": 1}}`,
		`{"Scheduler": {"NumProbes": 2, "MaxTasksPerPull": 0}}`,
		`{"Cluster": {"Type": "zookeeper"}}`,
		`{not json`,
	}
	for _, text := range cases {
		if _, err := Parse([]byte(text)); err == nil {
			t.Errorf("expected config %s to be rejected", text)
		}
	}
}

func Test_CreateCluster_Static(t *testing.T) {
	c, err := Parse([]byte(`{"Cluster": {"Type": "static", "Nodes": ["w1:9090", "w2:9090"]}}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cl, err := c.Cluster.CreateCluster(nil, nil)
	if err != nil {
		t.Fatalf("expected static cluster, got %v", err)
	}
	defer cl.Close()
	if got := len(cl.Members()); got != 2 {
		t.Errorf("expected 2 members, got %d", got)
	}
}

func Test_CreateCluster_PollRequiresFetcherOrURL(t *testing.T) {
	cfg := &ClusterConfig{Type: "poll"}
	if _, err := cfg.CreateCluster(nil, nil); err == nil {
		t.Errorf("expected poll cluster without a membership source to fail")
	}

	cfg = &ClusterConfig{Type: "poll", FetchURL: "registry:8080/workers"}
	cl, err := cfg.CreateCluster(nil, nil)
	if err != nil {
		t.Fatalf("expected FetchURL to satisfy poll cluster, got %v", err)
	}
	cl.Close()
}
