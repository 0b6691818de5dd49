// Package config parses the json configuration blob handed to the scheduler
// binary. Each section is dispatched on a "Type" key so deployments can
// select implementations without code changes.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/darter-io/darter/cloud/cluster"
	"github.com/darter-io/darter/common/stats"
)

const (
	DefaultNumProbes       = 2
	DefaultMaxTasksPerPull = 1
	DefaultPollInterval    = 5 * time.Second
)

// SchedulerConfig holds the placement engine knobs.
// NumProbes is the probe fan-out d: each task gets a reservation on this
// many candidate workers (capped at pool size). MaxTasksPerPull bounds how
// many launch specs a single pull call may claim.
type SchedulerConfig struct {
	NumProbes       int
	MaxTasksPerPull int
}

// ClusterConfig selects the worker membership source.
// Type "static" uses the fixed Nodes list; "poll" refreshes membership every
// PollIntervalSec seconds from a caller-supplied Fetcher, or from the http
// registry at FetchURL when no Fetcher is given.
type ClusterConfig struct {
	Type            string
	Nodes           []string
	FetchURL        string
	PollIntervalSec int
}

type Config struct {
	Scheduler SchedulerConfig
	Cluster   ClusterConfig
}

var emptyJson = []byte("{}")

// Parse unmarshals the config text, applying defaults for absent sections.
func Parse(text []byte) (*Config, error) {
	if len(text) == 0 {
		text = emptyJson
	}
	c := &Config{
		Scheduler: SchedulerConfig{NumProbes: DefaultNumProbes, MaxTasksPerPull: DefaultMaxTasksPerPull},
		Cluster:   ClusterConfig{Type: "static"},
	}
	if err := json.Unmarshal(text, c); err != nil {
		return nil, fmt.Errorf("couldn't parse top-level config: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Scheduler.NumProbes < 2 {
		return fmt.Errorf("invalid NumProbes:%d. Power-of-d placement requires d >= 2", c.Scheduler.NumProbes)
	}
	if c.Scheduler.MaxTasksPerPull < 1 {
		return fmt.Errorf("invalid MaxTasksPerPull:%d. Must be >= 1", c.Scheduler.MaxTasksPerPull)
	}
	switch c.Cluster.Type {
	case "static", "poll":
	default:
		return fmt.Errorf("%q is not a valid Cluster.Type", c.Cluster.Type)
	}
	return nil
}

func (c *ClusterConfig) PollInterval() time.Duration {
	if c.PollIntervalSec <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSec) * time.Second
}

// CreateCluster builds the membership source described by the config.
// For "poll", fetcher supplies snapshots and must be non-nil.
func (c *ClusterConfig) CreateCluster(fetcher cluster.Fetcher, stat stats.StatsReceiver) (cluster.Cluster, error) {
	switch c.Type {
	case "static":
		nodes := []cluster.Node{}
		for _, addr := range c.Nodes {
			nodes = append(nodes, cluster.NewIdNode(addr))
		}
		return cluster.NewStaticCluster(nodes), nil
	case "poll":
		if fetcher == nil && c.FetchURL != "" {
			fetcher = cluster.MakeHTTPFetcher(c.FetchURL)
		}
		if fetcher == nil {
			return nil, fmt.Errorf("cluster type \"poll\" requires a Fetcher or FetchURL")
		}
		cron, setCh := cluster.MakeFetchCron(fetcher, c.PollInterval(), stat)
		return &polledCluster{Cluster: cluster.NewCluster(nil, setCh), cron: cron}, nil
	}
	return nil, fmt.Errorf("%q is not a valid Cluster.Type", c.Type)
}

// polledCluster stops its fetch cron before the cluster loop so the cron
// can't be left blocked on a snapshot send.
type polledCluster struct {
	cluster.Cluster
	cron interface{ Close() }
}

func (p *polledCluster) Close() error {
	p.cron.Close()
	return p.Cluster.Close()
}
