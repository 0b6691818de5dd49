package cluster

import (
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"

	"github.com/darter-io/darter/common/stats"
)

// Returns a full list of visible nodes.
type Fetcher interface {
	Fetch() ([]Node, error)
}

type fetchCron struct {
	tickCh <-chan time.Time
	f      Fetcher
	outCh  chan []Node
	closer chan struct{}
	stat   stats.StatsReceiver
}

// MakeFetchCron polls the fetcher every interval and sends full membership
// snapshots on the returned channel, suitable for NewCluster's setCh.
// A failed fetch is retried with exponential backoff within the interval
// before giving up until the next tick; the last good state stays in effect.
func MakeFetchCron(f Fetcher, interval time.Duration, stat stats.StatsReceiver) (*fetchCron, chan []Node) {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	ch := make(chan []Node)
	c := &fetchCron{
		tickCh: time.NewTicker(interval).C,
		f:      f,
		outCh:  ch,
		closer: make(chan struct{}),
		stat:   stat,
	}
	go c.loop(interval)
	return c, ch
}

func (c *fetchCron) loop(interval time.Duration) {
	for {
		select {
		case <-c.tickCh:
			nodes, err := c.fetchWithRetry(interval)
			if err != nil {
				c.stat.Counter(stats.ClusterFetchErrCounter).Inc(1)
				log.Errorf("Fetching cluster membership failed, keeping last good state: %v", err)
				continue
			}
			c.stat.Gauge(stats.ClusterAvailableNodes).Update(int64(len(nodes)))
			c.outCh <- nodes
		case <-c.closer:
			close(c.outCh)
			return
		}
	}
}

func (c *fetchCron) fetchWithRetry(interval time.Duration) (nodes []Node, err error) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = interval / 2
	backoff.Retry(func() error {
		nodes, err = c.f.Fetch()
		return err
	}, b)
	return nodes, err
}

func (c *fetchCron) Close() {
	close(c.closer)
}
