package cluster

import (
	"sort"
)

// Cluster represents the current set of worker nodes.
type Cluster interface {
	// Members returns the current members.
	Members() []Node
	// Stop monitoring this cluster
	Close() error
}

type simpleCluster struct {
	nodes map[NodeId]Node
	setCh chan []Node
	reqCh chan chan []Node
}

// NewCluster creates a cluster seeded with the given state. If setCh is
// non-nil, full membership snapshots received on it replace the current
// state (typically fed by a fetchCron). Closing setCh shuts the loop down.
func NewCluster(state []Node, setCh chan []Node) Cluster {
	c := &simpleCluster{
		nodes: map[NodeId]Node{},
		setCh: setCh,
		reqCh: make(chan chan []Node),
	}
	c.set(state)
	go c.loop()
	return c
}

// NewStaticCluster creates a cluster whose membership never changes.
func NewStaticCluster(state []Node) Cluster {
	return NewCluster(state, nil)
}

func (c *simpleCluster) Members() []Node {
	ch := make(chan []Node)
	c.reqCh <- ch
	return <-ch
}

func (c *simpleCluster) Close() error {
	close(c.reqCh)
	return nil
}

func (c *simpleCluster) set(nodes []Node) {
	c.nodes = map[NodeId]Node{}
	for _, n := range nodes {
		c.nodes[n.Id()] = n
	}
}

func (c *simpleCluster) loop() {
	for {
		select {
		case nodes, ok := <-c.setCh:
			if !ok {
				c.setCh = nil
				continue
			}
			c.set(nodes)
		case req, ok := <-c.reqCh:
			if !ok {
				return
			}
			req <- c.current()
		}
	}
}

func (c *simpleCluster) current() []Node {
	var r []Node
	for _, v := range c.nodes {
		r = append(r, v)
	}
	sort.Sort(NodeSorter(r))
	return r
}
