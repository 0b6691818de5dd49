package cluster

import (
	"testing"
	"time"

	"github.com/luci/go-render/render"
)

func Test_StaticCluster_Members(t *testing.T) {
	c := NewStaticCluster(NewIdNodes(3))
	defer c.Close()

	members := c.Members()
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	// Members come back sorted by id.
	for i, want := range []NodeId{"node1", "node2", "node3"} {
		if members[i].Id() != want {
			t.Errorf("member %d: expected %s, got %s", i, want, members[i].Id())
		}
	}
}

func Test_Cluster_SnapshotReplacesMembership(t *testing.T) {
	setCh := make(chan []Node)
	c := NewCluster(NewIdNodes(2), setCh)
	defer c.Close()

	if got := len(c.Members()); got != 2 {
		t.Fatalf("expected 2 initial members, got %d", got)
	}

	setCh <- []Node{NewIdNode("node9")}

	// The set and the follow-up Members request are serviced by the same
	// loop, so ordering is guaranteed once the send returns.
	members := c.Members()
	if len(members) != 1 || members[0].Id() != "node9" {
		t.Errorf("expected snapshot to replace membership, got %s", render.Render(members))
	}
}

func Test_Cluster_EmptySnapshotEmptiesPool(t *testing.T) {
	setCh := make(chan []Node)
	c := NewCluster(NewIdNodes(2), setCh)
	defer c.Close()

	setCh <- nil
	if got := len(c.Members()); got != 0 {
		t.Errorf("expected empty pool after nil snapshot, got %d members", got)
	}
}

type scriptedFetcher struct {
	fetches chan fetchResult
	last    fetchResult
}

type fetchResult struct {
	nodes []Node
	err   error
}

// Fetch returns the next scripted result, or repeats the last one.
func (f *scriptedFetcher) Fetch() ([]Node, error) {
	select {
	case r := <-f.fetches:
		f.last = r
	default:
	}
	return f.last.nodes, f.last.err
}

func Test_FetchCron_FeedsCluster(t *testing.T) {
	f := &scriptedFetcher{fetches: make(chan fetchResult, 2)}
	f.fetches <- fetchResult{nodes: NewIdNodes(2)}

	cron, setCh := MakeFetchCron(f, 10*time.Millisecond, nil)
	defer cron.Close()
	c := NewCluster(nil, setCh)
	defer c.Close()

	deadline := time.After(2 * time.Second)
	for {
		if len(c.Members()) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("cluster never saw the fetched snapshot")
		case <-time.After(time.Millisecond):
		}
	}
}
