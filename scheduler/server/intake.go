package server

import (
	"fmt"
	"sync/atomic"

	uuid "github.com/nu7hatch/gouuid"
)

// requestIdGenerator issues request ids that are unique within the process
// lifetime and, thanks to the random per-process epoch, across restarts too.
// The monotonic counter keeps ids cheap and orders them within a process.
type requestIdGenerator struct {
	epoch   string
	counter uint64
}

func newRequestIdGenerator() *requestIdGenerator {
	id, err := uuid.NewV4()
	for err != nil {
		id, err = uuid.NewV4()
	}
	return &requestIdGenerator{epoch: id.String()[:8]}
}

func (g *requestIdGenerator) next() string {
	return fmt.Sprintf("%s-%d", g.epoch, atomic.AddUint64(&g.counter, 1))
}
