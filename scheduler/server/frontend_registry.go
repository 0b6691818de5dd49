package server

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// frontendRegistry owns the app name -> callback address mapping.
// App names are not globally unique; the last registered address wins.
// There is no deregistration: stale entries are overwritten, not collected.
type frontendRegistry struct {
	mu        sync.RWMutex
	frontends map[string]string
}

func newFrontendRegistry() *frontendRegistry {
	return &frontendRegistry{frontends: make(map[string]string)}
}

func (r *frontendRegistry) register(app, callbackAddr string) {
	r.mu.Lock()
	prev, existed := r.frontends[app]
	r.frontends[app] = callbackAddr
	r.mu.Unlock()
	if existed && prev != callbackAddr {
		log.WithFields(log.Fields{
			"app":      app,
			"prevAddr": prev,
			"newAddr":  callbackAddr,
		}).Info("Frontend re-registered, overwriting callback address")
	}
}

func (r *frontendRegistry) resolve(app string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.frontends[app]
	return addr, ok
}
