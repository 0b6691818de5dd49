package server

import (
	"testing"
)

func Test_FrontendRegistry_RegisterAndResolve(t *testing.T) {
	r := newFrontendRegistry()

	if _, ok := r.resolve("appA"); ok {
		t.Errorf("expected resolve to miss before registration")
	}

	r.register("appA", "hostA:1234")
	addr, ok := r.resolve("appA")
	if !ok || addr != "hostA:1234" {
		t.Errorf("expected hostA:1234, got %q (ok=%t)", addr, ok)
	}
}

// ensures the last registered address wins for a given app name
func Test_FrontendRegistry_LastRegistrationWins(t *testing.T) {
	r := newFrontendRegistry()
	r.register("appA", "hostA:1234")
	r.register("appA", "hostB:5678")

	addr, ok := r.resolve("appA")
	if !ok || addr != "hostB:5678" {
		t.Errorf("expected overwrite to hostB:5678, got %q (ok=%t)", addr, ok)
	}
}
