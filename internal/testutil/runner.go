// Package testutil provides deterministic fakes for pipeline tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
)

// Call records one tool invocation made through a ScriptedRunner.
type Call struct {
	Name string
	Args []string
}

// ScriptedRunner is a pipeline.Runner that records every invocation and
// returns canned results instead of shelling out. It lets pipeline
// tests assert exact argv sequences and exercise failure paths without
// a cross-toolchain on the test host.
//
// Thread-safety: all methods are safe for concurrent use, though the
// pipeline itself is strictly sequential.
type ScriptedRunner struct {
	mu      sync.Mutex
	calls   []Call
	outputs map[string][]byte
	errs    map[string]error
}

// NewScriptedRunner creates an empty runner: every tool succeeds with
// no output until scripted otherwise.
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{
		outputs: make(map[string][]byte),
		errs:    make(map[string]error),
	}
}

// Output scripts the stdout returned for a tool name.
func (r *ScriptedRunner) Output(name string, out []byte) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[name] = out
	return r
}

// Fail scripts a failure for a tool name. The diagnostic stands in for
// the tool's stderr.
func (r *ScriptedRunner) Fail(name, diagnostic string) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[name] = fmt.Errorf("exit status 1\n%s", diagnostic)
	return r
}

// Run implements pipeline.Runner.
func (r *ScriptedRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	return r.outputs[name], nil
}

// Calls returns the recorded invocations in order.
func (r *ScriptedRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallNames returns just the tool names, in invocation order.
func (r *ScriptedRunner) CallNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}
