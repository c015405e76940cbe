package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner scripts command outcomes for tests. Keyed by the command name
// joined with its arguments; unscripted commands fail loudly so a test
// cannot silently exercise the wrong path.
type FakeRunner struct {
	mu      sync.Mutex
	results map[string]Result
	errs    map[string]error
	path    map[string]bool
	Calls   []string
}

// NewFakeRunner creates an empty FakeRunner; no tools are on its path.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results: make(map[string]Result),
		errs:    make(map[string]error),
		path:    make(map[string]bool),
	}
}

var _ Runner = (*FakeRunner)(nil)

// Stub scripts the result for an exact command line.
func (f *FakeRunner) Stub(cmdline string, res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[cmdline] = res
}

// StubErr scripts a start failure for an exact command line.
func (f *FakeRunner) StubErr(cmdline string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[cmdline] = err
}

// PutOnPath makes LookPath report the tool as resolvable.
func (f *FakeRunner) PutOnPath(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		f.path[name] = true
	}
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	return f.dispatch(name, args)
}

// RunWithEnv implements Runner; the extra environment is ignored, the
// command line alone selects the scripted result.
func (f *FakeRunner) RunWithEnv(_ context.Context, _ []string, name string, args ...string) (Result, error) {
	return f.dispatch(name, args)
}

// RunStreamingIn implements Runner; directory and environment are ignored.
func (f *FakeRunner) RunStreamingIn(_ context.Context, _ string, _ []string, name string, args ...string) (Result, error) {
	return f.dispatch(name, args)
}

// RunStreaming implements Runner.
func (f *FakeRunner) RunStreaming(_ context.Context, name string, args ...string) (Result, error) {
	return f.dispatch(name, args)
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path[name]
}

func (f *FakeRunner) dispatch(name string, args []string) (Result, error) {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmdline)

	if err, ok := f.errs[cmdline]; ok {
		return Result{}, err
	}
	if res, ok := f.results[cmdline]; ok {
		return res, nil
	}
	return Result{}, fmt.Errorf("fake runner: unscripted command %q", cmdline)
}
