// Package execx is devkit's only boundary to external processes. Every
// probe and materialization that shells out goes through the Runner
// interface so tests can fake package managers, service managers and
// database tools without invoking them.
package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result captures the outcome of one external command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// PrimaryOutput returns stderr if present, otherwise stdout. Failure
// messages from package managers and database tools usually land on
// stderr, but not reliably.
func (r Result) PrimaryOutput() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner is the capability set steps depend on instead of os/exec.
type Runner interface {
	// Run executes a command, capturing output. A non-zero exit is
	// reported through Result.ExitCode, not through error; error is
	// reserved for the command failing to start at all.
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// RunWithEnv behaves like Run with extra KEY=VALUE pairs appended to
	// the inherited environment (PGPASSWORD and friends).
	RunWithEnv(ctx context.Context, env []string, name string, args ...string) (Result, error)

	// RunStreaming executes a command with stdout/stderr wired through to
	// the operator's terminal while still collecting them, for long
	// installer output the operator should watch scroll by.
	RunStreaming(ctx context.Context, name string, args ...string) (Result, error)

	// RunStreamingIn behaves like RunStreaming with the working directory
	// set to dir and extra KEY=VALUE pairs appended to the environment
	// (the dev server runs inside the generated project with `.env.local`
	// loaded).
	RunStreamingIn(ctx context.Context, dir string, env []string, name string, args ...string) (Result, error)

	// LookPath reports whether a tool is resolvable on the execution path.
	LookPath(name string) bool
}

// RealRunner executes actual commands.
type RealRunner struct{}

// NewRealRunner creates a RealRunner inheriting the process environment.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

var _ Runner = (*RealRunner)(nil)

// Run implements Runner.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return r.RunWithEnv(ctx, nil, name, args...)
}

// RunWithEnv implements Runner.
func (r *RealRunner) RunWithEnv(ctx context.Context, env []string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

// RunStreaming implements Runner.
func (r *RealRunner) RunStreaming(ctx context.Context, name string, args ...string) (Result, error) {
	return r.RunStreamingIn(ctx, "", nil, name, args...)
}

// RunStreamingIn implements Runner.
func (r *RealRunner) RunStreamingIn(ctx context.Context, dir string, env []string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

// LookPath implements Runner.
func (r *RealRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
