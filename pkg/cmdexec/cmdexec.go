// Package cmdexec runs external commands and captures their outcome in a
// single Result shape. Spawn failures are folded into the same shape as a
// synthetic exit code, so callers never have to branch on whether the
// program ran at all.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	osexec "os/exec"
	"strings"
)

// SpawnFailureCode is the synthetic exit code reported when the external
// process could not be started (missing binary, permissions, resource
// limits).
const SpawnFailureCode = -1

// Result is the complete outcome of one external process run. It is
// immutable once returned.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with code zero. Exit code is
// the sole success signal; output content is never inspected.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// CombinedOutput returns stdout followed by stderr.
func (r Result) CombinedOutput() string {
	return r.Stdout + r.Stderr
}

// Runner executes commands in a fixed working directory.
type Runner struct {
	dir string
	log *slog.Logger
}

// New creates a Runner that executes commands with dir as the working
// directory. A nil logger disables logging.
func New(dir string, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Runner{dir: dir, log: log}
}

// Run spawns the command, waits for it to terminate, and returns its exit
// code with fully drained stdout and stderr. It never returns an error: a
// failure to spawn yields a Result with SpawnFailureCode and the message in
// Stderr. Cancelling ctx kills an in-flight process.
func (r *Runner) Run(ctx context.Context, name string, args ...string) Result {
	r.log.Debug("running command", "command", name, "args", strings.Join(args, " "))

	cmd := osexec.CommandContext(ctx, name, args...) //nolint:gosec // argv comes from the fixed tool registry
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// The process never ran; fold the spawn error into the
			// uniform result shape.
			result.ExitCode = SpawnFailureCode
			result.Stderr = fmt.Sprintf("command execution failed: %v", err)
		}
	}

	r.log.Debug("command finished", "command", name, "exit_code", result.ExitCode)

	return result
}
