// Package testtools exposes the dockerized UCI config test workflow as a
// fixed set of tools: run the whole suite, run one test file, build the test
// image, list test files, and check Docker availability. Every tool is a
// thin wrapper that shells out through a Runner and relays the exit code and
// captured output as text; no handler inspects output content to decide
// pass/fail.
package testtools

import (
	"context"
	"log/slog"

	"github.com/ucitools/ucitest/pkg/cmdexec"
	"github.com/ucitools/ucitest/pkg/toolbox"
)

// Runner executes an external command and reports its outcome. It is
// satisfied by *cmdexec.Runner; tests substitute a scripted fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) cmdexec.Result
}

// Suite holds the project configuration and the runner used by every tool
// handler. It carries no mutable state: handlers are safe to call repeatedly
// and concurrently visible side effects happen only in the external
// processes they drive.
type Suite struct {
	cfg Config
	run Runner
	log *slog.Logger
}

// New creates a Suite. A nil logger disables logging.
func New(cfg Config, run Runner, log *slog.Logger) *Suite {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Suite{cfg: cfg, run: run, log: log}
}

// Tools returns the tool registry in its fixed, stable order.
func (s *Suite) Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(
		s.runTestsTool(),
		s.runSingleTestTool(),
		s.buildTestImageTool(),
		s.listTestFilesTool(),
		s.checkDockerStatusTool(),
	)

	return tb
}
