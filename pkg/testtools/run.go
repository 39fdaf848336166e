package testtools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ucitools/ucitest/pkg/cmdexec"
	"github.com/ucitools/ucitest/pkg/toolbox"
)

type runTestsInput struct {
	Verbose      bool   `json:"verbose"`
	SpecificTest string `json:"specific_test"`
	Rebuild      bool   `json:"rebuild"`
}

type runSingleTestInput struct {
	TestFile string `json:"test_file"`
	Verbose  bool   `json:"verbose"`
}

func (s *Suite) runTestsTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "run_tests",
		Description: "Run all UCI config tool tests in dockerized OpenWRT environment",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"verbose":{"type":"boolean","description":"Enable verbose test output","default":false},"specific_test":{"type":"string","description":"Run a specific test file (e.g., 'test_uci_config.lua')"},"rebuild":{"type":"boolean","description":"Force rebuild of Docker image","default":false}}}`),
		Handler:     s.handleRunTests,
	}
}

func (s *Suite) handleRunTests(ctx context.Context, input json.RawMessage) (string, error) {
	var in runTestsInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return "", fmt.Errorf("run_tests: invalid input: %w", err)
		}
	}

	return s.runTests(ctx, in)
}

// runTests drives either the full suite entry point or a single file. Note
// that specific_test is not validated against the test directory here: a bad
// filename surfaces as a container-execution failure, while run_single_test
// validates before delegating.
func (s *Suite) runTests(ctx context.Context, in runTestsInput) (string, error) {
	if reason := s.dockerUnavailable(ctx); reason != "" {
		return "Docker not available: " + reason, nil
	}

	if in.Rebuild {
		if build := s.composeBuild(ctx, true); !build.Success() {
			return "Failed to build Docker image: Build failed", nil
		}
	}

	result := s.runSelected(ctx, in.SpecificTest)

	if in.Verbose {
		s.log.Info("test run finished",
			"specific_test", in.SpecificTest,
			"exit_code", result.ExitCode,
		)
	}

	status := "✅ PASSED"
	summary := "completed successfully"
	if !result.Success() {
		status = "❌ FAILED"
		summary = "failed"
	}

	return fmt.Sprintf(
		"%s - UCI Config Tool Tests\n\nReturn Code: %d\n\n=== TEST OUTPUT ===\n%s\n\n=== SUMMARY ===\nTests %s",
		status,
		result.ExitCode,
		result.CombinedOutput(),
		summary,
	), nil
}

// runSelected runs one test file inside the compose service, or the whole
// suite via the entry-point script when specificTest is empty.
func (s *Suite) runSelected(ctx context.Context, specificTest string) cmdexec.Result {
	if specificTest != "" {
		script := fmt.Sprintf("echo '=== Running %s ===' && lua test/%s", specificTest, specificTest)
		return s.run.Run(ctx, "docker", "compose", "run", "--rm", s.cfg.Service, "sh", "-c", script)
	}

	return s.run.Run(ctx, s.cfg.TestScript)
}

func (s *Suite) runSingleTestTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "run_single_test",
		Description: "Run a single test file in the dockerized environment",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"test_file":{"type":"string","description":"Test file to run (e.g., 'test_uci_config.lua')"},"verbose":{"type":"boolean","description":"Enable verbose output","default":false}},"required":["test_file"]}`),
		Handler:     s.handleRunSingleTest,
	}
}

func (s *Suite) handleRunSingleTest(ctx context.Context, input json.RawMessage) (string, error) {
	var in runSingleTestInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("run_single_test: invalid input: %w", err)
	}

	if in.TestFile == "" {
		return "", fmt.Errorf("run_single_test: test_file is required")
	}

	if _, err := os.Stat(filepath.Join(s.cfg.TestDir, in.TestFile)); err != nil {
		return fmt.Sprintf("Test file not found: %s", in.TestFile), nil
	}

	return s.runTests(ctx, runTestsInput{
		Verbose:      in.Verbose,
		SpecificTest: in.TestFile,
		Rebuild:      false,
	})
}
