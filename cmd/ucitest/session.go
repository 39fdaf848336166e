package main

import (
	"context"
	"fmt"
	"io"
)

// toolCaller is the slice of the MCP client the session script needs.
// Satisfied by *mcpclient.Client; tests substitute a scripted fake.
type toolCaller interface {
	CallTool(ctx context.Context, name string, arguments map[string]any) (string, error)
}

// session issues a fixed sequence of tool calls and prints each response in
// call order. A failed call stops the sequence; nothing is retried.
type session struct {
	tools toolCaller
	out   io.Writer
}

// runAll prints the Docker status and the test file listing, then runs the
// whole suite.
func (s *session) runAll(ctx context.Context) error {
	fmt.Fprintln(s.out, headerStyle.Render("🚀 MCP Test Server Connected"))
	fmt.Fprintln(s.out, separator())

	fmt.Fprintln(s.out, sectionStyle.Render("📋 Checking Docker environment..."))
	status, err := s.tools.CallTool(ctx, "check_docker_status", map[string]any{})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, status)
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, sectionStyle.Render("📂 Available test files..."))
	listing, err := s.tools.CallTool(ctx, "list_test_files", map[string]any{})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, listing)
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, sectionStyle.Render("🧪 Running all tests..."))
	fmt.Fprintln(s.out, separator())
	result, err := s.tools.CallTool(ctx, "run_tests", map[string]any{
		"verbose": true,
		"rebuild": false,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, result)

	return nil
}

// runSingle runs exactly one test file.
func (s *session) runSingle(ctx context.Context, testFile string) error {
	fmt.Fprintln(s.out, headerStyle.Render("🚀 Running single test: "+testFile))
	fmt.Fprintln(s.out, separator())

	result, err := s.tools.CallTool(ctx, "run_single_test", map[string]any{
		"test_file": testFile,
		"verbose":   true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, result)

	return nil
}

// build builds the test image, bypassing the cache when force is set.
func (s *session) build(ctx context.Context, force bool) error {
	fmt.Fprintln(s.out, headerStyle.Render("🔨 Building Docker test image..."))
	fmt.Fprintln(s.out, separator())

	result, err := s.tools.CallTool(ctx, "build_test_image", map[string]any{
		"force": force,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, result)

	return nil
}
