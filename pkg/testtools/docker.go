package testtools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ucitools/ucitest/pkg/cmdexec"
	"github.com/ucitools/ucitest/pkg/toolbox"
)

type buildImageInput struct {
	Force bool `json:"force"`
}

func (s *Suite) buildTestImageTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "build_test_image",
		Description: "Build or rebuild the Docker test image",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"force":{"type":"boolean","description":"Force rebuild without using cache","default":false}}}`),
		Handler:     s.handleBuildTestImage,
	}
}

func (s *Suite) handleBuildTestImage(ctx context.Context, input json.RawMessage) (string, error) {
	var in buildImageInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return "", fmt.Errorf("build_test_image: invalid input: %w", err)
		}
	}

	if reason := s.dockerUnavailable(ctx); reason != "" {
		return "Docker not available: " + reason, nil
	}

	result := s.composeBuild(ctx, in.Force)

	status := "✅ Build successful"
	if !result.Success() {
		status = "❌ Build failed"
	}

	return fmt.Sprintf("%s\n\n=== BUILD OUTPUT ===\n%s\n%s", status, result.Stdout, result.Stderr), nil
}

func (s *Suite) checkDockerStatusTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "check_docker_status",
		Description: "Check Docker and Docker Compose availability",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
		Handler:     s.handleCheckDockerStatus,
	}
}

func (s *Suite) handleCheckDockerStatus(ctx context.Context, _ json.RawMessage) (string, error) {
	docker, compose, reason := s.dockerStatus(ctx)

	if reason != "" {
		return fmt.Sprintf(
			"❌ Docker Environment Not Available\n\nError: %s\n\nPlease ensure Docker and Docker Compose are installed and running.",
			reason,
		), nil
	}

	return fmt.Sprintf(
		"✅ Docker Environment Ready\n\nDocker: %s\nDocker Compose: %s\n\nRepository: %s\nTest Script: %s\nDocker Compose File: %s",
		strings.TrimSpace(docker.Stdout),
		strings.TrimSpace(compose.Stdout),
		s.cfg.RepoRoot,
		s.cfg.TestScript,
		s.cfg.ComposeFile,
	), nil
}

// dockerStatus probes docker and docker compose. An empty reason means both
// checks exited zero.
func (s *Suite) dockerStatus(ctx context.Context) (docker, compose cmdexec.Result, reason string) {
	docker = s.run.Run(ctx, "docker", "--version")
	if !docker.Success() {
		return docker, compose, "Docker not found"
	}

	compose = s.run.Run(ctx, "docker", "compose", "version")
	if !compose.Success() {
		return docker, compose, "Docker Compose not found"
	}

	return docker, compose, ""
}

// dockerUnavailable re-checks availability for handlers that are about to
// drive a compose command. Empty means available.
func (s *Suite) dockerUnavailable(ctx context.Context) string {
	_, _, reason := s.dockerStatus(ctx)
	return reason
}

// composeBuild runs docker compose build, bypassing the layer cache when
// force is set.
func (s *Suite) composeBuild(ctx context.Context, force bool) cmdexec.Result {
	args := []string{"compose", "build"}
	if force {
		args = append(args, "--no-cache")
	}

	return s.run.Run(ctx, "docker", args...)
}
