// ucitest-server exposes the dockerized UCI config test workflow as MCP
// tools over stdin/stdout. All logging goes to stderr so stdout stays clean
// for the protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ucitools/ucitest/pkg/cmdexec"
	"github.com/ucitools/ucitest/pkg/mcpserver"
	"github.com/ucitools/ucitest/pkg/testtools"
)

const (
	serverName    = "uci-config-test-server"
	serverVersion = "0.1.0"

	defaultConfigFile = "ucitest.yaml"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ucitest-server [flags]\n\nServe UCI config test tools over MCP on stdin/stdout.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "", "path to configuration file (default: ucitest.yaml if present)")
	repoRoot := flag.String("repo-root", ".", "repository root containing test/ and docker-compose.yml")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *repoRoot, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func run(configPath, repoRoot string, verbose bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := resolveConfig(configPath, repoRoot)
	if err != nil {
		return err
	}

	runner := cmdexec.New(cfg.RepoRoot, log)
	suite := testtools.New(cfg, runner, log)

	srv := mcpserver.New(serverName, serverVersion)
	srv.Register(suite.Tools())

	log.Info("serving test tools over MCP",
		"repo_root", cfg.RepoRoot,
		"compose_file", cfg.ComposeFile,
	)

	err = srv.Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolveConfig: explicit flag → ucitest.yaml in the working directory →
// defaults derived from the repo root.
func resolveConfig(configPath, repoRoot string) (testtools.Config, error) {
	if configPath != "" {
		return testtools.LoadConfig(configPath)
	}

	if _, err := os.Stat(defaultConfigFile); err == nil {
		return testtools.LoadConfig(defaultConfigFile)
	}

	return testtools.DefaultConfig(repoRoot), nil
}
