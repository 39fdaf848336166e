// ucitest sequences calls to the UCI config test tools served by
// ucitest-server. It spawns the server as a subprocess, speaks MCP over the
// child's stdin/stdout, and prints each tool response in call order.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ucitools/ucitest/pkg/mcpclient"
)

const (
	clientName    = "ucitest"
	clientVersion = "0.1.0"
)

type options struct {
	serverCmd  string
	serverArgs []string
	envFile    string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ucitest",
		Short: "Run UCI config tool tests through the MCP test server",
		Long: `ucitest drives the dockerized UCI config test suite through an MCP
server. Without a command it checks the Docker environment, lists the
available test files, and runs the full suite.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadDotEnv(opts.envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				return s.runAll(ctx)
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.serverCmd, "server", "ucitest-server", "server command to spawn")
	root.PersistentFlags().StringArrayVar(&opts.serverArgs, "server-arg", nil, "argument passed to the server command (repeatable)")
	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")

	root.AddCommand(newTestCmd(opts), newBuildCmd(opts))

	return root
}

func newTestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "test [file]",
		Short: "Run all tests, or a single test file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if len(args) == 1 {
					return s.runSingle(ctx, args[0])
				}
				return s.runAll(ctx)
			})
		},
	}
}

func newBuildCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the Docker test image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				return s.build(ctx, force)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "force rebuild without using cache")

	return cmd
}

// withSession spawns the server, connects, runs fn, and closes the session.
func withSession(cmd *cobra.Command, opts *options, fn func(context.Context, *session) error) error {
	ctx := cmd.Context()

	client, err := mcpclient.New(ctx, clientName, clientVersion, opts.serverCmd, opts.serverArgs...)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", opts.serverCmd, err)
	}
	defer func() { _ = client.Close() }()

	return fn(ctx, &session{tools: client, out: cmd.OutOrStdout()})
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
