package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucitools/ucitest/pkg/cmdexec"
	"github.com/ucitools/ucitest/pkg/testtools"
	"github.com/ucitools/ucitest/pkg/toolbox"
)

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

func newTestTool(name string, h toolbox.Handler) toolbox.Tool {
	return toolbox.Tool{
		Name:        name,
		Description: "Test tool: " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler:     h,
	}
}

// setupTestClient creates a Server with the given registry, connects an SDK
// client via in-memory transports, and returns the client session. The
// server runs in a background goroutine tied to t.Cleanup.
func setupTestClient(t *testing.T, tb *toolbox.ToolBox) *mcp.ClientSession {
	t.Helper()

	s := New("test-server", "1.0.0")
	s.Register(tb)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func registry(tools ...toolbox.Tool) *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(tools...)

	return tb
}

func TestListTools(t *testing.T) {
	session := setupTestClient(t, registry(
		newTestTool("echo", echoHandler),
		newTestTool("fail", echoHandler),
	))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 2)
}

func TestToolCallSuccess(t *testing.T) {
	session := setupTestClient(t, registry(newTestTool("echo", echoHandler)))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"msg": "hello"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"msg":"hello"}`, tc.Text)
}

func TestToolCallHandlerError(t *testing.T) {
	session := setupTestClient(t, registry(newTestTool("fail", func(_ context.Context, _ json.RawMessage) (string, error) {
		return "", errors.New("tool failed")
	})))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "fail",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "tool failed", tc.Text)
}

func TestToolCallNotFound(t *testing.T) {
	session := setupTestClient(t, registry())

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "missing",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestContextCancellation(t *testing.T) {
	s := New("srv", "1.0.0")
	serverTransport, _ := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.run(ctx, serverTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

// okRunner answers every command with a zero exit so suite tools exercise
// their success paths end to end.
type okRunner struct{}

func (okRunner) Run(_ context.Context, _ string, _ ...string) cmdexec.Result {
	return cmdexec.Result{ExitCode: 0, Stdout: "ok\n"}
}

// Every registered suite tool must answer a call with at least one text
// block, whatever the arguments resolve to.
func TestSuiteToolsAlwaysRespond(t *testing.T) {
	suite := testtools.New(testtools.DefaultConfig(t.TempDir()), okRunner{}, nil)
	session := setupTestClient(t, suite.Tools())

	args := map[string]map[string]any{
		"run_tests":           {},
		"run_single_test":     {"test_file": "test_missing.lua"},
		"build_test_image":    {"force": true},
		"list_test_files":     {},
		"check_docker_status": {},
	}

	for name, a := range args {
		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      name,
			Arguments: a,
		})
		require.NoError(t, err, name)
		require.NotEmpty(t, result.Content, name)

		tc, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, name)
		assert.NotEmpty(t, tc.Text, name)
	}
}
