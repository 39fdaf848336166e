// Package mcpclient is the session side of the tool protocol: it spawns the
// server as a subprocess, performs the MCP handshake, and issues
// listTools/callTool requests over the child's stdin/stdout.
package mcpclient

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Client is a connected MCP session. Calls are issued one at a time; no
// call is retried.
type Client struct {
	client  *mcp.Client
	session *mcp.ClientSession
}

// New spawns the server command and returns a connected client. The SDK
// performs the initialization handshake during Connect.
func New(ctx context.Context, name, version, command string, args ...string) (*Client, error) {
	transport := &mcp.CommandTransport{
		Command: exec.Command(command, args...), //nolint:gosec // the server command is caller-provided by design
	}

	return newFromTransport(ctx, name, version, transport)
}

// newFromTransport connects over the given transport. Tests use it with an
// InMemoryTransport.
func newFromTransport(ctx context.Context, name, version string, transport mcp.Transport) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: connect: %w", err)
	}

	return &Client{client: client, session: session}, nil
}

// ListTools returns the names of the tools the server advertises.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: list tools: %w", err)
	}

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	return names, nil
}

// CallTool invokes a named tool and returns the joined text content of its
// response. A response flagged IsError is surfaced as an error carrying
// that text.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (string, error) {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: arguments,
	})
	if err != nil {
		return "", fmt.Errorf("mcpclient: call tool %s: %w", name, err)
	}

	text := extractText(result)

	if result.IsError {
		return "", fmt.Errorf("mcpclient: tool %s: %s", name, text)
	}

	return text, nil
}

// Close terminates the session. The SDK owns the subprocess lifecycle and
// escalates from closing stdin through SIGTERM/SIGKILL on its own.
func (c *Client) Close() error {
	return c.session.Close()
}

// extractText joins all TextContent blocks with newlines.
func extractText(result *mcp.CallToolResult) string {
	var texts []string
	for _, item := range result.Content {
		if tc, ok := item.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	return strings.Join(texts, "\n")
}
