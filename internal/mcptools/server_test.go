package mcptools

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports. It returns the connected client session.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc := newTestService(t)
	server := NewCVMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

// TestMCPListTools verifies that the MCP server exposes exactly 4 tools with
// the expected names.
func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	result, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	require.Len(t, result.Tools, 4, "expected 4 registered tools")

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	expected := []string{
		"graph_stats",
		"is_a",
		"list_sources",
		"lookup_term",
	}
	assert.Equal(t, expected, names)
}

// TestMCPLookupTerm calls the lookup_term tool via the MCP client-server
// transport and checks the structured result.
func TestMCPLookupTerm(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "lookup_term",
		Arguments: LookupTermInput{ID: "MS:0000264"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "lookup_term should not return an error")

	require.NotNil(t, result.StructuredContent, "expected structured content from lookup_term")

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output LookupTermOutput
	require.NoError(t, json.Unmarshal(raw, &output))

	require.Equal(t, 1, output.Total)
	assert.Equal(t, "ion trap", output.Terms[0].Name)
}

// TestMCPIsA exercises the is_a tool over the transport.
func TestMCPIsA(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "is_a",
		Arguments: IsAInput{Child: "MS:0000082", Parent: "MS:0000001"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "is_a should not return an error")

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var output IsAOutput
	require.NoError(t, json.Unmarshal(raw, &output))

	assert.True(t, output.IsA)
}

// TestMCPCallUnknownTool verifies that calling a non-existent tool returns an
// error.
func TestMCPCallUnknownTool(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})

	// The MCP SDK may return an error at the protocol level or set IsError on
	// the result. Accept either behavior.
	if err != nil {
		// Protocol-level error is acceptable for unknown tools.
		return
	}

	require.NotNil(t, result)
	assert.True(t, result.IsError, "calling an unknown tool should set IsError")
}
