package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCVMCPServer creates an MCP server with all 4 vocabulary tools registered.
func NewCVMCPServer(svc *CVService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cvgen-vocabulary",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_term",
		Description: "Resolve a controlled-vocabulary term by accession string (e.g. MS:0000082) or search terms by name substring.",
	}, svc.LookupTerm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "is_a",
		Description: "Test whether one term is the same as, or a transitive is_a descendant of, another term. Both terms are given as accession strings.",
	}, svc.IsA)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List the loaded vocabulary sources with their prefixes, versions and term counts.",
	}, svc.ListSources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return counts of sources, terms and relationship edges in the loaded term graph.",
	}, svc.GraphStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the vocabulary MCP tools.
func RunMCPServer(ctx context.Context, svc *CVService, addr string) error {
	server := NewCVMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
