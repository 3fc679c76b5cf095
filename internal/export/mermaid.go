package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmsio/cvgen/cvterm"
	"github.com/openmsio/cvgen/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a graph store.
// Terms are grouped by vocabulary prefix; IS_A edges become solid arrows,
// PART_OF edges dotted ones.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	sources, err := store.GetSources(ctx)
	if err != nil {
		return "", fmt.Errorf("get sources: %w", err)
	}

	terms, err := store.QueryTerms(ctx, "", 0)
	if err != nil {
		return "", fmt.Errorf("query terms: %w", err)
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build code → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[cvterm.CVID]string)
	nextID := 0
	getID := func(code cvterm.CVID) string {
		if id, ok := nodeIDs[code]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[code] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Emit one subgraph per vocabulary, terms in store order.
	for i, src := range sources {
		sb.WriteString(fmt.Sprintf("  subgraph NS%d[\"%s %s\"]\n", i, src.Prefix, src.Version))
		for _, t := range terms {
			if t.Prefix != src.Prefix {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s[\"%s %.40s\"]\n", getID(t.Code), t.ID, t.Name))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range edges {
		arrow := "-->"
		if e.Kind == graph.EdgeKindPartOf {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", getID(e.Child), arrow, getID(e.Parent)))
	}

	return sb.String(), nil
}
