// Package resources implements the MCP read-only resource handlers.
package resources

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// graphSnapshot is the stateless shape returned by the knowledge_graph
// resource. Graphs are volatile per-invocation structures, so without a
// persistence collaborator the snapshot is always empty.
type graphSnapshot struct {
	Frameworks  []string `json:"frameworks"`
	TotalNodes  int      `json:"total_nodes"`
	LastUpdated *string  `json:"last_updated"`
}

// Handler serves the knowledge_graph resource.
type Handler struct{}

// NewHandler creates the resource handler.
func NewHandler() *Handler {
	return &Handler{}
}

// KnowledgeGraphResource declares the knowledge_graph resource.
func (h *Handler) KnowledgeGraphResource() mcp.Resource {
	return mcp.NewResource(
		"knowledge_graph",
		"Knowledge Graph",
		mcp.WithResourceDescription("Current state of the documentation knowledge graph"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleKnowledgeGraph returns the JSON snapshot.
func (h *Handler) HandleKnowledgeGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := json.Marshal(graphSnapshot{
		Frameworks: []string{},
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}
