package tools

import (
	"context"
	"fmt"

	"docweaver/internal/config"
	"docweaver/internal/crawler"
	"docweaver/internal/fetcher"
	"docweaver/internal/metrics"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// ExtendTool runs the breadth-first crawl and returns the assembled
// knowledge graph. The graph lives only for this invocation.
type ExtendTool struct {
	provider *fetcher.Provider
	cfg      *config.Config
}

// NewExtendTool creates the extend_knowledge_graph tool.
func NewExtendTool(provider *fetcher.Provider, cfg *config.Config) *ExtendTool {
	return &ExtendTool{provider: provider, cfg: cfg}
}

// Definition declares the tool name and parameter schema.
func (t *ExtendTool) Definition() mcp.Tool {
	return mcp.NewTool("extend_knowledge_graph",
		mcp.WithDescription("Crawl a framework's documentation breadth-first and build a knowledge graph of pages, concepts, and API references."),
		mcp.WithString("framework_name",
			mcp.Required(),
			mcp.Description("Name of the framework or package"),
		),
		mcp.WithString("base_url",
			mcp.Required(),
			mcp.Description("Base documentation URL; only links under this prefix are followed"),
		),
		mcp.WithNumber("depth",
			mcp.Description("How many levels deep to crawl"),
			mcp.DefaultNumber(2),
		),
		mcp.WithArray("patterns",
			mcp.Description("URL substrings to include (e.g. ['/api/', '/guide/']); defaults to common documentation sections"),
			mcp.WithStringItems(),
		),
	)
}

// Handle runs the crawl to completion and returns the graph as JSON.
// Individual page failures truncate branches; they never fail the call.
func (t *ExtendTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	framework, err := request.RequireString("framework_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	baseURL, err := request.RequireString("base_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := request.GetInt("depth", t.cfg.DefaultDepth)
	if depth < 0 {
		return mcp.NewToolResultError("depth must be >= 0"), nil
	}
	patterns := request.GetStringSlice("patterns", nil)

	engine, err := t.provider.Engine(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch engine unavailable: %v", err)), nil
	}

	tracker := metrics.NewTracker()
	controller := crawler.NewController(engine, t.cfg.MaxPages, tracker)
	kg := controller.Crawl(ctx, framework, baseURL, depth, patterns)

	logrus.Info("Crawl stats: " + tracker.LogProgress())

	payload, err := kg.JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(payload), nil
}
