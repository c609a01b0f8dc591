// Package tools implements the MCP tool handlers. Each tool is a struct
// holding its collaborators, exposing Definition() for registration and
// Handle() for invocation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"docweaver/internal/fetcher"

	"github.com/mark3labs/mcp-go/mcp"
)

// CrawlTool fetches a single documentation page and extracts its content.
// No traversal: one URL in, one extraction result out.
type CrawlTool struct {
	provider *fetcher.Provider
}

// NewCrawlTool creates the crawl_documentation tool.
func NewCrawlTool(provider *fetcher.Provider) *CrawlTool {
	return &CrawlTool{provider: provider}
}

// Definition declares the tool name and parameter schema.
func (t *CrawlTool) Definition() mcp.Tool {
	return mcp.NewTool("crawl_documentation",
		mcp.WithDescription("Crawl a technical documentation page and extract structured information."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to crawl (e.g. framework documentation)"),
		),
		mcp.WithString("extract_type",
			mcp.Description("Type of extraction: 'markdown', 'structured', or 'links'"),
			mcp.DefaultString("markdown"),
			mcp.Enum("markdown", "structured", "links"),
		),
	)
}

// Handle performs the single-page fetch. Fetch failures are well-formed
// results with success=false, not protocol errors.
func (t *CrawlTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	extractType := fetcher.ParseExtractType(request.GetString("extract_type", "markdown"))

	engine, err := t.provider.Engine(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch engine unavailable: %v", err)), nil
	}

	result := engine.FetchAndExtract(ctx, url, extractType)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
