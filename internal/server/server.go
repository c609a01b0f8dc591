// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts, and resources that depend on them.
// No crawl logic lives here, only wiring.
package server

import (
	"docweaver/internal/config"
	"docweaver/internal/fetcher"
	"docweaver/internal/prompts"
	"docweaver/internal/resources"
	"docweaver/internal/tools"
	"docweaver/internal/version"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// New creates the MCP server with all tools, the knowledge_graph resource,
// and the analyze_framework prompt registered.
//
// The returned cleanup function releases the shared fetch engine and must be
// called on shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*server.MCPServer, func()) {
	provider := fetcher.NewProvider(cfg)

	s := server.NewMCPServer(
		"docweaver",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	crawlTool := tools.NewCrawlTool(provider)
	s.AddTool(crawlTool.Definition(), crawlTool.Handle)

	extendTool := tools.NewExtendTool(provider, cfg)
	s.AddTool(extendTool.Definition(), extendTool.Handle)

	resourceHandler := resources.NewHandler()
	s.AddResource(resourceHandler.KnowledgeGraphResource(), resourceHandler.HandleKnowledgeGraph)

	analyzePrompt := prompts.NewAnalyzePrompt()
	s.AddPrompt(analyzePrompt.Definition(), analyzePrompt.Handle)

	cleanup := func() {
		if err := provider.Close(); err != nil {
			logrus.Warnf("Fetch engine cleanup failed: %v", err)
		}
	}

	return s, cleanup
}

// serverInstructions tells the connected agent how to use the tools.
func serverInstructions() string {
	return `DocWeaver crawls technical documentation sites and builds knowledge graphs.

Use crawl_documentation to fetch and extract a single page:
- extract_type "markdown" for readable page text
- extract_type "structured" for concepts, code examples, and API methods
- extract_type "links" to list the page's hyperlinks

Use extend_knowledge_graph to explore a whole documentation site breadth-first.
It follows links under base_url matching the given patterns (or common
documentation sections by default), visits at most 50 pages, and returns a
graph of pages with "references" edges between them.

The graph is rebuilt on every call and is not persisted between calls.`
}
