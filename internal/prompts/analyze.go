// Package prompts implements the MCP prompt templates.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// AnalyzePrompt generates the instructional prompt guiding a caller through
// analyzing a framework with the crawl tools. Pure templating, no logic.
type AnalyzePrompt struct{}

// NewAnalyzePrompt creates the analyze_framework prompt.
func NewAnalyzePrompt() *AnalyzePrompt {
	return &AnalyzePrompt{}
}

// Definition declares the prompt name and arguments.
func (p *AnalyzePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("analyze_framework",
		mcp.WithPromptDescription("Generate a prompt for analyzing a new framework via its documentation"),
		mcp.WithArgument("framework_name",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("Name of the framework"),
		),
		mcp.WithArgument("documentation_url",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("URL to the framework's documentation"),
		),
	)
}

// Handle renders the template with the caller-supplied arguments.
func (p *AnalyzePrompt) Handle(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	framework := request.Params.Arguments["framework_name"]
	if framework == "" {
		return nil, fmt.Errorf("framework_name is required")
	}
	docURL := request.Params.Arguments["documentation_url"]
	if docURL == "" {
		return nil, fmt.Errorf("documentation_url is required")
	}

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Framework analysis plan for %s", framework),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(Render(framework, docURL))),
		},
	), nil
}

// Render formats the fixed instructional template.
func Render(framework, docURL string) string {
	return fmt.Sprintf(`Please analyze the %s framework by:

1. First, use the extend_knowledge_graph tool with these parameters:
   - framework_name: %q
   - base_url: %q
   - depth: 2
   - patterns: ["/api/", "/guide/", "/tutorial/"]

2. Then, summarize:
   - Core concepts and architecture
   - Main APIs and their purposes
   - Common use patterns
   - Integration points with other tools

3. Finally, suggest how this framework could be useful in our current project context.
`, framework, framework, docURL)
}
