package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	capture := &pageCapture{
		URL:             "https://x.com/docs/intro",
		Title:           "Introduction",
		MetaDescription: "Getting started with the framework.",
		Blocks: []block{
			{Kind: blockHeading, Level: 2, Text: "Installation"},
			{Kind: blockParagraph, Text: "Install via the package manager."},
			{Kind: blockCode, Text: "npm install example"},
			{Kind: blockHeading, Level: 3, Text: "Requirements"},
		},
	}

	out := renderMarkdown(capture)

	assert.Contains(t, out, "# Introduction")
	assert.Contains(t, out, "Getting started with the framework.")
	assert.Contains(t, out, "## Installation")
	assert.Contains(t, out, "### Requirements")
	assert.Contains(t, out, "npm install example")
	assert.Contains(t, out, "```")
}

func TestRenderMarkdown_EmptyCapture(t *testing.T) {
	out := renderMarkdown(&pageCapture{URL: "https://x.com"})
	assert.NotContains(t, out, "#")
}
