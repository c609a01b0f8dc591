package fetcher

import (
	"context"
	"strings"
)

// Extractor converts a page capture into the fixed structured schema.
// Backends are pluggable: any engine satisfying the output schema may be
// substituted (LLM-backed or otherwise).
type Extractor interface {
	Extract(ctx context.Context, capture *pageCapture) (*StructuredContent, error)
}

// HeuristicExtractor derives structured content directly from the page
// capture, without an external model. It is the fallback backend when no
// extraction API key is configured.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the capture-based extraction backend.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract maps headings to concepts, pre blocks to code examples, and
// call-shaped headings to API methods. Dependencies come from import/require
// lines inside code examples.
func (h *HeuristicExtractor) Extract(_ context.Context, capture *pageCapture) (*StructuredContent, error) {
	content := &StructuredContent{
		Title:        capture.Title,
		MainConcepts: []string{},
		CodeExamples: []string{},
		APIMethods:   []map[string]any{},
		Dependencies: []string{},
	}

	seenConcepts := make(map[string]bool)
	seenDeps := make(map[string]bool)

	for _, b := range capture.Blocks {
		switch b.Kind {
		case blockHeading:
			text := strings.TrimSpace(b.Text)
			if looksLikeAPIMethod(text) {
				content.APIMethods = append(content.APIMethods, map[string]any{
					"name":      apiMethodName(text),
					"signature": text,
				})
				continue
			}
			if b.Level >= 2 && !seenConcepts[text] {
				seenConcepts[text] = true
				content.MainConcepts = append(content.MainConcepts, text)
			}
		case blockCode:
			content.CodeExamples = append(content.CodeExamples, b.Text)
			for _, dep := range dependenciesFromCode(b.Text) {
				if !seenDeps[dep] {
					seenDeps[dep] = true
					content.Dependencies = append(content.Dependencies, dep)
				}
			}
		}
	}

	return content, nil
}

// looksLikeAPIMethod reports whether a heading reads like a callable
// signature, e.g. "fetch(url, options)".
func looksLikeAPIMethod(heading string) bool {
	open := strings.IndexByte(heading, '(')
	if open <= 0 {
		return false
	}
	if !strings.Contains(heading[open:], ")") {
		return false
	}
	// Sentence-shaped headings with parentheticals are not signatures.
	return !strings.Contains(heading[:open], " ")
}

// apiMethodName strips the parameter list from a signature-shaped heading.
func apiMethodName(heading string) string {
	if i := strings.IndexByte(heading, '('); i > 0 {
		return heading[:i]
	}
	return heading
}

// dependenciesFromCode pulls package identifiers out of import and require
// statements inside a code example.
func dependenciesFromCode(code string) []string {
	var deps []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "import "):
			// "import x from 'pkg'" or "import pkg"
			if i := strings.Index(line, " from "); i >= 0 {
				deps = append(deps, trimQuotes(line[i+len(" from "):]))
			} else {
				fields := strings.Fields(line)
				if len(fields) >= 2 {
					deps = append(deps, trimQuotes(fields[1]))
				}
			}
		case strings.Contains(line, "require("):
			start := strings.Index(line, "require(") + len("require(")
			rest := line[start:]
			if end := strings.IndexByte(rest, ')'); end > 0 {
				deps = append(deps, trimQuotes(rest[:end]))
			}
		}
	}
	return deps
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ";")
	return strings.Trim(s, `"'`+"`")
}
