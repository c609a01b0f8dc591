package fetcher

import "context"

// ExtractType selects what the adapter produces from a fetched page.
type ExtractType string

const (
	// ExtractMarkdown renders the page text in markdown form.
	ExtractMarkdown ExtractType = "markdown"
	// ExtractStructured produces schema-guided structured content.
	ExtractStructured ExtractType = "structured"
	// ExtractLinks returns only the hyperlinks found on the page.
	ExtractLinks ExtractType = "links"
)

// ParseExtractType maps a caller-supplied string onto a known extract type,
// falling back to markdown for anything unrecognized.
func ParseExtractType(s string) ExtractType {
	switch ExtractType(s) {
	case ExtractStructured:
		return ExtractStructured
	case ExtractLinks:
		return ExtractLinks
	default:
		return ExtractMarkdown
	}
}

// StructuredContent is the fixed schema produced by structured extraction.
type StructuredContent struct {
	Title        string           `json:"title"`
	MainConcepts []string         `json:"main_concepts"`
	CodeExamples []string         `json:"code_examples"`
	APIMethods   []map[string]any `json:"api_methods"`
	Dependencies []string         `json:"dependencies"`
}

// Result is the uniform outcome of one fetch-and-extract call. Content holds
// a markdown string or a *StructuredContent depending on the extract type.
// Links are populated on every successful fetch so that the crawl controller
// can expand the frontier after a structured fetch.
type Result struct {
	URL      string            `json:"url"`
	Title    string            `json:"title"`
	Content  any               `json:"content"`
	Links    []string          `json:"links"`
	Metadata map[string]string `json:"metadata"`
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
}

// Fetcher fetches a page and extracts its content in the requested form.
//
// Implementations must never return an error or panic across this boundary:
// every failure (network error, timeout, malformed page, extraction failure)
// is converted into a Result with Success=false and Error set.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, url string, extractType ExtractType) *Result
}

// failure builds the tagged failure result for a URL.
func failure(url string, err error) *Result {
	return &Result{
		URL:      url,
		Metadata: map[string]string{},
		Success:  false,
		Error:    err.Error(),
	}
}
