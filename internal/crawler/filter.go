package crawler

import "strings"

// defaultPatterns covers the common URL sections of technical documentation
// sites, used when the caller supplies no patterns of their own.
var defaultPatterns = []string{"/api/", "/guide/", "/docs/", "/reference/", "/tutorial/"}

// ShouldCrawlLink decides whether a discovered link is eligible for
// traversal. The link must share the crawl's base URL as a literal string
// prefix (case-sensitive, no normalization) and must contain at least one of
// the given patterns as a substring. With no patterns provided, the default
// documentation patterns apply.
//
// Pure function: no side effects, no network access.
func ShouldCrawlLink(link, baseURL string, patterns []string) bool {
	if !strings.HasPrefix(link, baseURL) {
		return false
	}

	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	for _, pattern := range patterns {
		if strings.Contains(link, pattern) {
			return true
		}
	}
	return false
}
