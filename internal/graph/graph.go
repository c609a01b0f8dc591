package graph

import (
	"encoding/json"
	"fmt"
	"sync"
)

// EdgeTypeReferences is the only relationship type emitted by the crawler:
// the source page contains a hyperlink to the target page.
const EdgeTypeReferences = "references"

// PageNode is one crawled documentation page. Depth is the BFS level at
// which the page was first enqueued (first-discovered-wins, not shortest-path).
// Nodes are never mutated after insertion.
type PageNode struct {
	Title    string           `json:"title"`
	Concepts []string         `json:"concepts"`
	APIs     []map[string]any `json:"apis"`
	Depth    int              `json:"depth"`
}

// Edge is a directed reference between two pages. Edges are append-only and
// intentionally not deduplicated: a link rediscovered from a second source
// page yields a second edge (multigraph semantics).
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// KnowledgeGraph accumulates nodes and edges for a single crawl invocation.
// It lives only for the duration of that invocation and is never persisted.
type KnowledgeGraph struct {
	Framework     string               `json:"framework"`
	BaseURL       string               `json:"base_url"`
	Nodes         map[string]*PageNode `json:"nodes"`
	Relationships []Edge               `json:"relationships"`

	mu sync.RWMutex
}

// NewKnowledgeGraph creates an empty graph for one crawl invocation.
func NewKnowledgeGraph(framework, baseURL string) *KnowledgeGraph {
	return &KnowledgeGraph{
		Framework:     framework,
		BaseURL:       baseURL,
		Nodes:         make(map[string]*PageNode),
		Relationships: make([]Edge, 0),
	}
}

// AddNode inserts a node keyed by URL. Insert-if-absent: the first visit
// wins and later inserts for the same URL are rejected.
// Returns true if the node was inserted.
func (g *KnowledgeGraph) AddNode(url string, node *PageNode) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.Nodes[url]; exists {
		return false
	}
	g.Nodes[url] = node
	return true
}

// GetNode retrieves a node by URL, returning a copy so callers cannot
// mutate graph state. Returns nil if the URL was never added.
func (g *KnowledgeGraph) GetNode(url string) *PageNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, exists := g.Nodes[url]
	if !exists {
		return nil
	}
	nodeCopy := *node
	return &nodeCopy
}

// AddEdge appends a relationship unconditionally. The target may never
// become a node (already visited, or cut off by the page cap).
func (g *KnowledgeGraph) AddEdge(edge Edge) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Relationships = append(g.Relationships, edge)
}

// Stats returns current node and edge counts.
func (g *KnowledgeGraph) Stats() (nodeCount, edgeCount int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.Nodes), len(g.Relationships)
}

// JSON serializes the graph for tool results.
func (g *KnowledgeGraph) JSON() (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal knowledge graph: %w", err)
	}
	return string(data), nil
}
