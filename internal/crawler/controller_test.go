package crawler

import (
	"context"
	"fmt"
	"testing"

	"docweaver/internal/fetcher"
	"docweaver/internal/graph"
	"docweaver/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned results and counts fetches per URL.
type fakeFetcher struct {
	pages      map[string]*fetcher.Result
	fetchCount map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:      make(map[string]*fetcher.Result),
		fetchCount: make(map[string]int),
	}
}

func (f *fakeFetcher) addPage(url, title string, links ...string) {
	f.pages[url] = &fetcher.Result{
		URL:   url,
		Title: title,
		Content: &fetcher.StructuredContent{
			Title:        title,
			MainConcepts: []string{title + " concept"},
			APIMethods:   []map[string]any{{"name": "init"}},
		},
		Links:    links,
		Metadata: map[string]string{},
		Success:  true,
	}
}

func (f *fakeFetcher) FetchAndExtract(_ context.Context, url string, _ fetcher.ExtractType) *fetcher.Result {
	f.fetchCount[url]++
	if result, ok := f.pages[url]; ok {
		return result
	}
	return &fetcher.Result{URL: url, Success: false, Error: "not found"}
}

const base = "https://docs.example.com"

func TestController_BasicTraversal(t *testing.T) {
	f := newFakeFetcher()
	f.addPage(base, "Home", base+"/docs/a", base+"/docs/b", "https://other.com/docs/x")
	f.addPage(base+"/docs/a", "Page A")
	f.addPage(base+"/docs/b", "Page B")

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 2, nil)

	assert.Len(t, kg.Nodes, 3)
	assert.Len(t, kg.Relationships, 2, "external link must not produce an edge")

	root := kg.GetNode(base)
	require.NotNil(t, root)
	assert.Equal(t, "Home", root.Title)
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, []string{"Home concept"}, root.Concepts)

	a := kg.GetNode(base + "/docs/a")
	require.NotNil(t, a)
	assert.Equal(t, 1, a.Depth)
}

func TestController_PageCapHolds(t *testing.T) {
	f := newFakeFetcher()

	// A wide fan-out: the root links to far more pages than the cap allows.
	var links []string
	for i := 0; i < 120; i++ {
		links = append(links, fmt.Sprintf("%s/docs/page-%03d", base, i))
	}
	f.addPage(base, "Home", links...)
	for _, link := range links {
		f.addPage(link, "Leaf")
	}

	c := NewController(f, DefaultMaxPages, nil)
	kg := c.Crawl(context.Background(), "example", base, 3, nil)

	visited := 0
	for _, n := range f.fetchCount {
		visited += n
	}
	assert.LessOrEqual(t, visited, DefaultMaxPages)
	assert.LessOrEqual(t, len(kg.Nodes), DefaultMaxPages)

	// Edges were still appended for links beyond the cap.
	assert.Len(t, kg.Relationships, 120)
}

func TestController_PageCapCannotBeRaised(t *testing.T) {
	f := newFakeFetcher()

	var links []string
	for i := 0; i < 120; i++ {
		links = append(links, fmt.Sprintf("%s/docs/page-%03d", base, i))
	}
	f.addPage(base, "Home", links...)
	for _, link := range links {
		f.addPage(link, "Leaf")
	}

	// A cap above the hard ceiling is clamped, not honored.
	c := NewController(f, 100, nil)
	kg := c.Crawl(context.Background(), "example", base, 3, nil)

	visited := 0
	for _, n := range f.fetchCount {
		visited += n
	}
	assert.LessOrEqual(t, visited, DefaultMaxPages)
	assert.LessOrEqual(t, len(kg.Nodes), DefaultMaxPages)
}

func TestController_DepthBound(t *testing.T) {
	f := newFakeFetcher()

	// A chain deeper than the depth limit.
	for i := 0; i < 10; i++ {
		f.addPage(
			fmt.Sprintf("%s/docs/lvl-%d", base, i),
			fmt.Sprintf("Level %d", i),
			fmt.Sprintf("%s/docs/lvl-%d", base, i+1),
		)
	}
	f.addPage(base, "Home", base+"/docs/lvl-0")

	const maxDepth = 3
	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, maxDepth, nil)

	for url, node := range kg.Nodes {
		assert.LessOrEqual(t, node.Depth, maxDepth, "node %s exceeds depth bound", url)
	}
	// Root, then lvl-0 and lvl-1 expanded; lvl-2 visited at the depth
	// limit but not expanded.
	assert.Len(t, kg.Nodes, 4)
}

func TestController_NoDoubleFetch(t *testing.T) {
	f := newFakeFetcher()

	// A and B reference each other; both reference the root.
	f.addPage(base, "Home", base+"/docs/a", base+"/docs/b")
	f.addPage(base+"/docs/a", "Page A", base+"/docs/b", base)
	f.addPage(base+"/docs/b", "Page B", base+"/docs/a", base)

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 5, nil)

	for url, count := range f.fetchCount {
		assert.Equal(t, 1, count, "URL %s fetched more than once", url)
	}

	// Back-references to each other still produced edges toward
	// already-visited pages. The root link itself fails the pattern
	// filter (no default pattern matches the bare base URL).
	assert.Len(t, kg.Nodes, 3)
	assert.Len(t, kg.Relationships, 4)
}

func TestController_DepthZero(t *testing.T) {
	f := newFakeFetcher()
	f.addPage(base, "Home", base+"/docs/a", base+"/docs/b")
	f.addPage(base+"/docs/a", "Page A")

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 0, nil)

	assert.Len(t, kg.Nodes, 1, "depth 0 visits only the base URL")
	assert.Empty(t, kg.Relationships, "depth 0 never expands links")
}

func TestController_FailedBaseFetch(t *testing.T) {
	f := newFakeFetcher()
	// No pages registered: every fetch fails.

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 2, nil)

	assert.Empty(t, kg.Nodes)
	assert.Empty(t, kg.Relationships)
	assert.Equal(t, "example", kg.Framework)
	assert.Equal(t, base, kg.BaseURL)
}

func TestController_FailedFetchTruncatesBranch(t *testing.T) {
	f := newFakeFetcher()
	f.addPage(base, "Home", base+"/docs/broken", base+"/docs/ok")
	f.addPage(base+"/docs/ok", "OK", base+"/docs/deep")
	f.addPage(base+"/docs/deep", "Deep")
	// /docs/broken is not registered, so its fetch fails and its subtree
	// (whatever it would have linked to) is never discovered.

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 3, nil)

	assert.Len(t, kg.Nodes, 3)
	assert.Nil(t, kg.GetNode(base+"/docs/broken"))
	require.NotNil(t, kg.GetNode(base+"/docs/deep"))

	// The failed URL was fetched exactly once, with no retry.
	assert.Equal(t, 1, f.fetchCount[base+"/docs/broken"])
}

func TestController_FirstDiscoveredDepthWins(t *testing.T) {
	f := newFakeFetcher()

	// C is discovered at depth 1 (from the root) and again at depth 2
	// (from A). FIFO order guarantees the depth-1 entry is dequeued first.
	f.addPage(base, "Home", base+"/docs/a", base+"/docs/c")
	f.addPage(base+"/docs/a", "Page A", base+"/docs/c")
	f.addPage(base+"/docs/c", "Page C")

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 3, nil)

	node := kg.GetNode(base + "/docs/c")
	require.NotNil(t, node)
	assert.Equal(t, 1, node.Depth)
}

func TestController_TracksMetrics(t *testing.T) {
	f := newFakeFetcher()
	f.addPage(base, "Home", base+"/docs/a", base+"/broken", "https://other.com/")
	f.addPage(base+"/docs/a", "Page A")

	tracker := metrics.NewTracker()
	c := NewController(f, 0, tracker)
	kg := c.Crawl(context.Background(), "example", base, 2, []string{"/docs/", "/broken"})

	snap := tracker.GetSnapshot()
	assert.Equal(t, 2, snap.PagesFetched)
	assert.Equal(t, 1, snap.PagesFailed)
	assert.Equal(t, 2, snap.NodesAdded)
	assert.Equal(t, 2, snap.EdgesRecorded)
	assert.Equal(t, 1, snap.LinksFiltered)

	nodes, edges := kg.Stats()
	assert.Equal(t, snap.NodesAdded, nodes)
	assert.Equal(t, snap.EdgesRecorded, edges)
}

func TestController_EdgeTypeIsReferences(t *testing.T) {
	f := newFakeFetcher()
	f.addPage(base, "Home", base+"/docs/a")
	f.addPage(base+"/docs/a", "Page A")

	c := NewController(f, 0, nil)
	kg := c.Crawl(context.Background(), "example", base, 1, nil)

	require.Len(t, kg.Relationships, 1)
	assert.Equal(t, graph.Edge{From: base, To: base + "/docs/a", Type: "references"}, kg.Relationships[0])
}
