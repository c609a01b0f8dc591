package crawler

import (
	"context"
	"time"

	"docweaver/internal/fetcher"
	"docweaver/internal/graph"
	"docweaver/internal/metrics"

	"github.com/sirupsen/logrus"
)

// DefaultMaxPages is the hard cap on pages visited in one crawl invocation.
const DefaultMaxPages = 50

// Controller runs one breadth-first crawl over a documentation site,
// assembling a knowledge graph of pages and their reference edges. The loop
// is strictly sequential: one fetch at a time, no worker pool.
type Controller struct {
	fetcher  fetcher.Fetcher
	maxPages int
	tracker  *metrics.Tracker
}

// NewController creates a crawl controller. The fetcher is injected at
// construction time rather than looked up globally, so the caller owns the
// engine's lifecycle. A nil tracker disables statistics.
//
// DefaultMaxPages is a hard ceiling: a larger maxPages is clamped, never
// honored. Configuration may only tighten the cap.
func NewController(f fetcher.Fetcher, maxPages int, tracker *metrics.Tracker) *Controller {
	if maxPages <= 0 || maxPages > DefaultMaxPages {
		maxPages = DefaultMaxPages
	}
	return &Controller{
		fetcher:  f,
		maxPages: maxPages,
		tracker:  tracker,
	}
}

// Crawl seeds the frontier with baseURL at depth 0 and expands breadth-first
// until the frontier drains or the page cap is reached. Two independent
// bounds apply: maxDepth on each entry, and maxPages on the visited count,
// the latter checked only at loop continuation - an entry already dequeued
// always completes its fetch and expansion.
//
// Per-page fetch failures truncate that branch of the traversal; the call
// itself never fails because of them.
func (c *Controller) Crawl(ctx context.Context, framework, baseURL string, maxDepth int, patterns []string) *graph.KnowledgeGraph {
	kg := graph.NewKnowledgeGraph(framework, baseURL)
	queue := NewQueue()
	visited := make(map[string]struct{})

	queue.Push(baseURL, 0)

	logrus.Infof("Crawl started: framework=%s base=%s depth=%d patterns=%d",
		framework, baseURL, maxDepth, len(patterns))

	for queue.Len() > 0 && len(visited) < c.maxPages {
		entry, ok := queue.Pop()
		if !ok {
			break
		}

		if _, seen := visited[entry.URL]; seen {
			continue
		}
		if entry.Depth > maxDepth {
			continue
		}

		// Mark before fetching so the same URL re-enqueued at a deeper
		// level is skipped rather than fetched twice.
		visited[entry.URL] = struct{}{}

		fetchStart := time.Now()
		result := c.fetcher.FetchAndExtract(ctx, entry.URL, fetcher.ExtractStructured)
		if c.tracker != nil {
			c.tracker.RecordFetchTime(time.Since(fetchStart))
		}

		if !result.Success {
			logrus.Warnf("Skipping %s (depth=%d): %s", entry.URL, entry.Depth, result.Error)
			if c.tracker != nil {
				c.tracker.IncrementPagesFailed()
			}
			continue
		}
		if c.tracker != nil {
			c.tracker.IncrementPagesFetched()
		}

		node := &graph.PageNode{
			Title: result.Title,
			Depth: entry.Depth,
		}
		if content, ok := result.Content.(*fetcher.StructuredContent); ok && content != nil {
			node.Concepts = content.MainConcepts
			node.APIs = content.APIMethods
			if node.Title == "" {
				node.Title = content.Title
			}
		}

		if kg.AddNode(entry.URL, node) && c.tracker != nil {
			c.tracker.IncrementNodesAdded()
		}
		logrus.Infof("Visited %s (depth=%d, links=%d)", entry.URL, entry.Depth, len(result.Links))

		// Only expand below the depth limit; the final BFS level contributes
		// nodes but no outgoing edges.
		if entry.Depth >= maxDepth {
			continue
		}

		for _, link := range result.Links {
			if !ShouldCrawlLink(link, baseURL, patterns) {
				if c.tracker != nil {
					c.tracker.IncrementLinksFiltered()
				}
				continue
			}

			// Edges are appended even when the target ends up skipped as
			// already visited or cut off by the page cap.
			queue.Push(link, entry.Depth+1)
			kg.AddEdge(graph.Edge{From: entry.URL, To: link, Type: graph.EdgeTypeReferences})
			if c.tracker != nil {
				c.tracker.IncrementEdgesRecorded()
			}
		}
	}

	nodes, edges := kg.Stats()
	logrus.Infof("Crawl complete: %d nodes, %d edges, %d URLs visited", nodes, edges, len(visited))
	return kg
}
