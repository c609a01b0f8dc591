package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of crawl statistics for one invocation.
type Snapshot struct {
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	PagesFetched     int       `json:"pages_fetched"`
	PagesFailed      int       `json:"pages_failed"`
	NodesAdded       int       `json:"nodes_added"`
	EdgesRecorded    int       `json:"edges_recorded"`
	LinksFiltered    int       `json:"links_filtered"`
	TotalFetchTimeMs int64     `json:"total_fetch_time_ms"`
	AvgFetchTimeMs   int64     `json:"avg_fetch_time_ms"`
}

// Tracker holds crawl statistics for a single invocation. Volatile and
// process-local only.
type Tracker struct {
	mu               sync.Mutex
	data             Snapshot
	totalFetchTimeMs int64
	fetchCount       int
}

// NewTracker creates a tracker stamped with the current time.
func NewTracker() *Tracker {
	return &Tracker{
		data: Snapshot{StartTime: time.Now()},
	}
}

// IncrementPagesFetched increments the successful fetch counter
func (t *Tracker) IncrementPagesFetched() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesFetched++
}

// IncrementPagesFailed increments the failed fetch counter
func (t *Tracker) IncrementPagesFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesFailed++
}

// IncrementNodesAdded increments the graph node counter
func (t *Tracker) IncrementNodesAdded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.NodesAdded++
}

// IncrementEdgesRecorded increments the graph edge counter
func (t *Tracker) IncrementEdgesRecorded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.EdgesRecorded++
}

// IncrementLinksFiltered counts links rejected by the link filter
func (t *Tracker) IncrementLinksFiltered() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.LinksFiltered++
}

// RecordFetchTime records a page fetch duration
func (t *Tracker) RecordFetchTime(duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalFetchTimeMs += duration.Milliseconds()
	t.fetchCount++
}

// GetSnapshot returns a copy of current statistics
func (t *Tracker) GetSnapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.EndTime = time.Now()
	snapshot.TotalFetchTimeMs = t.totalFetchTimeMs
	if t.fetchCount > 0 {
		snapshot.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}
	return snapshot
}

// LogProgress formats current statistics for periodic log output
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Pages: %d fetched, %d failed | Nodes: %d | Edges: %d | Links filtered: %d",
		t.data.PagesFetched,
		t.data.PagesFailed,
		t.data.NodesAdded,
		t.data.EdgesRecorded,
		t.data.LinksFiltered,
	)
}
