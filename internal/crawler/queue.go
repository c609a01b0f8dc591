package crawler

// QueueEntry is one pending URL in the BFS frontier, paired with the depth
// at which it was discovered. Consumed exactly once.
type QueueEntry struct {
	URL   string
	Depth int
}

// Queue is a FIFO frontier for breadth-first traversal. It is arena-style:
// entries accumulate in a single slice and a head index advances on pop, so
// traversal never recurses and popped entries are not reshuffled.
//
// The crawl loop is strictly sequential, so the queue needs no locking.
type Queue struct {
	entries []QueueEntry
	head    int
}

// NewQueue creates an empty frontier.
func NewQueue() *Queue {
	return &Queue{entries: make([]QueueEntry, 0)}
}

// Push appends an entry to the back of the frontier.
func (q *Queue) Push(url string, depth int) {
	q.entries = append(q.entries, QueueEntry{URL: url, Depth: depth})
}

// Pop removes and returns the front entry. Returns false when the frontier
// is exhausted.
func (q *Queue) Pop() (QueueEntry, bool) {
	if q.head >= len(q.entries) {
		return QueueEntry{}, false
	}
	entry := q.entries[q.head]
	q.head++
	return entry, true
}

// Len returns the number of entries not yet popped.
func (q *Queue) Len() int {
	return len(q.entries) - q.head
}
