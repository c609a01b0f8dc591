package fetcher

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// PageCache stores page captures in SQLite so repeated invocations against
// the same documentation site skip the network fetch within the TTL window.
// Only fetched pages are cached; assembled knowledge graphs are never
// persisted.
type PageCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPageCache opens (or creates) the cache database and initializes the
// schema.
func NewPageCache(dbPath string, ttl time.Duration) (*PageCache, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	cache := &PageCache{db: db, ttl: ttl}
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return cache, nil
}

// initSchema creates the pages table and index if they don't exist.
func (pc *PageCache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		capture TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
	`

	_, err := pc.db.Exec(schema)
	return err
}

// Get returns the cached capture for a URL, or nil on a miss or when the
// entry has outlived the TTL.
func (pc *PageCache) Get(url string) (*pageCapture, error) {
	var captureJSON string
	var fetchedAt time.Time

	err := pc.db.QueryRow(`
		SELECT capture, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&captureJSON, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached page: %w", err)
	}

	if pc.ttl > 0 && time.Since(fetchedAt) > pc.ttl {
		return nil, nil
	}

	var capture pageCapture
	if err := json.Unmarshal([]byte(captureJSON), &capture); err != nil {
		return nil, fmt.Errorf("failed to decode cached page: %w", err)
	}
	return &capture, nil
}

// Put stores a capture, replacing any previous entry for the URL.
func (pc *PageCache) Put(url string, capture *pageCapture) error {
	captureJSON, err := json.Marshal(capture)
	if err != nil {
		return fmt.Errorf("failed to encode page capture: %w", err)
	}

	_, err = pc.db.Exec(`
		INSERT INTO pages (url, capture, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			capture = EXCLUDED.capture,
			fetched_at = EXCLUDED.fetched_at
	`, url, string(captureJSON), time.Now())

	if err != nil {
		return fmt.Errorf("failed to store page capture: %w", err)
	}
	return nil
}

// Prune deletes entries older than the TTL. Returns the number removed.
func (pc *PageCache) Prune() (int64, error) {
	if pc.ttl <= 0 {
		return 0, nil
	}

	res, err := pc.db.Exec("DELETE FROM pages WHERE fetched_at < ?", time.Now().Add(-pc.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune page cache: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the cache database.
func (pc *PageCache) Close() error {
	return pc.db.Close()
}
