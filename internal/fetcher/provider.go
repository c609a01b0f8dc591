package fetcher

import (
	"context"
	"io"
	"sync"
	"time"

	"docweaver/internal/config"

	"github.com/sirupsen/logrus"
)

// Provider owns the shared fetch engine. Creation is lazy - the browser
// engine is only worth paying for once a tool call actually needs a page -
// and serialized under a lock so concurrent first calls cannot race two
// engines into existence.
type Provider struct {
	cfg *config.Config

	mu        sync.Mutex
	engine    *Engine
	cache     *PageCache
	extractor Extractor
}

// NewProvider creates a provider; no engine is constructed yet.
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{cfg: cfg}
}

// Engine returns the shared fetch engine, creating it on first use.
// Idempotent: repeated calls return the same instance.
func (p *Provider) Engine(ctx context.Context) (*Engine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine != nil {
		return p.engine, nil
	}

	var cache *PageCache
	if !p.cfg.CacheDisabled {
		var err error
		cache, err = NewPageCache(p.cfg.CachePath, time.Duration(p.cfg.CacheTTLHours)*time.Hour)
		if err != nil {
			// The cache is an optimization; a broken cache never blocks fetching.
			logrus.Warnf("Page cache unavailable, fetching without cache: %v", err)
			cache = nil
		}
	}

	var extractor Extractor
	if p.cfg.GeminiAPIKey != "" {
		gemini, err := NewGeminiExtractor(ctx, p.cfg.GeminiAPIKey, p.cfg.GeminiModel)
		if err != nil {
			logrus.Warnf("Gemini extractor unavailable, using heuristic extraction: %v", err)
		} else {
			logrus.Infof("Structured extraction backend: gemini (%s)", p.cfg.GeminiModel)
			extractor = gemini
		}
	}
	if extractor == nil {
		logrus.Info("Structured extraction backend: heuristic")
		extractor = NewHeuristicExtractor()
	}

	p.cache = cache
	p.extractor = extractor
	p.engine = NewEngine(EngineOptions{
		UserAgent:      p.cfg.UserAgent,
		RequestTimeout: time.Duration(p.cfg.RequestTimeoutMs) * time.Millisecond,
		Extractor:      extractor,
		Cache:          cache,
	})

	logrus.Info("Fetch engine initialized")
	return p.engine, nil
}

// Close releases resources held by the engine, if one was ever created:
// the page cache database and, for closeable extraction backends like
// Gemini, the underlying API client.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error

	if closer, ok := p.extractor.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
		p.extractor = nil
	}

	if p.cache != nil {
		if err := p.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.cache = nil
	}

	return firstErr
}
