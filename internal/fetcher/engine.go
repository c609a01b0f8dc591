package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// blockKind tags one content block captured from a page, in document order.
type blockKind string

const (
	blockHeading   blockKind = "heading"
	blockParagraph blockKind = "paragraph"
	blockCode      blockKind = "code"
)

type block struct {
	Kind  blockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text"`
}

// pageCapture is the raw harvest of one rendered page: enough to serve any
// of the three extract types without refetching.
type pageCapture struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Blocks          []block  `json:"blocks"`
	Links           []string `json:"links"`
	StatusCode      int      `json:"status_code"`
}

// EngineOptions configures the fetch engine.
type EngineOptions struct {
	UserAgent      string
	RequestTimeout time.Duration
	Extractor      Extractor
	Cache          *PageCache
}

// Engine is the page fetcher adapter. It drives a Colly collector to fetch
// and capture pages, delegates structured extraction to an Extractor backend,
// and optionally consults a page cache before hitting the network.
//
// One Engine instance is shared across all tool invocations in the process;
// construction goes through Provider so creation happens exactly once.
type Engine struct {
	opts EngineOptions
}

// NewEngine creates a fetch engine with the given options.
func NewEngine(opts EngineOptions) *Engine {
	if opts.Extractor == nil {
		opts.Extractor = NewHeuristicExtractor()
	}
	return &Engine{opts: opts}
}

// newCollector builds a collector for one fetch. A fresh collector per fetch
// keeps captures from sequential fetches isolated and lets the same URL be
// refetched on later invocations.
func (e *Engine) newCollector() *colly.Collector {
	collectorOpts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if e.opts.UserAgent != "" {
		collectorOpts = append(collectorOpts, colly.UserAgent(e.opts.UserAgent))
	}

	c := colly.NewCollector(collectorOpts...)
	if e.opts.RequestTimeout > 0 {
		c.SetRequestTimeout(e.opts.RequestTimeout)
	}
	return c
}

// FetchAndExtract fetches the page and extracts it in the requested form.
// It never returns an error: all failures become Result{Success: false}.
func (e *Engine) FetchAndExtract(ctx context.Context, url string, extractType ExtractType) (result *Result) {
	// The adapter contract forbids propagating panics from the underlying
	// engine or extraction backend across this boundary.
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Fetch panic for %s: %v", url, r)
			result = failure(url, fmt.Errorf("fetch panic: %v", r))
		}
	}()

	capture, err := e.capturePage(url)
	if err != nil {
		logrus.Warnf("Fetch failed for %s: %v", url, err)
		return failure(url, err)
	}

	result = &Result{
		URL:     url,
		Title:   capture.Title,
		Links:   capture.Links,
		Success: true,
		Metadata: map[string]string{
			"title":       capture.Title,
			"description": capture.MetaDescription,
		},
	}

	switch extractType {
	case ExtractStructured:
		content, err := e.opts.Extractor.Extract(ctx, capture)
		if err != nil {
			logrus.Warnf("Structured extraction failed for %s: %v", url, err)
			return failure(url, fmt.Errorf("structured extraction: %w", err))
		}
		result.Content = content
	case ExtractLinks:
		result.Content = ""
	default:
		result.Content = renderMarkdown(capture)
	}

	return result
}

// capturePage returns the page capture, from cache when available.
func (e *Engine) capturePage(url string) (*pageCapture, error) {
	if e.opts.Cache != nil {
		if cached, err := e.opts.Cache.Get(url); err != nil {
			logrus.Warnf("Page cache lookup failed for %s: %v", url, err)
		} else if cached != nil {
			logrus.Debugf("Page cache hit: %s", url)
			return cached, nil
		}
	}

	capture, err := e.fetch(url)
	if err != nil {
		return nil, err
	}

	if e.opts.Cache != nil {
		if err := e.opts.Cache.Put(url, capture); err != nil {
			logrus.Warnf("Page cache store failed for %s: %v", url, err)
		}
	}
	return capture, nil
}

// fetch performs one synchronous page fetch, harvesting title, content
// blocks, and absolute links in document order.
func (e *Engine) fetch(url string) (*pageCapture, error) {
	capture := &pageCapture{URL: url}
	var fetchErr error

	c := e.newCollector()

	c.OnHTML("title", func(el *colly.HTMLElement) {
		if capture.Title == "" {
			capture.Title = strings.TrimSpace(el.Text)
		}
	})

	c.OnHTML("meta[name=description]", func(el *colly.HTMLElement) {
		if capture.MetaDescription == "" {
			capture.MetaDescription = strings.TrimSpace(el.Attr("content"))
		}
	})

	// One combined selector keeps blocks in document order; per-tag handlers
	// would group all headings before all paragraphs.
	c.OnHTML("h1, h2, h3, p, pre", func(el *colly.HTMLElement) {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			return
		}
		switch el.Name {
		case "h1":
			capture.Blocks = append(capture.Blocks, block{Kind: blockHeading, Level: 1, Text: text})
		case "h2":
			capture.Blocks = append(capture.Blocks, block{Kind: blockHeading, Level: 2, Text: text})
		case "h3":
			capture.Blocks = append(capture.Blocks, block{Kind: blockHeading, Level: 3, Text: text})
		case "pre":
			capture.Blocks = append(capture.Blocks, block{Kind: blockCode, Text: text})
		default:
			capture.Blocks = append(capture.Blocks, block{Kind: blockParagraph, Text: text})
		}
	})

	c.OnHTML("a[href]", func(el *colly.HTMLElement) {
		link := el.Request.AbsoluteURL(el.Attr("href"))
		if link == "" || strings.HasPrefix(link, "javascript:") {
			return
		}
		// Drop the fragment so anchors on the same page dedupe to one link.
		if i := strings.IndexByte(link, '#'); i >= 0 {
			link = link[:i]
		}
		if link == "" {
			return
		}
		capture.Links = append(capture.Links, link)
	})

	c.OnResponse(func(r *colly.Response) {
		capture.StatusCode = r.StatusCode
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil {
			capture.StatusCode = r.StatusCode
		}
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}

	return capture, nil
}
