package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"divescraper/browser"
	"divescraper/cache"
	"divescraper/fetch"
)

// Service fetches a page and hands it to the extractor for its family.
// Extraction itself is pure; everything stateful (HTTP, browser, cache)
// lives here at the boundary.
type Service struct {
	fetcher  *fetch.Client
	browsers *browser.Pool
	store    *cache.Store
	registry *Registry
	timeout  time.Duration
	log      *logrus.Logger
}

// NewService wires a Service. store may be nil to disable caching.
func NewService(fetcher *fetch.Client, browsers *browser.Pool, store *cache.Store, registry *Registry, timeout time.Duration, log *logrus.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		browsers: browsers,
		store:    store,
		registry: registry,
		timeout:  timeout,
		log:      log,
	}
}

// ScrapePage fetches pageURL and returns the typed record for its page
// family. Live pages bypass the cache since their content changes between
// refreshes; each refresh is a fresh parse producing a fresh record.
func (s *Service) ScrapePage(ctx context.Context, pageURL string) (any, error) {
	kind := DetectKind(pageURL)
	if kind == KindUnknown {
		return nil, fmt.Errorf("no extractor available for URL: %s", pageURL)
	}

	var html string
	var err error
	if kind.ScriptRendered() {
		html, err = s.browsers.FetchURL(ctx, pageURL, s.timeout)
	} else {
		html, err = cache.Memoize(ctx, s.store, pageURL, func() (string, error) {
			return s.fetcher.Get(ctx, pageURL)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL content: %w", err)
	}

	record, err := s.Parse(html, pageURL)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"component": "scraper",
		"kind":      string(kind),
		"url":       pageURL,
	}).Info("page scraped")

	return record, nil
}

// Parse builds the document tree from raw HTML and runs the extractor for
// the URL's page family. It has no I/O and is safe to call concurrently.
func (s *Service) Parse(html, pageURL string) (any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	extractor := s.registry.Find(pageURL)
	if extractor == nil {
		return nil, fmt.Errorf("no extractor available for URL: %s", pageURL)
	}
	return extractor.Extract(doc, pageURL)
}
