// Package scraper dispatches fetched pages to the extractor for their
// page family and exposes the fetch-then-parse service.
package scraper

import (
	"errors"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"divescraper/entries"
	"divescraper/events"
	"divescraper/livestats"
	"divescraper/meets"
	"divescraper/profile"
)

// ErrNoData reports structural absence: the page exists but does not
// carry the tables the family's extractor needs. Callers treat this as a
// normal outcome; pages legitimately vary (a meet with no results yet).
var ErrNoData = errors.New("page has no extractable data")

// Extractor parses one page family.
type Extractor interface {
	// CanHandle determines if this extractor handles the given URL.
	CanHandle(url string) bool

	// Extract walks the document and returns the family's typed record.
	Extract(doc *goquery.Document, url string) (any, error)
}

// Registry manages the available extractors.
type Registry struct {
	extractors []Extractor
	fallback   Extractor
	mu         sync.RWMutex
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
}

// SetFallback sets the extractor used when no registered one matches.
func (r *Registry) SetFallback(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = e
}

// Find returns the extractor for the given URL, or the fallback.
func (r *Registry) Find(url string) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.extractors {
		if e.CanHandle(url) {
			return e
		}
	}
	return r.fallback
}

// DefaultRegistry returns a registry with every page family registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(meetListExtractor{})
	r.Register(meetInfoExtractor{})
	r.Register(meetResultsExtractor{})
	r.Register(eventResultsExtractor{})
	r.Register(profileExtractor{})
	r.Register(entriesExtractor{})
	r.Register(liveExtractor{})
	return r
}

type meetListExtractor struct{}

func (meetListExtractor) CanHandle(url string) bool { return DetectKind(url) == KindMeetList }

func (meetListExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	list := meets.ExtractMeetList(doc)
	if list == nil {
		return nil, ErrNoData
	}
	return list, nil
}

type meetInfoExtractor struct{}

func (meetInfoExtractor) CanHandle(url string) bool { return DetectKind(url) == KindMeetInfo }

func (meetInfoExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	info := meets.ExtractMeetInfo(doc)
	if info == nil {
		return nil, ErrNoData
	}
	return info, nil
}

type meetResultsExtractor struct{}

func (meetResultsExtractor) CanHandle(url string) bool { return DetectKind(url) == KindMeetResults }

func (meetResultsExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	results := meets.ExtractMeetResults(doc)
	if results == nil {
		return nil, ErrNoData
	}
	return results, nil
}

type eventResultsExtractor struct{}

func (eventResultsExtractor) CanHandle(url string) bool { return DetectKind(url) == KindEventResults }

func (eventResultsExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	results := events.ExtractEventResults(doc)
	if results == nil {
		return nil, ErrNoData
	}
	return results, nil
}

// ProfilePage bundles the profile with the dive statistics table found on
// the same page.
type ProfilePage struct {
	Profile    *profile.Profile        `json:"profile"`
	Statistics []profile.DiveStatistic `json:"statistics,omitempty"`
}

type profileExtractor struct{}

func (profileExtractor) CanHandle(url string) bool { return DetectKind(url) == KindProfile }

func (profileExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	p := profile.ExtractProfile(doc)
	if p == nil {
		return nil, ErrNoData
	}
	return &ProfilePage{
		Profile:    p,
		Statistics: profile.ExtractDiveStatistics(doc),
	}, nil
}

type entriesExtractor struct{}

func (entriesExtractor) CanHandle(url string) bool { return DetectKind(url) == KindEntries }

func (entriesExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	list := entries.ExtractEventEntries(doc)
	if list == nil {
		return nil, ErrNoData
	}
	return list, nil
}

type liveExtractor struct{}

func (liveExtractor) CanHandle(url string) bool { return DetectKind(url) == KindLive }

// Extract branches on the URL: finished events link with a "Finished"
// suffix, everything else is an in-progress snapshot.
func (liveExtractor) Extract(doc *goquery.Document, url string) (any, error) {
	if strings.Contains(url, "Finished") {
		event := livestats.ExtractFinishedEvent(doc)
		if event == nil {
			return nil, ErrNoData
		}
		return event, nil
	}
	snapshot := livestats.ExtractLiveSnapshot(doc)
	if snapshot == nil {
		return nil, ErrNoData
	}
	return snapshot, nil
}
