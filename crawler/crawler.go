// Package crawler is the glue that walks every meet on the list page and
// pulls its info and results pages. Pages are independent, so they are
// fetched concurrently; each parse is stateless.
package crawler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"divescraper/meets"
	"divescraper/scraper"
	"divescraper/utils"
)

// MeetPages bundles everything crawled for one meet. Info or Results stay
// nil when the corresponding page has no data yet, a normal outcome for
// upcoming meets.
type MeetPages struct {
	Meet    meets.Meet         `json:"meet"`
	Info    *meets.MeetInfo    `json:"info,omitempty"`
	Results *meets.MeetResults `json:"results,omitempty"`
}

// Crawler drives the scrape of all listed meets.
type Crawler struct {
	svc     *scraper.Service
	workers int
	log     *logrus.Logger
}

// New builds a Crawler running at most workers concurrent page fetches.
func New(svc *scraper.Service, workers int, log *logrus.Logger) *Crawler {
	return &Crawler{svc: svc, workers: workers, log: log}
}

// CrawlMeets fetches the meet list and then every meet's info and results
// pages, returning the bundles sorted by meet name.
func (c *Crawler) CrawlMeets(ctx context.Context) ([]MeetPages, error) {
	record, err := c.svc.ScrapePage(ctx, utils.BaseURL+"index.php")
	if err != nil {
		return nil, err
	}
	list, ok := record.([]meets.Meet)
	if !ok {
		return nil, errors.New("meet list page returned an unexpected record")
	}

	var (
		out []MeetPages
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, c.workers)
	)

	for _, meet := range list {
		wg.Add(1)
		go func(meet meets.Meet) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			pages := c.crawlMeet(ctx, meet)
			mu.Lock()
			out = append(out, pages)
			mu.Unlock()
		}(meet)
	}
	wg.Wait()

	slices.SortFunc(out, func(a, b MeetPages) int {
		return strings.Compare(a.Meet.Name, b.Meet.Name)
	})
	return out, nil
}

func (c *Crawler) crawlMeet(ctx context.Context, meet meets.Meet) MeetPages {
	pages := MeetPages{Meet: meet}

	if record, err := c.svc.ScrapePage(ctx, meet.Link); err == nil {
		if info, ok := record.(*meets.MeetInfo); ok {
			pages.Info = info
		}
	} else if !errors.Is(err, scraper.ErrNoData) {
		c.log.WithError(err).WithField("meet", meet.Name).Warn("meet info fetch failed")
	}

	resultsURL := strings.Replace(meet.Link, "meetinfo", "meetresults", 1)
	if record, err := c.svc.ScrapePage(ctx, resultsURL); err == nil {
		if results, ok := record.(*meets.MeetResults); ok {
			pages.Results = results
		}
	} else if !errors.Is(err, scraper.ErrNoData) {
		c.log.WithError(err).WithField("meet", meet.Name).Warn("meet results fetch failed")
	}

	return pages
}
