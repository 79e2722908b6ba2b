// Package livestats extracts live-results pages, both mid-event snapshots
// and finished events. These pages are script-rendered and the most
// brittle on the site: the mid-event blocks are keyed to exact label text
// (including runs of multiple spaces) and the finished page encodes whole
// records as flat positional text.
package livestats

import (
	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// LiveSnapshot is one refresh of an in-progress event.
type LiveSnapshot struct {
	Title        string     `json:"title"`
	LastDiver    *LastDiver `json:"lastDiver,omitempty"`
	NextDiver    *NextDiver `json:"nextDiver,omitempty"`
	CurrentRound string     `json:"currentRound"`
	Rows         []LiveRow  `json:"rows"`
}

// LastDiver is the block describing the diver who just finished.
type LastDiver struct {
	Name            string  `json:"name"`
	Link            string  `json:"link"`
	LastRoundPlace  int     `json:"lastRoundPlace"`
	LastRoundScore  float64 `json:"lastRoundScore"`
	CurrentPlace    int     `json:"currentPlace"`
	CurrentScore    float64 `json:"currentScore"`
	Order           int     `json:"order"`
	LastDiveAverage float64 `json:"lastDiveAverage"`
	EventAverage    float64 `json:"eventAverage"`
	RoundAverage    float64 `json:"roundAverage"`
}

// NextDiver is the block describing the diver up next.
type NextDiver struct {
	Name        string  `json:"name"`
	Link        string  `json:"link"`
	Order       int     `json:"order"`
	CurrentDive string  `json:"currentDive"`
	Height      float64 `json:"height"`
	DD          float64 `json:"dd"`
}

// LiveRow is one diver in the running order table.
type LiveRow struct {
	HasDived        bool    `json:"hasDived"`
	Order           int     `json:"order"`
	LastRoundPlace  int     `json:"lastRoundPlace"`
	LastRoundScore  float64 `json:"lastRoundScore"`
	CurrentPlace    int     `json:"currentPlace"`
	CurrentScore    float64 `json:"currentScore"`
	Name            string  `json:"name"`
	Link            string  `json:"link"`
	LastDiveAverage float64 `json:"lastDiveAverage"`
	EventAverage    float64 `json:"eventAverage"`
	RoundAverage    float64 `json:"roundAverage"`
}

// Fixed row positions on the in-progress page. Row 8 holds the current
// round label; the running order occupies rows 10 through the next-to-last
// row.
const (
	roundLabelRow = 8
	firstRankRow  = 10
)

// ExtractLiveSnapshot parses an in-progress live-results page. Returns nil
// when the page has fewer rows than the fixed layout requires. A single
// missing label inside the diver blocks degrades to a zero value for that
// field only.
func ExtractLiveSnapshot(doc *goquery.Document) *LiveSnapshot {
	allRows := doc.Find("tr")
	if allRows.Length() <= firstRankRow {
		return nil
	}

	snapshot := &LiveSnapshot{
		Title:        rows.Text(allRows.Eq(0)),
		CurrentRound: rows.Text(allRows.Eq(roundLabelRow)),
	}

	// The blocks render as three sub-tables after the outer one: last
	// diver, a divider, next diver.
	tables := doc.Find("table")
	if tables.Length() > 1 {
		snapshot.LastDiver = parseLastDiver(tables.Eq(1))
	}
	if tables.Length() > 3 {
		snapshot.NextDiver = parseNextDiver(tables.Eq(3))
	}

	for i := firstRankRow; i < allRows.Length()-1; i++ {
		if row, ok := parseLiveRow(allRows.Eq(i)); ok {
			snapshot.Rows = append(snapshot.Rows, row)
		}
	}
	return snapshot
}

// parseLastDiver slices the last-diver block by its exact label runs. The
// labels must match the source text byte-for-byte; a mismatch defaults
// that field rather than aborting the snapshot.
func parseLastDiver(table *goquery.Selection) *LastDiver {
	text := utils.StripEntities(table.Text())
	anchor := table.Find("a").First()

	return &LastDiver{
		Name:            rows.Text(anchor),
		Link:            utils.FirstLink(anchor.Attr("href")),
		LastRoundPlace:  sliceInt(text, "Last Round Place: ", " Last Round"),
		LastRoundScore:  sliceNumber(text, "Last Round Score: ", " Current"),
		CurrentPlace:    sliceInt(text, "Current Place: ", " Current"),
		CurrentScore:    sliceNumber(text, "Current Score: ", " Order"),
		Order:           sliceInt(text, "Order: ", " Last Dive"),
		LastDiveAverage: sliceNumber(text, "Last Dive Average: ", " Event"),
		EventAverage:    sliceNumber(text, "Event Average Score: ", " Average"),
		RoundAverage:    sliceNumber(text, "Average Round Score: ", "\n"),
	}
}

func parseNextDiver(table *goquery.Selection) *NextDiver {
	text := utils.StripEntities(table.Text())
	anchor := table.Find("a").First()

	next := &NextDiver{
		Name:   rows.Text(anchor),
		Link:   utils.FirstLink(anchor.Attr("href")),
		Order:  sliceInt(text, "Next Dive Order: ", " Current"),
		Height: sliceNumber(text, "Height ", "M DD"),
		DD:     sliceNumber(text, "DD: ", "\n"),
	}
	// Three spaces after the label, as rendered.
	if dive, ok := utils.SliceBetween(text, "Current Dive:   ", " Height"); ok {
		next.CurrentDive = utils.CollapseWhitespace(dive)
	}
	return next
}

// parseLiveRow reads one running-order row. Column 0 encodes "has this
// diver already dived" as an emptiness check; column 6 carries the name
// with the profile link.
func parseLiveRow(row *goquery.Selection) (LiveRow, bool) {
	tds := row.Find("td")
	if tds.Length() < 10 {
		return LiveRow{}, false
	}
	nameCell := tds.Eq(6)
	name := rows.Text(nameCell)
	if name == "" {
		return LiveRow{}, false
	}

	return LiveRow{
		HasDived:        rows.Text(tds.Eq(0)) != "",
		Order:           utils.ParseIntOrDefault(rows.Text(tds.Eq(1)), 0),
		LastRoundPlace:  utils.ParseIntOrDefault(rows.Text(tds.Eq(2)), 0),
		LastRoundScore:  utils.ParseNumberOrDefault(rows.Text(tds.Eq(3)), 0),
		CurrentPlace:    utils.ParseIntOrDefault(rows.Text(tds.Eq(4)), 0),
		CurrentScore:    utils.ParseNumberOrDefault(rows.Text(tds.Eq(5)), 0),
		Name:            name,
		Link:            utils.FirstLink(nameCell.Find("a").First().Attr("href")),
		LastDiveAverage: utils.ParseNumberOrDefault(rows.Text(tds.Eq(7)), 0),
		EventAverage:    utils.ParseNumberOrDefault(rows.Text(tds.Eq(8)), 0),
		RoundAverage:    utils.ParseNumberOrDefault(rows.Text(tds.Eq(9)), 0),
	}, true
}

func sliceNumber(text, start, end string) float64 {
	v, ok := utils.SliceBetween(text, start, end)
	if !ok {
		return 0
	}
	return utils.ParseNumberOrDefault(v, 0)
}

func sliceInt(text, start, end string) int {
	v, ok := utils.SliceBetween(text, start, end)
	if !ok {
		return 0
	}
	return utils.ParseIntOrDefault(utils.CollapseWhitespace(v), 0)
}
