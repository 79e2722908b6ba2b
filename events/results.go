// Package events extracts posted event-results pages, the final standings
// a meet-results page links each finished event to.
package events

import (
	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// EventResults is a parsed event-results page.
type EventResults struct {
	Title   string        `json:"title"`
	Date    string        `json:"date"`
	Results []EventResult `json:"results"`
}

// EventResult is one diver's final standing in the event. ScoreLink points
// at the per-dive score sheet when one is posted.
type EventResult struct {
	Place     int     `json:"place"`
	Name      string  `json:"name"`
	Link      string  `json:"link"`
	Team      string  `json:"team"`
	Score     float64 `json:"score"`
	ScoreLink string  `json:"scoreLink,omitempty"`
}

// ExtractEventResults parses an event-results page. The first two rows of
// the content table are the event title and date, the third is the column
// header; result rows follow. Returns nil when the page has no content
// table.
func ExtractEventResults(doc *goquery.Document) *EventResults {
	table := doc.Find("table").Eq(rows.SidebarOffset(doc))
	if table.Length() == 0 {
		return nil
	}

	results := &EventResults{}
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		switch {
		case i == 0:
			results.Title = rows.Text(row)
		case i == 1:
			results.Date = reformatDate(rows.Text(row))
		case i == 2:
			// Column header row.
		default:
			if result, ok := parseResultRow(row); ok {
				results.Results = append(results.Results, result)
			}
		}
	})

	if results.Title == "" {
		return nil
	}
	return results
}

// parseResultRow reads one standing. A row without a profile link carries
// no identity and is skipped.
func parseResultRow(row *goquery.Selection) (EventResult, bool) {
	cells := rows.Cells(row)
	if len(cells) < 4 {
		return EventResult{}, false
	}
	anchor := row.Find(`a[href*="profile"]`).First()
	href, ok := anchor.Attr("href")
	if !ok || rows.Text(anchor) == "" {
		return EventResult{}, false
	}

	result := EventResult{
		Place: utils.ParseIntOrDefault(cells[0], 0),
		Name:  rows.Text(anchor),
		Link:  utils.PrefixLink(href),
		Team:  cells[2],
		Score: utils.ParseNumberOrDefault(cells[3], 0),
	}
	if sheet := row.Find(`a[href*="divesheetresultsext"]`).First(); sheet.Length() > 0 {
		result.ScoreLink = utils.FirstLink(sheet.Attr("href"))
	}
	return result, true
}

func reformatDate(s string) string {
	formatted, err := utils.FormatDate(s)
	if err != nil {
		return s
	}
	return formatted
}
