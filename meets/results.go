package meets

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// MeetResults is the parsed meet-results page. Results pages expose a
// different attribute set per event than info pages, so MeetResultsEvent
// is deliberately a separate type from MeetEvent.
type MeetResults struct {
	Name       string             `json:"name"`
	Date       string             `json:"date"`
	Events     []MeetResultsEvent `json:"events"`
	LiveEvents []LiveEventLink    `json:"liveEvents,omitempty"`
	Divers     []Diver            `json:"divers"`
}

// MeetResultsEvent is one finished event with posted results.
type MeetResultsEvent struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Entries int    `json:"entries"`
	Date    string `json:"date"`
}

// LiveEventLink points at an event still running under live results.
type LiveEventLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// ExtractMeetResults parses a meet-results page. The page needs two
// tables: the event table (first two rows are meet name and date, event
// rows carry a bgcolor attribute, live-results rows an inline style) and
// the diver table. Fewer than two tables is structural absence.
func ExtractMeetResults(doc *goquery.Document) *MeetResults {
	offset := rows.SidebarOffset(doc)
	tables := doc.Find("table")
	if tables.Length() < offset+2 {
		return nil
	}

	results := &MeetResults{}

	tables.Eq(offset).Find("tr").Each(func(i int, row *goquery.Selection) {
		switch {
		case i == 0:
			results.Name = rows.Text(row)
		case i == 1:
			results.Date = reformatDate(rows.Text(row))
		default:
			parseResultsRow(row, results)
		}
	})

	// Second table lists divers; the first row is the column header.
	tables.Eq(offset + 1).Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		if diver, ok := parseResultsDiverRow(row); ok {
			results.Divers = append(results.Divers, diver)
		}
	})

	if results.Name == "" {
		return nil
	}
	return results
}

// parseResultsRow dispatches on markup: bgcolor marks an event row, an
// inline style marks a live-results row.
func parseResultsRow(row *goquery.Selection, results *MeetResults) {
	if _, ok := row.Attr("bgcolor"); ok {
		if event, ok := parseResultsEventRow(row); ok {
			results.Events = append(results.Events, event)
		}
		return
	}
	if _, ok := row.Attr("style"); ok {
		if live, ok := parseLiveEventRow(row); ok {
			results.LiveEvents = append(results.LiveEvents, live)
		}
	}
}

func parseResultsEventRow(row *goquery.Selection) (MeetResultsEvent, bool) {
	cells := rows.Cells(row)
	if len(cells) < 3 {
		return MeetResultsEvent{}, false
	}
	anchor := row.Find("a").First()
	href, ok := anchor.Attr("href")
	if !ok || rows.Text(anchor) == "" {
		return MeetResultsEvent{}, false
	}
	return MeetResultsEvent{
		Name:    rows.Text(anchor),
		Link:    utils.PrefixLink(href),
		Entries: utils.ParseIntOrDefault(cells[1], 0),
		Date:    reformatDate(cells[2]),
	}, true
}

// parseLiveEventRow reads a live-results row: name is the bold text, link
// the first anchor. Links ending in "Finished" belong to completed events
// and are excluded here; they surface as ordinary event rows instead.
func parseLiveEventRow(row *goquery.Selection) (LiveEventLink, bool) {
	name := rows.BoldText(row)
	href, ok := row.Find("a").First().Attr("href")
	if name == "" || !ok || strings.HasSuffix(href, "Finished") {
		return LiveEventLink{}, false
	}
	return LiveEventLink{Name: name, Link: utils.PrefixLink(href)}, true
}

func parseResultsDiverRow(row *goquery.Selection) (Diver, bool) {
	cells := rows.Cells(row)
	if len(cells) < 2 {
		return Diver{}, false
	}
	anchor := row.Find(`a[href*="profile"]`).First()
	href, ok := anchor.Attr("href")
	if !ok || rows.Text(anchor) == "" {
		return Diver{}, false
	}
	return Diver{
		Name: rows.Text(anchor),
		Team: cells[1],
		Link: utils.PrefixLink(href),
	}, true
}
