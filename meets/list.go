// Package meets extracts meet-level records from the site's meet list,
// meet-info and meet-results pages.
package meets

import (
	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// MeetKind classifies a meet by where it appears on the meet list page.
type MeetKind string

const (
	MeetUpcoming MeetKind = "upcoming"
	MeetCurrent  MeetKind = "current"
	MeetPast     MeetKind = "past"
)

// Meet is one row of the meet list page. Link is the meet's identity; a
// re-parse supersedes earlier records rather than updating them.
type Meet struct {
	Name         string   `json:"name"`
	Link         string   `json:"link"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Organization string   `json:"organization"`
	Kind         MeetKind `json:"kind"`
}

const (
	stageUpcoming rows.Stage = iota
	stageCurrent
	stagePast
)

var listStages = map[rows.Stage]MeetKind{
	stageUpcoming: MeetUpcoming,
	stageCurrent:  MeetCurrent,
	stagePast:     MeetPast,
}

// ExtractMeetList parses the meet list page. The page is one table whose
// section headers ("Upcoming Meets" etc.) are ordinary rows; rows before
// the first header are discarded. Returns nil when the page has no table.
func ExtractMeetList(doc *goquery.Document) []Meet {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	machine := rows.NewStageMachine(
		rows.Boundary{Text: "Upcoming Meets", Stage: stageUpcoming},
		rows.Boundary{Text: "Current Meets", Stage: stageCurrent},
		rows.Boundary{Text: "Past Meets", Stage: stagePast},
	)

	var meets []Meet
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		stage, boundary := machine.Advance(row)
		if boundary || stage == rows.StageNone {
			return
		}
		if meet, ok := parseMeetRow(row, listStages[stage]); ok {
			meets = append(meets, meet)
		}
	})
	return meets
}

// parseMeetRow reads one meet row. A meet without a link has no identity
// and is dropped; rows with too few cells are skipped.
func parseMeetRow(row *goquery.Selection, kind MeetKind) (Meet, bool) {
	cells := rows.Cells(row)
	if len(cells) < 7 {
		return Meet{}, false
	}
	anchor := row.Find("a").First()
	href, ok := anchor.Attr("href")
	if !ok || href == "" {
		return Meet{}, false
	}

	return Meet{
		Name:         rows.Text(anchor),
		Link:         utils.PrefixLink(href),
		StartDate:    reformatDate(cells[1]),
		EndDate:      reformatDate(cells[2]),
		City:         cells[3],
		State:        cells[4],
		Country:      cells[5],
		Organization: cells[6],
		Kind:         kind,
	}, true
}

// reformatDate converts to the canonical long form, keeping the raw text
// when the cell does not carry a recognizable date.
func reformatDate(s string) string {
	formatted, err := utils.FormatDate(s)
	if err != nil {
		return s
	}
	return formatted
}
