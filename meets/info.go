package meets

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// MeetInfo is the parsed meet-info page: the free-form info block plus the
// event schedule and the registered divers and coaches.
type MeetInfo struct {
	Name     string            `json:"name"`
	Info     map[string]string `json:"info"`
	Schedule []DaySchedule     `json:"schedule"`
	Events   []MeetEvent       `json:"events"`
	Divers   []Diver           `json:"divers"`
	Coaches  []Coach           `json:"coaches"`
}

// DaySchedule groups the warmup/start times listed under one day header.
type DaySchedule struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// MeetEvent is one scheduled event on the info page. EntriesLink is empty
// while signup has not opened yet.
type MeetEvent struct {
	Date        string `json:"date"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	RuleLink    string `json:"ruleLink"`
	EntriesLink string `json:"entriesLink,omitempty"`
}

// Diver is a diver as listed on a meet page.
type Diver struct {
	Name   string   `json:"name"`
	Team   string   `json:"team"`
	Link   string   `json:"link"`
	Events []string `json:"events,omitempty"`
}

// Coach is a coach registered for a meet.
type Coach struct {
	Name string `json:"name"`
	Team string `json:"team"`
	Link string `json:"link"`
}

const (
	stageNote rows.Stage = iota
	stageDivers
	stageCoaches
)

// ExtractMeetInfo parses a meet-info page. Returns nil when the page has
// no content table, and also when an identity-defining row (a diver or
// coach row without a profile link) or an unparseable start/end date is hit, per the
// whole-page failure policy for identity data.
func ExtractMeetInfo(doc *goquery.Document) *MeetInfo {
	table := doc.Find("table").Eq(rows.SidebarOffset(doc))
	if table.Length() == 0 {
		return nil
	}

	machine := rows.NewStageMachine(
		rows.Boundary{
			Match: func(row *goquery.Selection) bool {
				return strings.HasPrefix(rows.Text(row), "Note:")
			},
			Stage: stageNote,
		},
		rows.Boundary{Text: "Divers Entered:", Stage: stageDivers},
		rows.Boundary{Text: "Coaches Registered:", Stage: stageCoaches},
	)

	info := &MeetInfo{Info: map[string]string{}}
	failed := false

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if failed {
			return
		}
		stage, boundary := machine.Advance(row)
		if boundary {
			return
		}

		switch stage {
		case rows.StageNone:
			if !parseInfoRow(row, info) {
				failed = true
			}
		case stageNote:
			// Footnote text between the info block and the diver list.
		case stageDivers:
			diver, ok := parseMeetDiverRow(row)
			if !ok {
				failed = true
				return
			}
			if diver != nil {
				info.Divers = append(info.Divers, *diver)
			}
		case stageCoaches:
			coach, ok := parseMeetCoachRow(row)
			if !ok {
				failed = true
				return
			}
			if coach != nil {
				info.Coaches = append(info.Coaches, *coach)
			}
		}
	})

	if failed {
		return nil
	}
	return info
}

// parseInfoRow classifies one row of the block above "Divers Entered:".
// Rows are, in observed priority: event rows (carry a rule link), day
// headers (a single center-aligned date), times under the open day header,
// "label: value" rows, and finally the meet name. Returns false only for
// the hard failure of an unparseable start/end date.
func parseInfoRow(row *goquery.Selection, info *MeetInfo) bool {
	if row.Find(`a[href*="eventinfo"]`).Length() > 0 {
		if event, ok := parseEventRow(row); ok {
			info.Events = append(info.Events, event)
		}
		return true
	}

	text := rows.Text(row)
	if text == "" {
		return true
	}

	if day, ok := parseDayHeader(row); ok {
		info.Schedule = append(info.Schedule, DaySchedule{Day: day})
		return true
	}

	if label, value, ok := strings.Cut(text, ": "); ok {
		return setInfoField(info, label, value, row)
	}

	// Time rows belong to the most recent day header.
	if len(info.Schedule) > 0 {
		if t := utils.FormatTime(text); t != "" {
			last := &info.Schedule[len(info.Schedule)-1]
			last.Times = append(last.Times, t)
			return true
		}
	}

	if info.Name == "" {
		info.Name = text
	}
	return true
}

// setInfoField stores a label:value info row, applying the field-specific
// reformatting the display layer expects.
func setInfoField(info *MeetInfo, label, value string, row *goquery.Selection) bool {
	switch label {
	case "Start Date", "End Date":
		formatted, err := utils.FormatDate(value)
		if err != nil {
			return false
		}
		info.Info[label] = formatted
	case "Entry Deadline", "Fee must be paid by":
		if formatted, err := utils.FormatDateTime(value); err == nil {
			info.Info[label] = formatted
		} else {
			info.Info[label] = value
		}
	case "Pool":
		full := textWithBreaks(row.Find("td").Last())
		info.Info[label] = strings.TrimPrefix(full, label+": ")
	default:
		info.Info[label] = value
	}
	return true
}

func parseEventRow(row *goquery.Selection) (MeetEvent, bool) {
	cells := rows.Cells(row)
	if len(cells) < 3 {
		return MeetEvent{}, false
	}
	rule := row.Find(`a[href*="eventinfo"]`).First()
	event := MeetEvent{
		Date:     reformatDate(cells[0]),
		Number:   utils.ParseIntOrDefault(cells[1], 0),
		Name:     rows.Text(rule),
		RuleLink: utils.FirstLink(rule.Attr("href")),
	}
	if entries := row.Find(`a[href*="divesheetext"]`).First(); entries.Length() > 0 {
		event.EntriesLink = utils.FirstLink(entries.Attr("href"))
	}
	return event, event.Name != ""
}

// parseDayHeader recognizes a single center-aligned cell holding a date.
func parseDayHeader(row *goquery.Selection) (string, bool) {
	center := row.Find(`td[align="center"], center`)
	if center.Length() == 0 {
		return "", false
	}
	day, err := utils.FormatDate(rows.Text(center.First()))
	if err != nil {
		return "", false
	}
	return day, true
}

// parseMeetDiverRow returns (nil, true) for rows to skip, (nil, false) for
// the identity failure that voids the whole page.
func parseMeetDiverRow(row *goquery.Selection) (*Diver, bool) {
	cells := rows.Cells(row)
	if len(cells) < 2 {
		return nil, true
	}
	anchor := row.Find(`a[href*="profile"]`).First()
	href, ok := anchor.Attr("href")
	if !ok || rows.Text(anchor) == "" {
		// A diver row without a name/link means the page cannot be trusted.
		return nil, false
	}
	diver := &Diver{
		Name: rows.Text(anchor),
		Team: cells[1],
		Link: utils.PrefixLink(href),
	}
	if len(cells) > 2 && cells[2] != "" {
		for _, event := range strings.Split(cells[2], ";") {
			if event = strings.TrimSpace(event); event != "" {
				diver.Events = append(diver.Events, event)
			}
		}
	}
	return diver, true
}

// parseMeetCoachRow applies the same identity policy as diver rows: a
// coach row without a name/link voids the whole page.
func parseMeetCoachRow(row *goquery.Selection) (*Coach, bool) {
	cells := rows.Cells(row)
	if len(cells) < 2 {
		return nil, true
	}
	anchor := row.Find(`a[href*="profile"]`).First()
	href, ok := anchor.Attr("href")
	if !ok || rows.Text(anchor) == "" {
		return nil, false
	}
	return &Coach{
		Name: rows.Text(anchor),
		Team: cells[1],
		Link: utils.PrefixLink(href),
	}, true
}

// textWithBreaks extracts a cell's text with <br> separators preserved as
// newlines, for multi-line fields like the pool description.
func textWithBreaks(sel *goquery.Selection) string {
	html, err := sel.Html()
	if err != nil {
		return rows.Text(sel)
	}
	html = strings.ReplaceAll(html, "<br/>", "\n")
	html = strings.ReplaceAll(html, "<br>", "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return rows.Text(sel)
	}
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = utils.CollapseWhitespace(utils.StripEntities(line)); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
