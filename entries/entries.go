// Package entries extracts per-diver registrations from event entry
// sheets. An entry opens on a bolded diver row, accumulates dive rows and
// closes on the "DD Total" row; an entry never reaches the caller before
// its closing row is seen.
package entries

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// EventEntry is one diver's full registration for one event.
type EventEntry struct {
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Team           string      `json:"team"`
	Link           string      `json:"link"`
	Board          string      `json:"board,omitempty"`
	TotalDD        float64     `json:"totalDD"`
	SynchroPartner *Partner    `json:"synchroPartner,omitempty"`
	Dives          []EntryDive `json:"dives"`
}

// Partner is the second diver of a synchro entry.
type Partner struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// EntryDive is one dive on an entry sheet.
type EntryDive struct {
	Number string  `json:"number"`
	Height float64 `json:"height"`
	Name   string  `json:"name"`
	DD     float64 `json:"dd"`
}

var boardPattern = regexp.MustCompile(`^\d+(\.\d+)?M$`)

// ExtractEventEntries parses an entry sheet page. Returns nil when the
// page has no entry table. Entries opened but never closed by a
// "DD Total" row are discarded.
func ExtractEventEntries(doc *goquery.Document) []EventEntry {
	table := doc.Find("table").Eq(rows.SidebarOffset(doc))
	if table.Length() == 0 {
		return nil
	}

	grouper := rows.Grouper[EventEntry]{
		Open:   openEntry,
		Close:  closeEntry,
		Append: appendDive,
	}
	return grouper.Run(table.Find("tr"))
}

// openEntry recognizes the bolded header row of a diver block: a strong
// element holding the diver's profile link, optionally a synchro partner
// link, a team link and the board label.
func openEntry(row *goquery.Selection) (EventEntry, bool) {
	bold := row.Find("strong,b").First()
	if bold.Length() == 0 {
		return EventEntry{}, false
	}

	var profiles, others []*goquery.Selection
	bold.Find("a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && strings.Contains(href, "profile") {
			profiles = append(profiles, a)
		} else {
			others = append(others, a)
		}
	})
	if len(profiles) == 0 {
		return EventEntry{}, false
	}

	first, last, ok := splitName(rows.Text(profiles[0]))
	if !ok {
		// A block without a diver name has no identity; skip the whole
		// block by not opening it.
		return EventEntry{}, false
	}

	entry := EventEntry{
		FirstName: first,
		LastName:  last,
		Link:      utils.FirstLink(profiles[0].Attr("href")),
	}
	if len(profiles) > 1 {
		entry.SynchroPartner = &Partner{
			Name: rows.Text(profiles[1]),
			Link: utils.FirstLink(profiles[1].Attr("href")),
		}
	}
	if len(others) > 0 {
		entry.Team = rows.Text(others[0])
	}

	// The board label trails the links as loose bold text, e.g. "3M".
	fields := strings.Fields(rows.Text(bold))
	if len(fields) > 0 && boardPattern.MatchString(fields[len(fields)-1]) {
		entry.Board = fields[len(fields)-1]
	}
	return entry, true
}

// closeEntry recognizes the terminating "DD Total" row and fills in the
// total degree of difficulty.
func closeEntry(row *goquery.Selection, entry EventEntry) (EventEntry, bool) {
	bold := rows.BoldText(row)
	if !strings.Contains(bold, "DD Total") {
		return entry, false
	}
	total, _ := utils.SliceAfter(bold, "DD Total")
	entry.TotalDD = utils.ParseNumberOrDefault(total, 0)
	return entry, true
}

// appendDive folds one dive row into the open entry. A row without a dive
// number carries no identity and is skipped.
func appendDive(row *goquery.Selection, entry EventEntry) (EventEntry, bool) {
	cells := rows.Cells(row)
	if len(cells) < 4 || cells[0] == "" {
		return entry, false
	}
	entry.Dives = append(entry.Dives, EntryDive{
		Number: cells[0],
		Height: utils.ParseNumberOrDefault(strings.TrimSuffix(cells[1], "M"), 0),
		Name:   cells[2],
		DD:     utils.ParseNumberOrDefault(cells[3], 0),
	})
	return entry, true
}

// splitName splits the site's "Last, First" form.
func splitName(name string) (first, last string, ok bool) {
	last, first, ok = strings.Cut(name, ", ")
	if !ok || first == "" || last == "" {
		return "", "", false
	}
	return first, last, true
}
