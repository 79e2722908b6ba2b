// Package rows turns the flat row sequences of the site's nested tables
// into logical groups. The source pages have no machine-readable schema;
// section boundaries are ordinary rows whose exact text marks where one
// logical section ends and the next begins.
package rows

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/utils"
)

// Stage identifies the current logical section of a multi-section page.
// Each page family defines its own Stage values.
type Stage int

// StageNone is the stage before the first boundary row. Rows seen while in
// StageNone carry no section and are discarded by callers.
const StageNone Stage = -1

// Boundary describes a stage-marker row. A row matches either by exact
// collapsed text or, when Match is set, by an arbitrary predicate on the
// row node (some markers are recognized by markup, not text).
type Boundary struct {
	Text  string
	Match func(*goquery.Selection) bool
	Stage Stage
}

// StageMachine classifies rows in document order. A boundary row advances
// the machine to the stage it names and is never emitted as data; every
// other row belongs to the stage that is current when it is seen.
type StageMachine struct {
	boundaries []Boundary
	current    Stage
}

// NewStageMachine builds a machine in StageNone.
func NewStageMachine(boundaries ...Boundary) *StageMachine {
	return &StageMachine{boundaries: boundaries, current: StageNone}
}

// Advance feeds one row. The returned stage is the stage the row belongs
// to; boundary reports whether the row was a marker (and so carries no
// data).
func (m *StageMachine) Advance(row *goquery.Selection) (stage Stage, boundary bool) {
	text := Text(row)
	for _, b := range m.boundaries {
		if b.Match != nil {
			if b.Match(row) {
				m.current = b.Stage
				return m.current, true
			}
			continue
		}
		if text == b.Text {
			m.current = b.Stage
			return m.current, true
		}
	}
	return m.current, false
}

// Grouper accumulates rows into records that open on one marker row and
// close on another. Open starting a new record while one is still open
// silently discards the unfinished one; a record still open at end of
// input is likewise discarded. Only explicitly closed records are emitted,
// so a partially-built record never reaches the caller.
type Grouper[T any] struct {
	// Open reports whether row starts a new record and returns it.
	Open func(row *goquery.Selection) (T, bool)
	// Close reports whether row terminates the current record and returns
	// its final value.
	Close func(row *goquery.Selection, rec T) (T, bool)
	// Append folds a continuation row into the current record. Returning
	// false skips the row.
	Append func(row *goquery.Selection, rec T) (T, bool)
}

// Run processes rows in document order and returns the closed records.
func (g Grouper[T]) Run(rows *goquery.Selection) []T {
	var out []T
	var cur T
	open := false

	rows.Each(func(_ int, row *goquery.Selection) {
		if rec, ok := g.Open(row); ok {
			cur = rec
			open = true
			return
		}
		if !open {
			return
		}
		if rec, ok := g.Close(row, cur); ok {
			out = append(out, rec)
			open = false
			return
		}
		if g.Append != nil {
			if rec, ok := g.Append(row, cur); ok {
				cur = rec
			}
		}
	})
	return out
}

// Text returns a row's text with entities stripped and whitespace
// collapsed, the form every boundary label is matched against.
func Text(sel *goquery.Selection) string {
	return utils.CollapseWhitespace(utils.StripEntities(sel.Text()))
}

// Cells returns the collapsed text of each td in the row.
func Cells(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, Text(td))
	})
	return cells
}

// BoldText returns the collapsed text of the row's first b/strong element,
// or "" when the row has none.
func BoldText(row *goquery.Selection) string {
	bold := row.Find("strong,b").First()
	if bold.Length() == 0 {
		return ""
	}
	return Text(bold)
}

// SidebarOffset reports how many leading tables belong to the
// upcoming-meets sidebar. Pages rendered with the sidebar put a "Dive
// Sheet" marker in the first table and shift the table that holds the real
// data by one. Several extractors share this check.
func SidebarOffset(doc *goquery.Document) int {
	first := doc.Find("table").First()
	if first.Length() == 0 {
		return 0
	}
	if strings.Contains(first.Text(), "Dive Sheet") {
		return 1
	}
	return 0
}
