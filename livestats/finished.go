package livestats

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// FinishedEvent is the result sheet of a completed live-results event.
type FinishedEvent struct {
	Title   string           `json:"title"`
	Results []FinishedResult `json:"results"`
}

// FinishedResult is one diver's final standing.
type FinishedResult struct {
	Place        int     `json:"place"`
	First        string  `json:"first"`
	Last         string  `json:"last"`
	Link         string  `json:"link"`
	Team         string  `json:"team"`
	Score        float64 `json:"score"`
	ScoreLink    string  `json:"scoreLink"`
	EventAverage float64 `json:"eventAverage"`
	RoundAverage float64 `json:"roundAverage"`
}

const finishedTitlePrefix = "Live Results - "

// Result rows start after the fixed header block.
const firstResultRow = 4

// ExtractFinishedEvent parses a finished live-results page. Row 1 holds
// the title; result rows run from row 4 until the "Official" footer row.
// Returns nil when the page is shorter than the fixed layout.
//
// Result rows are flat text split positionally: place, first and last
// name, then the team up to the opening parenthesis, then score and the
// two averages. This assumes no name or team contains the separator
// characters, an assumption inherited from the site's format.
func ExtractFinishedEvent(doc *goquery.Document) *FinishedEvent {
	allRows := doc.Find("tr")
	if allRows.Length() <= firstResultRow {
		return nil
	}

	event := &FinishedEvent{
		Title: strings.TrimPrefix(rows.Text(allRows.Eq(1)), finishedTitlePrefix),
	}

	for i := firstResultRow; i < allRows.Length(); i++ {
		row := allRows.Eq(i)
		if strings.HasPrefix(rows.Text(row), "Official") {
			break
		}
		if result, ok := parseFinishedRow(row); ok {
			event.Results = append(event.Results, result)
		}
	}
	return event
}

// parseFinishedRow splits "1 John Smith GC Diving (345.60 57.60 57.60)".
func parseFinishedRow(row *goquery.Selection) (FinishedResult, bool) {
	text := rows.Text(row)
	head, stats, ok := strings.Cut(text, " (")
	if !ok {
		return FinishedResult{}, false
	}

	fields := strings.Fields(head)
	if len(fields) < 3 {
		return FinishedResult{}, false
	}

	result := FinishedResult{
		Place: utils.ParseIntOrDefault(fields[0], 0),
		First: fields[1],
		Last:  fields[2],
		Team:  strings.Join(fields[3:], " "),
	}
	if result.First == "" || result.Last == "" {
		return FinishedResult{}, false
	}

	stats, _, _ = strings.Cut(stats, ")")
	nums := strings.Fields(stats)
	if len(nums) > 0 {
		result.Score = utils.ParseNumberOrDefault(nums[0], 0)
	}
	if len(nums) > 1 {
		result.EventAverage = utils.ParseNumberOrDefault(nums[1], 0)
	}
	if len(nums) > 2 {
		result.RoundAverage = utils.ParseNumberOrDefault(nums[2], 0)
	}

	anchors := row.Find("a")
	result.Link = utils.FirstLink(anchors.First().Attr("href"))
	if anchors.Length() > 1 {
		result.ScoreLink = utils.FirstLink(anchors.Eq(1).Attr("href"))
	}
	return result, true
}
