package profile

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// DiveStatistic is one row of the dive statistics table on a diver
// profile: lifetime numbers for one dive at one height.
type DiveStatistic struct {
	Number    string  `json:"number"`
	Name      string  `json:"name"`
	Height    float64 `json:"height"`
	HighScore float64 `json:"highScore"`
	AvgScore  float64 `json:"avgScore"`
	Times     int     `json:"times"`
}

// ExtractDiveStatistics parses the statistics table of a profile page,
// identified by its "Dive Statistics" heading. Returns nil when the page
// has no such table.
func ExtractDiveStatistics(doc *goquery.Document) []DiveStatistic {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if strings.Contains(t.Text(), "Dive Statistics") {
			table = t
			return false
		}
		return true
	})
	if table == nil {
		return nil
	}

	var stats []DiveStatistic
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// Heading row and column-header row, dropped by position.
		if i < 2 {
			return
		}
		cells := rows.Cells(row)
		if len(cells) < 6 || cells[0] == "" {
			return
		}
		stats = append(stats, DiveStatistic{
			Number:    cells[0],
			Name:      cells[1],
			Height:    utils.ParseNumberOrDefault(strings.TrimSuffix(cells[2], "M"), 0),
			HighScore: utils.ParseNumberOrDefault(cells[3], 0),
			AvgScore:  utils.ParseNumberOrDefault(cells[4], 0),
			Times:     utils.ParseIntOrDefault(cells[5], 0),
		})
	})
	return stats
}
