package events

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const eventResultsPage = `<table>
<tr><td>Men 1M Springboard</td></tr>
<tr><td>05-16-2023</td></tr>
<tr><td>Place</td><td>Diver</td><td>Team</td><td>Score</td></tr>
<tr>
  <td>1</td>
  <td><a href="profile.php?number=11">Smith, John</a></td>
  <td>GC Diving</td>
  <td>345.60</td>
  <td><a href="divesheetresultsext.php?dvrnum=11">Scores</a></td>
</tr>
<tr>
  <td>2</td>
  <td><a href="profile.php?number=13">Doe, Jane</a></td>
  <td>Tsunami Diving Team</td>
  <td>330.15</td>
</tr>
<tr><td>Exhibition</td><td>Withdrawn Diver</td><td>GC Diving</td><td></td></tr>
</table>`

func TestExtractEventResults(t *testing.T) {
	results := ExtractEventResults(parseDoc(t, eventResultsPage))
	require.NotNil(t, results)

	assert.Equal(t, "Men 1M Springboard", results.Title)
	assert.Equal(t, "Tuesday, May 16, 2023", results.Date)

	// The linkless withdrawn row is skipped, not fatal.
	require.Len(t, results.Results, 2)
	assert.Equal(t, EventResult{
		Place:     1,
		Name:      "Smith, John",
		Link:      "https://secure.meetcontrol.com/divemeets/system/profile.php?number=11",
		Team:      "GC Diving",
		Score:     345.60,
		ScoreLink: "https://secure.meetcontrol.com/divemeets/system/divesheetresultsext.php?dvrnum=11",
	}, results.Results[0])

	// Score sheet link is absent until scores are posted.
	assert.Equal(t, "Doe, Jane", results.Results[1].Name)
	assert.Equal(t, "", results.Results[1].ScoreLink)
}

func TestExtractEventResultsNoTable(t *testing.T) {
	assert.Nil(t, ExtractEventResults(parseDoc(t, `<p>results not posted</p>`)))
}

func TestExtractEventResultsSidebarOffset(t *testing.T) {
	results := ExtractEventResults(parseDoc(t,
		`<table><tr><td>Dive Sheet</td></tr></table>`+eventResultsPage))
	require.NotNil(t, results)
	assert.Equal(t, "Men 1M Springboard", results.Title)
	assert.Len(t, results.Results, 2)
}
