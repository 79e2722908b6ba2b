package entries

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const entrySheetPage = `<table>
<tr><td><strong><a href="profile.php?number=11">Smith, John</a> <a href="memlist.php?team=5">GC Diving</a> 3.0M</strong></td></tr>
<tr><td>107B</td><td>3.0M</td><td>Forward 1 1/2 Somersault</td><td>2.6</td></tr>
<tr><td><strong>DD Total 7.8</strong></td></tr>
</table>`

func TestExtractEventEntries(t *testing.T) {
	entries := ExtractEventEntries(parseDoc(t, entrySheetPage))
	require.Len(t, entries, 1)

	assert.Equal(t, EventEntry{
		FirstName: "John",
		LastName:  "Smith",
		Team:      "GC Diving",
		Link:      "https://secure.meetcontrol.com/divemeets/system/profile.php?number=11",
		Board:     "3.0M",
		TotalDD:   7.8,
		Dives: []EntryDive{{
			Number: "107B",
			Height: 3.0,
			Name:   "Forward 1 1/2 Somersault",
			DD:     2.6,
		}},
	}, entries[0])
}

func TestExtractEventEntriesSynchro(t *testing.T) {
	entries := ExtractEventEntries(parseDoc(t, `<table>
<tr><td><strong><a href="profile.php?number=11">Smith, John</a> <a href="profile.php?number=13">Doe, Jane</a> <a href="memlist.php?team=5">GC Diving</a> 3M</strong></td></tr>
<tr><td>5132D</td><td>3M</td><td>Back 1 1/2 Somersault 1 Twist</td><td>2.3</td></tr>
<tr><td><strong>DD Total 2.3</strong></td></tr>
</table>`))
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "John", entry.FirstName)
	require.NotNil(t, entry.SynchroPartner)
	assert.Equal(t, "Doe, Jane", entry.SynchroPartner.Name)
	assert.Equal(t,
		"https://secure.meetcontrol.com/divemeets/system/profile.php?number=13",
		entry.SynchroPartner.Link)
	assert.Equal(t, "3M", entry.Board)
}

// A block cut off before its "DD Total" row never reaches the caller.
func TestExtractEventEntriesDiscardsUnclosedBlock(t *testing.T) {
	entries := ExtractEventEntries(parseDoc(t, `<table>
<tr><td><strong><a href="profile.php?number=11">Smith, John</a> 1M</strong></td></tr>
<tr><td>107B</td><td>1M</td><td>Forward 1 1/2 Somersault</td><td>2.6</td></tr>
<tr><td><strong><a href="profile.php?number=13">Doe, Jane</a> 1M</strong></td></tr>
<tr><td>201A</td><td>1M</td><td>Back Dive</td><td>1.7</td></tr>
<tr><td><strong>DD Total 1.7</strong></td></tr>
</table>`))

	require.Len(t, entries, 1)
	assert.Equal(t, "Jane", entries[0].FirstName)
}

// Dive rows with noise annotations in the DD cell default to zero instead
// of poisoning the entry.
func TestExtractEventEntriesFailedDive(t *testing.T) {
	entries := ExtractEventEntries(parseDoc(t, `<table>
<tr><td><strong><a href="profile.php?number=11">Smith, John</a> 1M</strong></td></tr>
<tr><td>107B</td><td>1M</td><td>Forward 1 1/2 Somersault</td><td>  Failed Dive</td></tr>
<tr><td><strong>DD Total 0.0</strong></td></tr>
</table>`))

	require.Len(t, entries, 1)
	require.Len(t, entries[0].Dives, 1)
	assert.Equal(t, 0.0, entries[0].Dives[0].DD)
}

func TestExtractEventEntriesNoTable(t *testing.T) {
	assert.Nil(t, ExtractEventEntries(parseDoc(t, `<p>no sheet posted</p>`)))
}

func TestExtractEventEntriesSidebarOffset(t *testing.T) {
	entries := ExtractEventEntries(parseDoc(t,
		`<table><tr><td>Dive Sheet</td></tr></table>`+entrySheetPage))
	require.Len(t, entries, 1)
	assert.Equal(t, "John", entries[0].FirstName)
}

// For any mix of closed and truncated diver blocks, the number of entries
// equals the number of "DD Total" rows.
func TestExtractEventEntriesClosureProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	properties := gopter.NewProperties(parameters)

	properties.Property("entry count equals DD Total row count", prop.ForAll(
		func(closed []bool) bool {
			var sb strings.Builder
			sb.WriteString("<table>")
			ddRows := 0
			for i, c := range closed {
				fmt.Fprintf(&sb,
					`<tr><td><strong><a href="profile.php?number=%d">Diver, Test</a> 1M</strong></td></tr>`, i)
				sb.WriteString(`<tr><td>107B</td><td>1M</td><td>Forward 1 1/2 Somersault</td><td>2.6</td></tr>`)
				if c {
					sb.WriteString(`<tr><td><strong>DD Total 2.6</strong></td></tr>`)
					ddRows++
				}
			}
			sb.WriteString("</table>")

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
			if err != nil {
				return false
			}
			return len(ExtractEventEntries(doc)) == ddRows
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
