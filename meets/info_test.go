package meets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meetInfoPage = `<table>
<tr><td>Spring Invite</td></tr>
<tr><td>Start Date: 2023-05-16</td></tr>
<tr><td>End Date: 2023-05-18</td></tr>
<tr><td>Entry Deadline: 05-10-2023 5:00 PM</td></tr>
<tr><td>Fee must be paid by: whenever</td></tr>
<tr><td>Pool: Big Natatorium<br>500 Main St</td></tr>
<tr><td align="center">05-16-2023</td></tr>
<tr><td>8:00 AM</td></tr>
<tr><td>10:00 AM</td></tr>
<tr>
  <td>05-16-2023</td><td>1</td>
  <td><a href="eventinfo.php?eventnum=1">Men 1M Springboard</a></td>
  <td><a href="divesheetext.php?number=1">Entries</a></td>
</tr>
<tr>
  <td>05-17-2023</td><td>2</td>
  <td><a href="eventinfo.php?eventnum=2">Women 3M Springboard</a></td>
</tr>
<tr><td>Note: schedule subject to change</td></tr>
<tr><td>Divers Entered:</td></tr>
<tr><td><a href="profile.php?number=11">Smith, John</a></td><td>GC Diving</td><td>1M; 3M</td></tr>
<tr><td><a href="profile.php?number=13">Doe, Jane</a></td><td>Tsunami</td><td></td></tr>
<tr><td>Coaches Registered:</td></tr>
<tr><td><a href="profile.php?number=12">Jones, Pat</a></td><td>GC Diving</td></tr>
</table>`

func TestExtractMeetInfo(t *testing.T) {
	info := ExtractMeetInfo(parseDoc(t, meetInfoPage))
	require.NotNil(t, info)

	assert.Equal(t, "Spring Invite", info.Name)
	assert.Equal(t, map[string]string{
		"Start Date":          "Tuesday, May 16, 2023",
		"End Date":            "Thursday, May 18, 2023",
		"Entry Deadline":      "Wednesday, May 10, 2023 5:00 PM",
		"Fee must be paid by": "whenever",
		"Pool":                "Big Natatorium\n500 Main St",
	}, info.Info)

	require.Len(t, info.Schedule, 1)
	assert.Equal(t, "Tuesday, May 16, 2023", info.Schedule[0].Day)
	assert.Equal(t, []string{"8:00 AM", "10:00 AM"}, info.Schedule[0].Times)

	require.Len(t, info.Events, 2)
	assert.Equal(t, MeetEvent{
		Date:        "Tuesday, May 16, 2023",
		Number:      1,
		Name:        "Men 1M Springboard",
		RuleLink:    "https://secure.meetcontrol.com/divemeets/system/eventinfo.php?eventnum=1",
		EntriesLink: "https://secure.meetcontrol.com/divemeets/system/divesheetext.php?number=1",
	}, info.Events[0])
	// Entries link is absent until signup opens.
	assert.Equal(t, "", info.Events[1].EntriesLink)

	require.Len(t, info.Divers, 2)
	assert.Equal(t, Diver{
		Name:   "Smith, John",
		Team:   "GC Diving",
		Link:   "https://secure.meetcontrol.com/divemeets/system/profile.php?number=11",
		Events: []string{"1M", "3M"},
	}, info.Divers[0])
	assert.Empty(t, info.Divers[1].Events)

	require.Len(t, info.Coaches, 1)
	assert.Equal(t, Coach{
		Name: "Jones, Pat",
		Team: "GC Diving",
		Link: "https://secure.meetcontrol.com/divemeets/system/profile.php?number=12",
	}, info.Coaches[0])
}

func TestExtractMeetInfoNoTable(t *testing.T) {
	assert.Nil(t, ExtractMeetInfo(parseDoc(t, `<p>nothing here</p>`)))
}

// An unparseable start date voids the whole page rather than producing a
// partially trusted record.
func TestExtractMeetInfoBadStartDate(t *testing.T) {
	assert.Nil(t, ExtractMeetInfo(parseDoc(t, `<table>
<tr><td>Spring Invite</td></tr>
<tr><td>Start Date: TBD</td></tr>
</table>`)))
}

// A diver row without a profile link has no identity, so the whole page
// is rejected.
func TestExtractMeetInfoDiverWithoutLink(t *testing.T) {
	assert.Nil(t, ExtractMeetInfo(parseDoc(t, `<table>
<tr><td>Spring Invite</td></tr>
<tr><td>Divers Entered:</td></tr>
<tr><td>Smith, John</td><td>GC Diving</td></tr>
</table>`)))
}

// Coach rows carry the same identity policy as diver rows.
func TestExtractMeetInfoCoachWithoutLink(t *testing.T) {
	assert.Nil(t, ExtractMeetInfo(parseDoc(t, `<table>
<tr><td>Spring Invite</td></tr>
<tr><td>Coaches Registered:</td></tr>
<tr><td>Jones, Pat</td><td>GC Diving</td></tr>
</table>`)))
}

// Section labels drive classification, not row order: a page listing
// coaches before divers still files each row under its own section.
func TestExtractMeetInfoSectionOrderSwap(t *testing.T) {
	info := ExtractMeetInfo(parseDoc(t, `<table>
<tr><td>Spring Invite</td></tr>
<tr><td>Coaches Registered:</td></tr>
<tr><td><a href="profile.php?number=12">Jones, Pat</a></td><td>GC Diving</td></tr>
<tr><td>Divers Entered:</td></tr>
<tr><td><a href="profile.php?number=11">Smith, John</a></td><td>GC Diving</td></tr>
</table>`))
	require.NotNil(t, info)

	require.Len(t, info.Divers, 1)
	assert.Equal(t, "Smith, John", info.Divers[0].Name)
	require.Len(t, info.Coaches, 1)
	assert.Equal(t, "Jones, Pat", info.Coaches[0].Name)
}

// The sidebar table shifts the content table by one when present.
func TestExtractMeetInfoSidebarOffset(t *testing.T) {
	info := ExtractMeetInfo(parseDoc(t,
		`<table><tr><td>Dive Sheet</td></tr></table>`+meetInfoPage))
	require.NotNil(t, info)
	assert.Equal(t, "Spring Invite", info.Name)
}
