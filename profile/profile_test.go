package profile

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

func TestParseProfileInfo(t *testing.T) {
	info := ParseProfileInfo("Name: John Smith City: Boston State: MA " +
		"Country: USA Gender: M Age: 17 FINA Age: 18 DiveMeets ID: 12345")
	require.NotNil(t, info)

	assert.Equal(t, &ProfileInfo{
		First:     "John",
		Last:      "Smith",
		CityState: "Boston, MA",
		Country:   "USA",
		Gender:    "M",
		Age:       17,
		FinaAge:   "18",
		DiverID:   "12345",
	}, info)
}

func TestParseProfileInfoCityStateVariant(t *testing.T) {
	info := ParseProfileInfo("Name: Pat Jones City/State: Austin, TX " +
		"Country: USA Gender: F Age: 41 DiveMeets ID: 99")
	require.NotNil(t, info)

	assert.Equal(t, "Austin, TX", info.CityState)
	assert.Equal(t, "Pat", info.First)
	assert.Equal(t, "Jones", info.Last)
	assert.Equal(t, "F", info.Gender)
	assert.Equal(t, 41, info.Age)
}

func TestParseProfileInfoShell(t *testing.T) {
	info := ParseProfileInfo("Name: Jane Doe DiveMeets ID: 54321")
	require.NotNil(t, info)

	assert.Equal(t, "Jane", info.First)
	assert.Equal(t, "Doe", info.Last)
	assert.Equal(t, "54321", info.DiverID)
	assert.Empty(t, info.CityState)
	assert.Empty(t, info.Country)
	assert.Zero(t, info.Age)
}

func TestParseProfileInfoGradYearAndFinaTruncation(t *testing.T) {
	info := ParseProfileInfo("Name: John Smith City: Boston State: MA " +
		"Country: USA Gender: M Age: 17 FINA Age: 175 DiveMeets ID: 12345 " +
		"High School Graduation: 2025 more text")
	require.NotNil(t, info)

	// The FINA age field occasionally runs together with trailing digits;
	// only the first two are the age.
	assert.Equal(t, "17", info.FinaAge)
	assert.Equal(t, 2025, info.HSGradYear)
}

func TestParseProfileInfoMissingIdentity(t *testing.T) {
	// No DiveMeets ID.
	assert.Nil(t, ParseProfileInfo("Name: John Smith City/State: Boston, MA"))
	// Single-token name cannot be split.
	assert.Nil(t, ParseProfileInfo("Name: Cher DiveMeets ID: 1 "))
	assert.Nil(t, ParseProfileInfo(""))
}

const diverProfilePage = `<table><tr><td>
Name: John Smith City: Boston State: MA Country: USA Gender: M Age: 17 FINA Age: 18 DiveMeets ID: 12345<br>
<strong>Diving:</strong><br>
GC Diving<br>
<a href="profile.php?number=99">Jones, Pat</a>
</td></tr></table>`

func TestExtractProfileDiver(t *testing.T) {
	p := ExtractProfile(parseDoc(t, diverProfilePage))
	require.NotNil(t, p)
	require.NotNil(t, p.Info)

	assert.Equal(t, "John", p.Info.First)
	assert.Equal(t, "12345", p.Info.DiverID)
	assert.Equal(t, "GC Diving", p.DivingTeam)
	require.NotNil(t, p.Coach)
	assert.Equal(t, "Jones, Pat", p.Coach.Name)
	assert.Equal(t,
		"https://secure.meetcontrol.com/divemeets/system/profile.php?number=99",
		p.Coach.Link)
	assert.Empty(t, p.CoachingTeam)
	assert.Empty(t, p.Divers)
}

const coachProfilePage = `<table><tr><td>
Name: Pat Jones City/State: Austin, TX Country: USA Gender: F DiveMeets ID: 99<br>
<strong>Coaching:</strong><br>
Tsunami Diving<br>
<strong>Judging:</strong><br>
<a href="judgehistory.php?number=5">Judge History</a>
<center>
<a href="profile.php?number=11">John Smith</a>
<a href="profile.php?number=13">Jane Doe</a>
</center>
</td></tr></table>`

func TestExtractProfileCoach(t *testing.T) {
	p := ExtractProfile(parseDoc(t, coachProfilePage))
	require.NotNil(t, p)

	assert.Equal(t, "Pat", p.Info.First)
	assert.Equal(t, "Austin, TX", p.Info.CityState)
	assert.Equal(t, "Tsunami Diving", p.CoachingTeam)
	assert.Equal(t,
		"https://secure.meetcontrol.com/divemeets/system/judgehistory.php?number=5",
		p.JudgeLink)

	require.Len(t, p.Divers, 2)
	assert.Equal(t, "John Smith", p.Divers[0].Name)
	assert.Equal(t,
		"https://secure.meetcontrol.com/divemeets/system/profile.php?number=13",
		p.Divers[1].Link)

	assert.Empty(t, p.DivingTeam)
	assert.Nil(t, p.Coach)
}

func TestExtractProfileNoContent(t *testing.T) {
	assert.Nil(t, ExtractProfile(parseDoc(t, `<p>profile not found</p>`)))
	// A content cell without the identity block is as good as no page.
	assert.Nil(t, ExtractProfile(parseDoc(t,
		`<table><tr><td>Under construction</td></tr></table>`)))
}

func TestExtractProfileSidebarOffset(t *testing.T) {
	p := ExtractProfile(parseDoc(t,
		`<table><tr><td>Dive Sheet</td></tr></table>`+diverProfilePage))
	require.NotNil(t, p)
	assert.Equal(t, "12345", p.Info.DiverID)
}
