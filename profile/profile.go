// Package profile extracts diver and coach profile pages. Profiles are
// the loosest markup on the site: most fields are bare text runs separated
// by <br> with no containing element, so extraction starts by wrapping
// those runs into discrete nodes and then matching label text.
package profile

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"divescraper/rows"
	"divescraper/utils"
)

// ProfileInfo is the demographic block at the top of a profile. Which
// optional fields are present depends on which labels the page variant
// carries.
type ProfileInfo struct {
	First      string `json:"first"`
	Last       string `json:"last"`
	CityState  string `json:"cityState,omitempty"`
	Country    string `json:"country,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Age        int    `json:"age,omitempty"`
	FinaAge    string `json:"finaAge,omitempty"`
	DiverID    string `json:"diverId"`
	HSGradYear int    `json:"hsGradYear,omitempty"`
}

// PersonLink is a name with a profile link.
type PersonLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Profile is a parsed profile page. Diver profiles fill DivingTeam and
// Coach; coach profiles fill CoachingTeam and Divers.
type Profile struct {
	Info         *ProfileInfo `json:"info"`
	DivingTeam   string       `json:"divingTeam,omitempty"`
	Coach        *PersonLink  `json:"coach,omitempty"`
	CoachingTeam string       `json:"coachingTeam,omitempty"`
	JudgeLink    string       `json:"judgeLink,omitempty"`
	Divers       []PersonLink `json:"divers,omitempty"`
}

// looseRunPattern matches the untagged text runs that sit directly against
// a <br> marker.
var looseRunPattern = regexp.MustCompile(`[^<>]+<br ?/?>`)

const (
	stageDiving rows.Stage = iota
	stageCoaching
	stageJudging
)

// ExtractProfile parses a profile page. Returns nil when the page has no
// content cell or the demographic block lacks the diver's name or
// DiveMeets ID, both identity-defining.
func ExtractProfile(doc *goquery.Document) *Profile {
	cell := doc.Find("table").Eq(rows.SidebarOffset(doc)).Find("td").First()
	if cell.Length() == 0 {
		return nil
	}

	info := ParseProfileInfo(cell.Text())
	if info == nil {
		return nil
	}
	p := &Profile{Info: info}

	html, err := cell.Html()
	if err != nil {
		return p
	}
	wrapped, err := goquery.NewDocumentFromReader(
		strings.NewReader(utils.WrapLooseRuns(html, looseRunPattern)))
	if err != nil {
		return p
	}

	machine := rows.NewStageMachine(
		rows.Boundary{Match: sectionHeader("Diving:"), Stage: stageDiving},
		rows.Boundary{Match: sectionHeader("Coaching:"), Stage: stageCoaching},
		rows.Boundary{Match: sectionHeader("Judging:"), Stage: stageJudging},
	)

	wrapped.Find("body").Children().Each(func(_ int, node *goquery.Selection) {
		// A bare <center> block is the flat diver list on coach profiles.
		if goquery.NodeName(node) == "center" {
			node.Find("a").Each(func(_ int, a *goquery.Selection) {
				p.Divers = append(p.Divers, PersonLink{
					Name: rows.Text(a),
					Link: utils.FirstLink(a.Attr("href")),
				})
			})
			return
		}

		stage, boundary := machine.Advance(node)
		if boundary || stage == rows.StageNone {
			return
		}

		switch goquery.NodeName(node) {
		case "div":
			text := rows.Text(node)
			if text == "" {
				return
			}
			switch stage {
			case stageDiving:
				if p.DivingTeam == "" {
					p.DivingTeam = text
				}
			case stageCoaching:
				if p.CoachingTeam == "" {
					p.CoachingTeam = text
				}
			}
		case "a":
			switch stage {
			case stageDiving:
				if p.Coach == nil {
					p.Coach = &PersonLink{
						Name: rows.Text(node),
						Link: utils.FirstLink(node.Attr("href")),
					}
				}
			case stageJudging:
				if p.JudgeLink == "" {
					p.JudgeLink = utils.FirstLink(node.Attr("href"))
				}
			}
		}
	})

	return p
}

func sectionHeader(label string) func(*goquery.Selection) bool {
	return func(s *goquery.Selection) bool {
		return goquery.NodeName(s) == "strong" && rows.Text(s) == label
	}
}

// ParseProfileInfo recovers the demographic block from the profile's flat
// text. The label variants are tried in priority order: the plain
// "State:"/"Country:" pairing, then the "City/State:" pairing, then the
// "DiveMeets ID:" boundary for shell profiles with no demographic labels.
// The first candidate that matches wins; later ones are not tried.
func ParseProfileInfo(text string) *ProfileInfo {
	text = utils.CollapseWhitespace(utils.StripEntities(text))

	id, ok := between(text, "DiveMeets ID: ", " ")
	if !ok || id == "" {
		return nil
	}
	info := &ProfileInfo{DiverID: id}

	var name string
	switch {
	case hasLabel(text, " State: "):
		name, _ = between(text, "Name: ", " City:", " State:")
		city, _ := between(text, "City: ", " State:")
		state, _ := between(text, " State: ", " Country")
		info.CityState = joinCityState(city, state)
	case hasLabel(text, "City/State: "):
		name, _ = between(text, "Name: ", " City/State:")
		info.CityState, _ = between(text, "City/State: ", " Country")
	default:
		// Shell profile: nothing between the name and the ID boundary.
		name, _ = between(text, "Name: ", " DiveMeets ID:")
	}

	info.First, info.Last, ok = splitName(name)
	if !ok {
		return nil
	}

	info.Country, _ = between(text, "Country: ", " Gender", " Age", " FINA", " DiveMeets")
	info.Gender, _ = between(text, "Gender: ", " Age", " FINA", " DiveMeets")
	if age, ok := between(text, "Age: ", " FINA", " DiveMeets"); ok {
		info.Age = utils.ParseIntOrDefault(age, 0)
	}
	if fina, ok := between(text, "FINA Age: ", " DiveMeets"); ok {
		if len(fina) > 2 {
			fina = fina[:2]
		}
		info.FinaAge = fina
	}
	if year, ok := between(text, "High School Graduation: ", " "); ok {
		info.HSGradYear = utils.ParseIntOrDefault(year, 0)
	}
	return info
}

// between slices the text after start up to the earliest of the given end
// markers, or to the end of the string when none occur.
func between(text, start string, ends ...string) (string, bool) {
	rest, ok := utils.SliceAfter(text, start)
	if !ok {
		return "", false
	}
	cut := len(rest)
	for _, end := range ends {
		if i := strings.Index(rest, end); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(rest[:cut]), true
}

// hasLabel guards against "State:" matching inside "City/State:" by
// requiring the label with its leading delimiter.
func hasLabel(text, label string) bool {
	return strings.Contains(text, label)
}

func joinCityState(city, state string) string {
	switch {
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + ", " + state
	}
}

// splitName splits a display name into first and the remaining last name.
func splitName(name string) (first, last string, ok bool) {
	first, last, ok = strings.Cut(name, " ")
	if !ok || first == "" || last == "" {
		return "", "", false
	}
	return first, last, true
}
