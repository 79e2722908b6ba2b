package scraper

import "strings"

// Kind is the page family a URL belongs to. The site has no API; the URL
// path is the only page-type signal available before parsing.
type Kind string

const (
	KindUnknown      Kind = ""
	KindMeetList     Kind = "meetlist"
	KindMeetInfo     Kind = "meetinfo"
	KindMeetResults  Kind = "meetresults"
	KindEventResults Kind = "eventresults"
	KindProfile      Kind = "profile"
	KindEntries      Kind = "entries"
	KindLive         Kind = "livestats"
)

// DetectKind derives the page family from the URL's path/query.
func DetectKind(url string) Kind {
	switch {
	case strings.Contains(url, "meetinfo"):
		return KindMeetInfo
	case strings.Contains(url, "meetresults"):
		return KindMeetResults
	case strings.Contains(url, "eventresults"):
		return KindEventResults
	case strings.Contains(url, "profile.php"):
		return KindProfile
	case strings.Contains(url, "divesheetext"):
		return KindEntries
	case strings.Contains(url, "livestats"):
		return KindLive
	case strings.Contains(url, "meetlist") || strings.Contains(url, "index.php"):
		return KindMeetList
	}
	return KindUnknown
}

// ScriptRendered reports whether pages of this kind draw their content
// with client-side script, requiring the browser fetch path instead of a
// plain HTTP GET.
func (k Kind) ScriptRendered() bool {
	return k == KindLive
}
