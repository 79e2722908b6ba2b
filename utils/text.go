package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// SliceBetween returns the substring strictly between the first occurrence of
// start and the first occurrence of end found after it. The second return is
// false when start is absent. If end is absent the rest of the string is
// returned.
func SliceBetween(s, start, end string) (string, bool) {
	i := strings.Index(s, start)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return rest, true
	}
	return rest[:j], true
}

// SliceAfter returns everything after the first occurrence of start, or
// false when start is absent.
func SliceAfter(s, start string) (string, bool) {
	i := strings.Index(s, start)
	if i < 0 {
		return "", false
	}
	return s[i+len(start):], true
}

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	" ", " ",
	"&amp;", "&",
	"&#39;", "'",
	"&quot;", `"`,
)

// StripEntities normalizes the HTML entities the site actually emits to
// plain text.
func StripEntities(s string) string {
	return entityReplacer.Replace(s)
}

// CollapseWhitespace trims s and folds interior runs of whitespace into
// single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WrapLooseRuns wraps every distinct text run matched by pattern in a div so
// tree-based iteration can treat each logical line as a discrete node. The
// site renders several unrelated fields as bare text nodes separated only by
// <br>, with no containing element; without this preprocessing per-field
// extraction is impossible via tree queries alone.
func WrapLooseRuns(html string, pattern *regexp.Regexp) string {
	seen := make(map[string]bool)
	for _, run := range pattern.FindAllString(html, -1) {
		if seen[run] {
			continue
		}
		seen[run] = true
		html = strings.ReplaceAll(html, run, "<div>"+run+"</div>")
	}
	return html
}

// Noise substrings that show up inside numeric cells on results pages.
var numberNoise = strings.NewReplacer(
	"Failed Dive", "",
	"Dive Changed", "",
	"  ", " ",
)

// ParseNumberOrDefault coerces cell text to a float, tolerating the noise
// the site mixes into score cells. It never fails; def is returned when no
// number can be recovered.
func ParseNumberOrDefault(s string, def float64) float64 {
	s = strings.TrimSpace(numberNoise.Replace(StripEntities(s)))
	if s == "" {
		return def
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return n
}

// ParseIntOrDefault is ParseNumberOrDefault for whole-number cells.
func ParseIntOrDefault(s string, def int) int {
	s = strings.TrimSpace(numberNoise.Replace(StripEntities(s)))
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
