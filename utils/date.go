package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDateFormat is returned when none of the known site date layouts match.
var ErrDateFormat = errors.New("unrecognized date format")

// The three date shapes observed across page families, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"Jan 2, 2006",
}

const (
	longDateLayout = "Monday, January 2, 2006"
	timeLayout     = "3:04 PM"
)

// FormatDate reformats a site date string into the canonical long form,
// e.g. "2023-05-16" -> "Tuesday, May 16, 2023". The first matching layout
// wins.
func FormatDate(s string) (string, error) {
	s = CollapseWhitespace(StripEntities(s))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(longDateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDateFormat, s)
}

// FormatDateTime reformats a "date time" pair, e.g.
// "2023-05-16 5:00 PM" -> "Tuesday, May 16, 2023 5:00 PM".
func FormatDateTime(s string) (string, error) {
	s = CollapseWhitespace(StripEntities(s))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout+" "+timeLayout, s); err == nil {
			return t.Format(longDateLayout + " " + timeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDateFormat, s)
}

// FormatTime normalizes a bare time-of-day string, returning "" when the
// text is not a time. Warmup/start rows tolerate this as a soft failure.
func FormatTime(s string) string {
	s = CollapseWhitespace(StripEntities(s))
	t, err := time.Parse(timeLayout, strings.ToUpper(s))
	if err != nil {
		return ""
	}
	return t.Format(timeLayout)
}
