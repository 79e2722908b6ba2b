package utils

import "strings"

// BaseURL is the fixed prefix every relative href on the site resolves
// against.
const BaseURL = "https://secure.meetcontrol.com/divemeets/system/"

// PrefixLink rewrites a relative href found in source HTML to an absolute
// URL. Absolute hrefs pass through unchanged.
func PrefixLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return BaseURL + href
}

// FirstLink prefixes an (href, ok) pair as returned by attribute lookup,
// yielding "" when the attribute was absent or empty.
func FirstLink(href string, ok bool) string {
	if !ok || href == "" {
		return ""
	}
	return PrefixLink(href)
}
