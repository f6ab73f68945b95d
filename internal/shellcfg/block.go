package shellcfg

import (
	"regexp"
	"strings"
)

// findBlock locates the first marker pair in content and returns the
// byte range covering both marker lines. The end marker is the first
// one at or after the start marker; with multiple pairs (out of
// contract) any later markers are left as ordinary content.
func findBlock(content string) (start, end int, ok bool) {
	s := strings.Index(content, StartMarker)
	if s < 0 {
		return 0, 0, false
	}
	e := strings.Index(content[s:], EndMarker)
	if e < 0 {
		return 0, 0, false
	}
	return s, s + e + len(EndMarker), true
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// stripBlock removes the first delimited block from content, collapses
// the blank-line runs the excision leaves behind, and trims the
// result. The second return reports whether a block was present.
func stripBlock(content string) (string, bool) {
	s, e, ok := findBlock(content)
	if !ok {
		return content, false
	}
	rest := content[:s] + content[e:]
	rest = blankRuns.ReplaceAllString(rest, "\n\n")
	return strings.TrimSpace(rest), true
}
