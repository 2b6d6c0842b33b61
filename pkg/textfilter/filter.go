package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLength is the longest player name shown on the shared leaderboard.
const MaxNameLength = 24

// blockedWords may not appear in a public player name.
var blockedWords = []string{
	"fuck", "shit", "damn", "bitch", "bastard", "crap", "piss",
	"dick", "asshole", "dumbass", "jackass", "bullshit", "prick",
}

// NameFilter cleans player names before they are published.
type NameFilter struct {
	regexes  []*regexp.Regexp
	fallback string
	folder   cases.Caser
}

// NewNameFilter creates a filter that substitutes fallback for names that
// end up empty or contain a blocked word.
func NewNameFilter(fallback string) *NameFilter {
	nf := &NameFilter{
		fallback: fallback,
		folder:   cases.Fold(),
	}

	// Pre-compile regex patterns for each blocked word
	for _, word := range blockedWords {
		nf.regexes = append(nf.regexes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}

	return nf
}

// Clean strips control characters, collapses whitespace and truncates
// to MaxNameLength runes. Blocked names are replaced by the fallback.
func (nf *NameFilter) Clean(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")

	if runes := []rune(name); len(runes) > MaxNameLength {
		name = strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	if name == "" || nf.Blocked(name) {
		return nf.fallback
	}
	return name
}

// Blocked reports whether name contains a blocked word.
func (nf *NameFilter) Blocked(name string) bool {
	folded := nf.folder.String(name)
	for _, re := range nf.regexes {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

// DisplayName renders a stored name for the leaderboard, title-casing
// names that were entered all lowercase.
func DisplayName(name string) string {
	if name == strings.ToLower(name) {
		return cases.Title(language.English).String(name)
	}
	return name
}
