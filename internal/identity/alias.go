package identity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// MaxAliasLength is the longest alias accepted from free-text sources.
const MaxAliasLength = 80

var (
	// latinLetter requires at least one letter in the Latin or Latin-extended
	// range; purely numeric or symbolic candidates are noise.
	latinLetter   = regexp.MustCompile(`[A-Za-z\x{00C0}-\x{024F}]`)
	markupLikely  = regexp.MustCompile(`(?i)__next|script|</`)
	forbiddenSet  = "{}<>[]\\`\"'"
	controlChars  = "\n\r\t"
)

// LikelyAlias reports whether a free-text candidate looks like a real actor
// alias. Unstructured upstreams mix URLs, markup fragments and scraped junk
// into their synonym lists; everything suspicious is rejected.
func LikelyAlias(s string) bool {
	v := strings.TrimSpace(s)
	if v == "" {
		return false
	}
	if utf8.RuneCountInString(v) > MaxAliasLength {
		return false
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return false
	}
	if strings.ContainsAny(v, forbiddenSet) || strings.ContainsAny(v, controlChars) {
		return false
	}
	if markupLikely.MatchString(v) {
		return false
	}
	return latinLetter.MatchString(v)
}

// SanitizeAliases filters candidates through LikelyAlias, trims survivors and
// deduplicates them preserving first-seen order. The result is never nil.
func SanitizeAliases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if LikelyAlias(s) {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return lo.Uniq(out)
}
