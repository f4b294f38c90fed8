// Package identity derives stable identifiers and cleans up alias lists for
// normalized threat-actor records.
package identity

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// ExplicitIDPrefix marks a source id whose remainder is already a unique slug.
const ExplicitIDPrefix = "ta:"

// Slugger assigns slugs with per-run collision suffixing. Two entries that
// resolve to the same base slug within one run get "-1", "-2", ... appended,
// the same convention a Markdown heading-anchor generator uses. Every slug
// handed out occupies the namespace, so a suffixed form never collides with
// a base that resolves to the same string ("Foo 1" then "Foo" twice yields
// foo-1, foo, foo-2).
type Slugger struct {
	counts map[string]int
	used   map[string]struct{}
}

func NewSlugger() *Slugger {
	return &Slugger{
		counts: make(map[string]int),
		used:   make(map[string]struct{}),
	}
}

// Slug returns the identifier for an entry. An explicit "ta:<rest>" id wins
// verbatim and is never suffixed; otherwise the slug is derived from the
// display name and de-collided against everything emitted so far.
func (s *Slugger) Slug(id, name string) string {
	if rest, ok := strings.CutPrefix(id, ExplicitIDPrefix); ok {
		s.used[rest] = struct{}{}
		return rest
	}
	if name == "" {
		name = "unknown"
	}
	base := slug.Make(name)
	if base == "" {
		base = "unknown"
	}
	candidate := base
	for n := s.counts[base]; ; n++ {
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		if _, taken := s.used[candidate]; !taken {
			s.counts[base] = n + 1
			s.used[candidate] = struct{}{}
			return candidate
		}
	}
}
