package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugger_Dedup(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "fancy-bear", s.Slug("", "Fancy Bear"))
	assert.Equal(t, "fancy-bear-1", s.Slug("", "Fancy Bear"))
	assert.Equal(t, "fancy-bear-2", s.Slug("", "FANCY bear"))
	assert.Equal(t, "lazarus-group", s.Slug("", "Lazarus Group"))
}

func TestSlugger_SuffixedFormNeverCollides(t *testing.T) {
	s := NewSlugger()

	// "Foo 1" claims foo-1 up front; the second "Foo" has to skip past it.
	assert.Equal(t, "foo-1", s.Slug("", "Foo 1"))
	assert.Equal(t, "foo", s.Slug("", "Foo"))
	assert.Equal(t, "foo-2", s.Slug("", "Foo"))
}

func TestSlugger_BaseClaimedBeforeSuffixedForm(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "foo", s.Slug("", "Foo"))
	assert.Equal(t, "foo-1", s.Slug("", "Foo"))
	assert.Equal(t, "foo-1-1", s.Slug("", "Foo 1"))
}

func TestSlugger_ExplicitID(t *testing.T) {
	s := NewSlugger()

	// Explicit ids pass through verbatim regardless of name.
	assert.Equal(t, "cozy-bear", s.Slug("ta:cozy-bear", "Something Else Entirely"))
	// They still occupy the slug, so a derived collision gets suffixed.
	assert.Equal(t, "cozy-bear-1", s.Slug("", "Cozy Bear"))
}

func TestSlugger_EmptyName(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "unknown", s.Slug("", ""))
	assert.Equal(t, "unknown-1", s.Slug("", ""))
}

func TestLikelyAlias(t *testing.T) {
	accepted := []string{
		"APT-Fancy",
		"Sofacy",
		"  Sandworm Team  ",
		"Bjørn", // latin-extended letters count
	}
	for _, a := range accepted {
		assert.True(t, LikelyAlias(a), "expected accept: %q", a)
	}

	rejected := []string{
		"",
		"   ",
		"<script>",
		"http://evil.com",
		"https://evil.com/path",
		strings.Repeat("a", 81),
		"bad[alias]",
		"curly{brace}",
		"back\\slash",
		"tick`name",
		`"quoted"`,
		"'quoted'",
		"line\nbreak",
		"tab\there",
		"__NEXT_DATA",
		"</div",
		"12345",
		"!!!",
	}
	for _, a := range rejected {
		assert.False(t, LikelyAlias(a), "expected reject: %q", a)
	}
}

func TestSanitizeAliases(t *testing.T) {
	in := []string{"APT-Fancy", " APT-Fancy ", "<script>", "http://evil.com", "Sofacy", ""}
	assert.Equal(t, []string{"APT-Fancy", "Sofacy"}, SanitizeAliases(in))
	assert.NotNil(t, SanitizeAliases(nil))
}
