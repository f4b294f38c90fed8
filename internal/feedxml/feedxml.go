// Package feedxml extracts tag values from RSS documents without a full XML
// parser. Upstream feeds are frequently malformed, so every function here
// degrades to an empty result instead of failing.
package feedxml

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// DecodeEntities decodes the five standard XML entities in a single pass.
func DecodeEntities(s string) string {
	if s == "" {
		return ""
	}
	return entityReplacer.Replace(s)
}

// EncodeEntities is the inverse of DecodeEntities.
func EncodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return strings.ReplaceAll(s, "'", "&#39;")
}

// StripTags removes any markup nested inside tag content.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// TagValue returns the decoded, tag-stripped text content of the first
// well-formed <tag>...</tag> occurrence in block. The tag name is matched
// case-insensitively; content casing is preserved. A missing or unclosed tag
// yields "".
func TagValue(block, tag string) string {
	lower := strings.ToLower(block)
	tag = strings.ToLower(tag)

	open := strings.Index(lower, "<"+tag)
	if open == -1 {
		return ""
	}
	gt := strings.Index(block[open:], ">")
	if gt == -1 {
		return ""
	}
	gt += open
	end := strings.Index(lower[gt+1:], "</"+tag+">")
	if end == -1 {
		return ""
	}
	raw := block[gt+1 : gt+1+end]
	return DecodeEntities(strings.TrimSpace(StripTags(raw)))
}

// Items returns the inner content of every <item>...</item> block in source
// order. The scan is non-validating: the document outside item boundaries
// does not have to be well-formed XML.
func Items(doc string) []string {
	lower := strings.ToLower(doc)
	var blocks []string
	pos := 0
	for {
		open := strings.Index(lower[pos:], "<item>")
		if open == -1 {
			break
		}
		open += pos + len("<item>")
		end := strings.Index(lower[open:], "</item>")
		if end == -1 {
			break
		}
		blocks = append(blocks, doc[open:open+end])
		pos = open + end + len("</item>")
	}
	return blocks
}
