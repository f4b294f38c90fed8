package feedxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagValue(t *testing.T) {
	tests := []struct {
		name  string
		block string
		tag   string
		want  string
	}{
		{
			name:  "simple",
			block: "<title>Hello World</title>",
			tag:   "title",
			want:  "Hello World",
		},
		{
			name:  "case insensitive tag, case preserving content",
			block: "<TITLE>MiXeD Case</TITLE>",
			tag:   "title",
			want:  "MiXeD Case",
		},
		{
			name:  "entities decoded",
			block: "<title>Tom &amp; Jerry &lt;3 &quot;cheese&quot; &#39;n&#39; more</title>",
			tag:   "title",
			want:  `Tom & Jerry <3 "cheese" 'n' more`,
		},
		{
			name:  "nested markup stripped",
			block: "<description><p>First <b>bold</b> line</p></description>",
			tag:   "description",
			want:  "First bold line",
		},
		{
			name:  "attributes on opening tag",
			block: `<guid isPermaLink="false">abc-123</guid>`,
			tag:   "guid",
			want:  "abc-123",
		},
		{
			name:  "first occurrence wins",
			block: "<category>US</category><category>Manufacturing</category>",
			tag:   "category",
			want:  "US",
		},
		{
			name:  "missing tag",
			block: "<title>only a title</title>",
			tag:   "link",
			want:  "",
		},
		{
			name:  "missing closing tag",
			block: "<title>truncated",
			tag:   "title",
			want:  "",
		},
		{
			name:  "unmatched bracket",
			block: "<title no closing bracket",
			tag:   "title",
			want:  "",
		},
		{
			name:  "empty block",
			block: "",
			tag:   "title",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TagValue(tt.block, tt.tag))
		})
	}
}

func TestItems(t *testing.T) {
	doc := `<?xml version="1.0"?>
<rss><channel>
<title>feed</title>
<item><title>first</title></item>
garbage between items <<<
<item><title>second</title></item>
<item><title>truncated`

	blocks := Items(doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first", TagValue(blocks[0], "title"))
	assert.Equal(t, "second", TagValue(blocks[1], "title"))
}

func TestItems_Empty(t *testing.T) {
	assert.Empty(t, Items(""))
	assert.Empty(t, Items("<rss><channel></channel></rss>"))
}

func TestEntityRoundTrip(t *testing.T) {
	inputs := []string{
		`plain text`,
		`a & b`,
		`<script>`,
		`"quoted" and 'single'`,
		`all five: & < > " '`,
		`already encoded stays literal: &amp;lt;`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, DecodeEntities(EncodeEntities(in)), "round trip of %q", in)
	}
}
