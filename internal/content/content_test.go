package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const post = "# Industrial ROI\n" +
	"author: engine\n" +
	"date: 2024-01-01\n" +
	"tags: solar\n" +
	"---\n" +
	"Rooftop solar pays back in under four years\n" +
	"for most industrial clients in Maharashtra.\n" +
	"Net metering rules changed in 2023.\n" +
	"CAPEX per kW keeps dropping.\n" +
	"Financing options are broad.\n" +
	"This line is past the excerpt window.\n"

func TestExtractSnippet(t *testing.T) {
	s := ExtractSnippet("solar-roi", post)

	assert.Equal(t, "solar-roi", s.Slug)
	assert.Equal(t, "Industrial ROI", s.Title)
	assert.True(t, s.Partial)
	assert.NotEmpty(t, s.Excerpt)
	assert.LessOrEqual(t, utf8.RuneCountInString(s.Excerpt), MaxExcerpt)
	assert.True(t, strings.HasPrefix(s.Excerpt, "Rooftop solar pays back"))
	assert.NotContains(t, s.Excerpt, "past the excerpt window")
}

func TestExtractSnippet_Fallbacks(t *testing.T) {
	s := ExtractSnippet("empty", "no heading here\nshort")

	assert.Equal(t, FallbackTitle, s.Title)
	assert.Equal(t, FallbackExcerpt, s.Excerpt)
	assert.False(t, s.Partial)
}

func TestExtractSnippet_TitleRules(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"first heading wins", "intro\n# One\n# Two", "One"},
		{"second level is not a title", "## Sub\n# Main", "Main"},
		{"needs a space", "#NoSpace\n# Spaced", "Spaced"},
		{"crlf stripped", "# Windows\r\nbody", "Windows"},
		{"empty title kept", "# \nbody", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractSnippet("x", tc.text).Title)
		})
	}
}

func TestExtractSnippet_TruncatesLongBody(t *testing.T) {
	lines := []string{"# T", "a", "b", "c", "d"}
	for i := 0; i < 5; i++ {
		lines = append(lines, strings.Repeat("é", 100))
	}

	s := ExtractSnippet("long", strings.Join(lines, "\n"))
	require.True(t, s.Partial)
	assert.Equal(t, MaxExcerpt, utf8.RuneCountInString(s.Excerpt))
}

func TestExtractSnippet_SixLinesUsesOneBodyLine(t *testing.T) {
	s := ExtractSnippet("six", "# T\n1\n2\n3\n4\nbody")
	assert.True(t, s.Partial)
	assert.Equal(t, "body", s.Excerpt)
}

func TestExtractSnippet_TrailingNewlineAfterFrontmatter(t *testing.T) {
	s := ExtractSnippet("x", "# T\n1\n2\n3\n4\n")
	assert.False(t, s.Partial)
	assert.Equal(t, FallbackExcerpt, s.Excerpt)
}

func TestRenderArticle(t *testing.T) {
	a := RenderArticle("solar-roi", []byte(post))

	assert.Equal(t, "Industrial ROI", a.Title)
	assert.Contains(t, string(a.Body), "<h1")
	assert.Contains(t, string(a.Body), "Industrial ROI")
}

func TestRenderArticle_SkipsRawHTML(t *testing.T) {
	a := RenderArticle("x", []byte("# T\n\n<script>alert(1)</script>\n"))
	assert.NotContains(t, string(a.Body), "<script>")
}
