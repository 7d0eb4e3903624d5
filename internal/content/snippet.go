// Package content extracts card snippets from blog Markdown and renders full
// articles.
package content

import (
	"regexp"
	"strings"
)

const (
	FallbackTitle   = "Autonomous Insight"
	FallbackExcerpt = "Analysis in progress..."

	// MaxExcerpt is measured in characters, not bytes.
	MaxExcerpt = 250

	// Lines [excerptStart, excerptEnd) hold the body once frontmatter is skipped.
	excerptStart = 5
	excerptEnd   = 10
)

var titleLine = regexp.MustCompile(`(?m)^# (.*)$`)

// Snippet is the card summary for one blog post.
type Snippet struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	// Partial is set when Excerpt was cut from the body rather than substituted.
	Partial bool `json:"partial"`
}

// ExtractSnippet pulls a title and excerpt out of raw Markdown. It is a
// positional heuristic and assumes a fixed frontmatter length.
func ExtractSnippet(slug, text string) Snippet {
	s := Snippet{Slug: slug, Title: FallbackTitle, Excerpt: FallbackExcerpt}

	if m := titleLine.FindStringSubmatch(text); m != nil {
		s.Title = strings.TrimSuffix(m[1], "\r")
	}

	lines := strings.Split(text, "\n")
	if len(lines) > excerptStart {
		body := lines[excerptStart:min(len(lines), excerptEnd)]
		if joined := strings.Join(body, " "); joined != "" {
			s.Excerpt = truncate(joined, MaxExcerpt)
			s.Partial = true
		}
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
