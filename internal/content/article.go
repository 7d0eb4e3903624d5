package content

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Article is a full blog post ready for a page template.
type Article struct {
	Slug  string
	Title string
	Body  template.HTML
}

// RenderArticle converts a Markdown post to HTML. Raw HTML in the source is
// skipped; the report generator never emits any.
func RenderArticle(slug string, md []byte) Article {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)

	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.HrefTargetBlank,
	})

	return Article{
		Slug:  slug,
		Title: ExtractSnippet(slug, string(md)).Title,
		Body:  template.HTML(markdown.Render(doc, r)),
	}
}
