// Package view turns element trees and articles into HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/DoyleJ11/solar-dashboard/internal/content"
	"github.com/DoyleJ11/solar-dashboard/internal/engine"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

const siteTitle = "Manokamana Solar Agentic Engine"

type pageData struct {
	Title    string
	Page     string
	Version  int
	Elements []template.HTML
}

// Page writes a full document for one snapshot. Top-level elements are
// emitted in id order.
func Page(w io.Writer, version int, s engine.State) error {
	ids := make([]string, 0, len(s.Elements))
	for id := range s.Elements {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	data := pageData{Title: siteTitle, Page: s.Page, Version: version}
	for _, id := range ids {
		frag, err := render(tableWrap(node(s.Elements[id])))
		if err != nil {
			return err
		}
		data.Elements = append(data.Elements, frag)
	}
	return templates.ExecuteTemplate(w, "page.html", data)
}

func Article(w io.Writer, a content.Article) error {
	return templates.ExecuteTemplate(w, "article.html", struct {
		Title string
		Slug  string
		Body  template.HTML
	}{Title: a.Title + " | " + siteTitle, Slug: a.Slug, Body: a.Body})
}

// Fragment renders one element and its children. Text and attribute values
// are escaped by the html renderer.
func Fragment(el engine.Element) (template.HTML, error) {
	return render(node(el))
}

func render(n *html.Node) (template.HTML, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render %s: %w", n.Data, err)
	}
	return template.HTML(buf.String()), nil
}

// tableWrap puts a bare table body inside a table; parsers drop a tbody
// that appears directly in the document body.
func tableWrap(n *html.Node) *html.Node {
	if n.DataAtom != atom.Tbody {
		return n
	}
	t := &html.Node{Type: html.ElementNode, Data: "table", DataAtom: atom.Table}
	t.AppendChild(n)
	return t
}

func node(el engine.Element) *html.Node {
	tag := strings.ToLower(el.Tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}

	attr := func(key, val string) {
		if val != "" {
			n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
		}
	}
	attr("id", el.ID)
	attr("name", el.Name)
	attr("class", el.Class)
	attr("style", el.Style)
	attr("href", el.Href)
	attr("value", el.Value)
	if el.Colspan > 0 {
		attr("colspan", strconv.Itoa(el.Colspan))
	}
	if el.Disabled {
		n.Attr = append(n.Attr, html.Attribute{Key: "disabled"})
	}

	if el.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
	}
	for _, c := range el.Children {
		n.AppendChild(node(c))
	}
	return n
}
