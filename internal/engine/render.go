package engine

import (
	"net/url"
	"strconv"
	"time"

	"github.com/DoyleJ11/solar-dashboard/internal/content"
	"github.com/DoyleJ11/solar-dashboard/internal/report"
)

const (
	phaseInitializing = "PHASE 1: INITIALIZING"
	phaseOptimizing   = "PHASE 2: OPTIMIZING"

	healthyLabel = "Healthy"

	noLeadsText = "No leads captured in current cycle."

	articlePath = "/blog/"

	cellStyle   = "padding: 24px;"
	accentColor = "var(--accent)"
)

// setText replaces the content of a target with text. Missing targets are
// skipped and reported as false.
func setText(s State, id, text string) bool {
	el, ok := s.Elements[id]
	if id == "" || !ok {
		return false
	}
	el.Text = text
	el.Children = nil
	s.Elements[id] = el
	return true
}

func setChildren(s State, id string, children []Element) bool {
	el, ok := s.Elements[id]
	if id == "" || !ok {
		return false
	}
	el.Text = ""
	el.Children = children
	s.Elements[id] = el
	return true
}

func renderStats(s State, stats report.SummaryStats, at time.Time) []Event {
	t := s.Targets

	phase := phaseInitializing
	if stats.PublishedAssetsCount > 0 {
		phase = phaseOptimizing
	}

	health := 85
	if stats.CurrentRiskHealth == healthyLabel {
		health = 100
	}

	writes := []struct{ id, text string }{
		{t.TotalLeads, strconv.Itoa(stats.TotalLeads)},
		{t.TierCount, strconv.Itoa(stats.TierCount(t.Tier))},
		{t.Phase, phase},
		{t.Health, strconv.Itoa(health) + "%"},
		{t.LastUpdated, "LAST SYNC: " + at.Format("3:04:05 PM")},
	}

	var events []Event
	for _, w := range writes {
		if setText(s, w.id, w.text) {
			events = append(events, Event{Type: EvtStatsRendered, Target: w.id})
		}
	}
	return events
}

func renderLeads(s State, leads []report.LeadRow) []Event {
	rows := make([]Element, 0, max(len(leads), 1))
	if len(leads) == 0 {
		rows = append(rows, Element{
			Tag: "tr",
			Children: []Element{{
				Tag:     "td",
				Colspan: 4,
				Style:   "padding: 40px; text-align: center; color: var(--text-secondary);",
				Text:    noLeadsText,
			}},
		})
	}
	for _, lead := range leads {
		rows = append(rows, leadRow(lead, lead.Score == s.Rules.PriorityTier))
	}

	if !setChildren(s, s.Targets.LeadTable, rows) {
		return nil
	}
	return []Event{{Type: EvtLeadsRendered, Target: s.Targets.LeadTable}}
}

func leadRow(lead report.LeadRow, priority bool) Element {
	rowClass, scoreColor := "lead-row nurturing", "#fff"
	badgeClass, badgeText := "badge nurturing", "NURTURING"
	badgeStyle := "background: rgba(255,255,255,0.05); color: var(--text-secondary);"
	if priority {
		rowClass, scoreColor = "lead-row priority", accentColor
		badgeClass, badgeText = "badge priority", "PRIORITY ROUTING"
		badgeStyle = "background: rgba(255, 180, 0, 0.1); color: var(--accent);"
	}

	return Element{
		Tag:   "tr",
		Class: rowClass,
		Children: []Element{
			{Tag: "td", Style: cellStyle, Text: lead.Timestamp},
			{Tag: "td", Style: cellStyle, Children: []Element{
				{Tag: "span", Style: "color: " + scoreColor + "; font-weight: 700;", Text: lead.Score},
			}},
			{Tag: "td", Style: cellStyle, Text: FormatCapex(lead.Capex)},
			{Tag: "td", Style: cellStyle, Children: []Element{{
				Tag:   "span",
				Class: badgeClass,
				Style: "padding: 4px 12px; border-radius: 20px; font-size: 0.75rem; font-weight: 600; " + badgeStyle,
				Text:  badgeText,
			}}},
		},
	}
}

func clearBlogs(s State) []Event {
	if !setChildren(s, s.Targets.BlogContainer, nil) {
		return nil
	}
	return []Event{{Type: EvtBlogsCleared, Target: s.Targets.BlogContainer}}
}

func appendBlogCard(s State, snip content.Snippet) []Event {
	id := s.Targets.BlogContainer
	el, ok := s.Elements[id]
	if id == "" || !ok {
		return nil
	}

	cards := make([]Element, 0, len(el.Children)+1)
	cards = append(cards, el.Children...)
	cards = append(cards, blogCard(snip))

	setChildren(s, id, cards)
	return []Event{{Type: EvtBlogCardAppended, Target: id}}
}

func blogCard(snip content.Snippet) Element {
	excerpt := snip.Excerpt
	if snip.Partial {
		excerpt += "..."
	}

	return Element{
		Tag:   "div",
		Class: "glass blog-card fade-in",
		Children: []Element{
			{Tag: "div", Class: "date", Text: "High Authority Report"},
			{Tag: "h2", Text: snip.Title},
			{Tag: "p", Style: "margin-top: 16px; color: var(--text-secondary);", Text: excerpt},
			{Tag: "div", Style: "margin-top: 24px;", Children: []Element{{
				Tag:   "a",
				Href:  articlePath + url.PathEscape(snip.Slug),
				Style: "color: var(--accent); text-decoration: none; font-weight: 600; font-size: 0.9rem;",
				Text:  "Read Full Analysis →",
			}}},
		},
	}
}
