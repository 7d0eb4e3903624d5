package engine

import "fmt"

const (
	PageIndex     = "index"
	PageDashboard = "dashboard"
	PageBlog      = "blog"
)

// Targets names the element each renderer writes into. An empty id or an id
// missing from the page layout means the renderer skips that write.
type Targets struct {
	TotalLeads    string
	TierCount     string
	Phase         string
	Health        string
	LastUpdated   string
	LeadTable     string
	BlogContainer string
	Form          string
	Header        string

	// Tier is the tier whose count goes into TierCount.
	Tier string
}

func DefaultTargets() Targets {
	return Targets{
		TotalLeads:    "stat-total-leads",
		TierCount:     "stat-tier-a",
		Phase:         "stat-phase",
		Health:        "stat-health",
		LastUpdated:   "last-updated",
		LeadTable:     "lead-table-body",
		BlogContainer: "blog-container",
		Form:          "roi-form",
		Header:        "site-header",
		Tier:          "A",
	}
}

func DefaultRules() Rules {
	return Rules{PriorityTier: "A", ScrollThreshold: 50}
}

// Pages lists the page names NewState accepts.
func Pages() []string {
	return []string{PageIndex, PageDashboard, PageBlog}
}

// NewState builds the initial element tree for a page.
func NewState(page string, t Targets, r Rules) (State, error) {
	s := State{
		Page:     page,
		Elements: map[string]Element{},
		Form:     FormState{Phase: FormIdle},
		Targets:  t,
		Rules:    r,
	}

	add := func(e Element) {
		if e.ID != "" {
			s.Elements[e.ID] = e
		}
	}

	add(Element{ID: t.Header, Tag: "header"})

	switch page {
	case PageIndex:
		add(roiForm(t.Form))
		add(Element{ID: t.BlogContainer, Tag: "div"})

	case PageDashboard:
		add(Element{ID: t.TotalLeads, Tag: "span", Text: "0"})
		add(Element{ID: t.TierCount, Tag: "span", Text: "0"})
		add(Element{ID: t.Phase, Tag: "span", Text: phaseInitializing})
		add(Element{ID: t.Health, Tag: "span", Text: "--"})
		add(Element{ID: t.LastUpdated, Tag: "span"})
		add(Element{ID: t.LeadTable, Tag: "tbody"})

	case PageBlog:
		add(Element{ID: t.BlogContainer, Tag: "div"})

	default:
		return State{}, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return s, nil
}

func roiForm(id string) Element {
	return Element{
		ID:  id,
		Tag: "form",
		Children: []Element{
			{Tag: "input", Name: "roof_size_sqft"},
			{Tag: "input", Name: "monthly_bill_inr"},
			{Tag: "input", Name: "email"},
			{Tag: "button", Text: "CALCULATE MY SOLAR ROI"},
		},
	}
}
