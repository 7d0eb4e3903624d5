package engine

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/DoyleJ11/solar-dashboard/internal/content"
	"github.com/DoyleJ11/solar-dashboard/internal/report"
)

var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrUnknownPage = errors.New("unknown page")
var ErrMissingTarget = errors.New("target element missing")
var ErrFormBusy = errors.New("form submission in progress")
var ErrFormIdle = errors.New("no form submission in progress")

// Element is one node of a page's element tree. Top-level targets are keyed
// by ID in State.Elements; children are anonymous.
type Element struct {
	ID       string    `json:"id,omitempty"`
	Tag      string    `json:"tag"`
	Name     string    `json:"name,omitempty"`
	Text     string    `json:"text,omitempty"`
	Value    string    `json:"value,omitempty"`
	Class    string    `json:"class,omitempty"`
	Style    string    `json:"style,omitempty"`
	Href     string    `json:"href,omitempty"`
	Colspan  int       `json:"colspan,omitempty"`
	Disabled bool      `json:"disabled,omitempty"`
	Children []Element `json:"children,omitempty"`
}

type FormPhase string

const (
	FormIdle       FormPhase = "idle"
	FormSubmitting FormPhase = "submitting"
	FormComplete   FormPhase = "complete"
)

type FormState struct {
	Phase      FormPhase `json:"phase"`
	SavedLabel string    `json:"-"`
}

type State struct {
	Page     string             `json:"page"`
	Elements map[string]Element `json:"elements"`
	Form     FormState          `json:"form"`
	Targets  Targets            `json:"-"`
	Rules    Rules              `json:"-"`
}

// Rules holds the page behaviour knobs that are not element ids.
type Rules struct {
	PriorityTier    string
	ScrollThreshold int
}

type CommandType string

const (
	CmdRenderStats    CommandType = "RenderStats"
	CmdRenderLeads    CommandType = "RenderLeads"
	CmdClearBlogs     CommandType = "ClearBlogs"
	CmdAppendBlogCard CommandType = "AppendBlogCard"
	CmdScroll         CommandType = "Scroll"
	CmdFormInput      CommandType = "FormInput"
	CmdSubmitForm     CommandType = "SubmitForm"
	CmdFormComplete   CommandType = "FormComplete"
	CmdFormRestore    CommandType = "FormRestore"
)

/*
	CmdRenderStats    -> EvtStatsRendered (nothing when no stat target exists)
	CmdRenderLeads    -> EvtLeadsRendered
	CmdClearBlogs     -> EvtBlogsCleared
	CmdAppendBlogCard -> EvtBlogCardAppended
	CmdScroll         -> EvtHeaderScrolled | EvtHeaderUnscrolled, only on change
	CmdFormInput      -> EvtFormInput
	CmdSubmitForm     -> EvtFormSubmitted, page arms the complete timer
	CmdFormComplete   -> EvtFormCompleted, page arms the restore timer
	CmdFormRestore    -> EvtFormRestored
*/

type Command struct {
	Type    CommandType
	Stats   report.SummaryStats
	At      time.Time
	Leads   []report.LeadRow
	Snippet content.Snippet
	ScrollY int
	Name    string
	Value   string
}

type EventType string

const (
	EvtStatsRendered    EventType = "StatsRendered"
	EvtLeadsRendered    EventType = "LeadsRendered"
	EvtBlogsCleared     EventType = "BlogsCleared"
	EvtBlogCardAppended EventType = "BlogCardAppended"
	EvtHeaderScrolled   EventType = "HeaderScrolled"
	EvtHeaderUnscrolled EventType = "HeaderUnscrolled"
	EvtFormInput        EventType = "FormInput"
	EvtFormSubmitted    EventType = "FormSubmitted"
	EvtFormCompleted    EventType = "FormCompleted"
	EvtFormRestored     EventType = "FormRestored"
)

type Event struct {
	Type   EventType
	Target string
}

// Apply runs cmd against s and returns the resulting state. s is never
// modified: the returned state carries its own Elements map, and every
// element that changed gets fresh Children.
func Apply(s State, cmd Command) ([]Event, State, error) {
	newState := s
	newState.Elements = maps.Clone(s.Elements)
	if newState.Elements == nil {
		newState.Elements = map[string]Element{}
	}

	switch cmd.Type {
	case CmdRenderStats:
		return renderStats(newState, cmd.Stats, cmd.At), newState, nil

	case CmdRenderLeads:
		return renderLeads(newState, cmd.Leads), newState, nil

	case CmdClearBlogs:
		return clearBlogs(newState), newState, nil

	case CmdAppendBlogCard:
		return appendBlogCard(newState, cmd.Snippet), newState, nil

	case CmdScroll:
		events, err := scroll(newState, cmd.ScrollY)
		if err != nil {
			return nil, s, err
		}
		return events, newState, nil

	case CmdFormInput, CmdSubmitForm, CmdFormComplete, CmdFormRestore:
		events, err := applyForm(&newState, cmd)
		if err != nil {
			return nil, s, err
		}
		return events, newState, nil

	default:
		return nil, s, fmt.Errorf("%w: %q", ErrUnsupportedCommand, cmd.Type)
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
