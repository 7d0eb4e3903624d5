package engine

import (
	"slices"
	"strings"
)

const (
	scrolledClass = "scrolled"

	labelSubmitting = "INITIALIZING AGENTIC ANALYSIS..."
	labelComplete   = "ANALYSIS COMPLETE. CHECK YOUR EMAIL."
	successStyle    = "background: var(--success);"
)

func hasClass(classes, c string) bool {
	return slices.Contains(strings.Fields(classes), c)
}

func withClass(classes, c string, on bool) string {
	fields := strings.Fields(classes)
	fields = slices.DeleteFunc(fields, func(f string) bool { return f == c })
	if on {
		fields = append(fields, c)
	}
	return strings.Join(fields, " ")
}

func scroll(s State, scrollY int) ([]Event, error) {
	id := s.Targets.Header
	el, ok := s.Elements[id]
	if id == "" || !ok {
		return nil, ErrMissingTarget
	}

	want := scrollY > s.Rules.ScrollThreshold
	if hasClass(el.Class, scrolledClass) == want {
		return nil, nil
	}

	el.Class = withClass(el.Class, scrolledClass, want)
	s.Elements[id] = el

	if want {
		return []Event{{Type: EvtHeaderScrolled, Target: id}}, nil
	}
	return []Event{{Type: EvtHeaderUnscrolled, Target: id}}, nil
}

// applyForm drives the submit simulation: idle -> submitting -> complete ->
// idle. Nothing leaves the page.
func applyForm(s *State, cmd Command) ([]Event, error) {
	id := s.Targets.Form
	form, ok := s.Elements[id]
	if id == "" || !ok {
		return nil, ErrMissingTarget
	}
	button := slices.IndexFunc(form.Children, func(e Element) bool { return e.Tag == "button" })
	if button < 0 {
		return nil, ErrMissingTarget
	}

	children := slices.Clone(form.Children)
	var evt EventType

	switch cmd.Type {
	case CmdFormInput:
		i := slices.IndexFunc(children, func(e Element) bool { return e.Tag == "input" && e.Name == cmd.Name })
		if i < 0 {
			return nil, ErrMissingTarget
		}
		children[i].Value = cmd.Value
		evt = EvtFormInput

	case CmdSubmitForm:
		if s.Form.Phase != FormIdle || children[button].Disabled {
			return nil, ErrFormBusy
		}
		s.Form = FormState{Phase: FormSubmitting, SavedLabel: children[button].Text}
		children[button].Text = labelSubmitting
		children[button].Disabled = true
		evt = EvtFormSubmitted

	case CmdFormComplete:
		if s.Form.Phase != FormSubmitting {
			return nil, ErrFormIdle
		}
		s.Form.Phase = FormComplete
		children[button].Text = labelComplete
		children[button].Style = successStyle
		for i := range children {
			if children[i].Tag == "input" {
				children[i].Value = ""
			}
		}
		evt = EvtFormCompleted

	case CmdFormRestore:
		if s.Form.Phase != FormComplete {
			return nil, ErrFormIdle
		}
		children[button].Text = s.Form.SavedLabel
		children[button].Disabled = false
		children[button].Style = ""
		s.Form = FormState{Phase: FormIdle}
		evt = EvtFormRestored
	}

	form.Children = children
	s.Elements[id] = form
	return []Event{{Type: evt, Target: id}}, nil
}
