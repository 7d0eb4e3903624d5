package types

import "github.com/DoyleJ11/solar-dashboard/internal/engine"

// Server -> Client
// StateSnapshot:
//   version: number   // bumps once per change to the page
//   state:
//     page: "index" | "dashboard" | "blog"
//     elements: { [id]: Element }   // tag, text, class, style, children, ...
//     form: { phase: "idle" | "submitting" | "complete" }
//
// Error:
//   error: string

type ServerMessage struct {
	Type    string        `json:"type"` // "StateSnapshot" | "Error"
	Version int           `json:"version,omitempty"`
	State   *engine.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)
