package types

// Client -> Server
// Scroll:
//   scroll_y: number
//
// Input:
//   name: string   // input name inside the ROI form
//   value: string
//
// Submit: {}     // starts the lead capture simulation; nothing is sent anywhere
//
// Several sockets may share a session code. The session ends when the last
// one disconnects.

type ClientMessage struct {
	Type    string `json:"type"` // "Scroll" | "Input" | "Submit"
	ScrollY int    `json:"scroll_y,omitempty"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
}

const (
	MsgScroll = "Scroll"
	MsgInput  = "Input"
	MsgSubmit = "Submit"
)
