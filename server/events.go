package server

import (
	"github.com/lumenchat/lumen/pkg/session"
	"github.com/lumenchat/lumen/pkg/usage"
)

// Event names streamed to the browser while a generation is in flight.
const (
	// EventUpdate carries the current visible text (recomputed from the
	// full accumulated response) and, once a complete thinking block has
	// arrived, the thinking text.
	EventUpdate = "update"

	// EventDone closes the stream with the stored message and the updated
	// usage report.
	EventDone = "done"

	// EventError reports a stream failure. The partial message is
	// preserved and flagged incomplete.
	EventError = "error"
)

// Event is one NDJSON record on the /api/chat response stream.
type Event struct {
	Event string `json:"event"`

	// update fields; Visible is always present so the page can render the
	// empty string while a thinking block is still streaming.
	Visible      string `json:"visible"`
	Thinking     string `json:"thinking,omitempty"`
	ThinkingDone bool   `json:"thinking_done,omitempty"`

	// done / error fields
	Message *session.Message `json:"message,omitempty"`
	Usage   *usage.Report    `json:"usage,omitempty"`
	Error   string           `json:"error,omitempty"`
}
