// Package session holds the state of one chat conversation: the message
// history and the usage tracker. Nothing here is ambient or global; the
// server owns exactly one Session and passes it where needed.
package session

import (
	"github.com/google/uuid"

	"github.com/lumenchat/lumen/pkg/usage"
)

// Roles used in the conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in the conversation. Assistant messages store the
// visible text with any thinking segment already stripped; the thinking
// text rides alongside for the collapsible block.
type Message struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"`

	// Incomplete marks an assistant message cut short by a stream error.
	// The partial text is preserved and the front-end flags it.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Session owns the message history and usage tracker for one conversation.
// It is not safe for concurrent use; the server serializes access.
type Session struct {
	ID       string
	Messages []Message
	Usage    *usage.Tracker
}

// New creates an empty session metering energy with the given constants.
func New(meter usage.Meter) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Usage: usage.NewTracker(meter),
	}
}

// AppendUser records a user turn and returns it.
func (s *Session) AppendUser(content string) Message {
	msg := Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: content,
	}
	s.Messages = append(s.Messages, msg)
	return msg
}

// AppendAssistant records an assistant turn and returns it.
func (s *Session) AppendAssistant(content, thinking string, incomplete bool) Message {
	msg := Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    content,
		Thinking:   thinking,
		Incomplete: incomplete,
	}
	s.Messages = append(s.Messages, msg)
	return msg
}

// Reset clears the history and the usage counter, starting a fresh
// conversation under a new ID.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.Messages = nil
	s.Usage.Reset()
}
