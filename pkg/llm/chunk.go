package llm

import "time"

// GenerateChunk represents a single decoded line of a streaming generate
// response. Non-terminal chunks carry a response fragment; the terminal
// chunk (Done=true) carries the usage metrics instead.
type GenerateChunk struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`

	// Final chunk includes metrics
	TotalDuration      int64 `json:"total_duration,omitempty"`
	LoadDuration       int64 `json:"load_duration,omitempty"`
	PromptEvalCount    int   `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64 `json:"prompt_eval_duration,omitempty"`
	EvalCount          int   `json:"eval_count,omitempty"`
	EvalDuration       int64 `json:"eval_duration,omitempty"`

	// Context for continuation (Ollama-specific)
	Context []int `json:"context,omitempty"` // Token context for follow-up requests
}
