package llm

// GenerateRequest represents a text generation request (Ollama-compatible).
type GenerateRequest struct {
	Model  string `json:"model"`  // Model name (e.g. "deepseek-r1")
	Prompt string `json:"prompt"` // The user prompt
	Stream bool   `json:"stream"` // Whether to stream the response

	System string `json:"system,omitempty"` // Optional system prompt

	// Generation options
	Options *Options `json:"options,omitempty"`

	// Keep model loaded
	KeepAlive string `json:"keep_alive,omitempty"` // How long to keep model in memory
}
