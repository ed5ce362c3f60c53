// Package thinking separates a reasoning model's embedded thinking segment
// from the answer text meant for display.
package thinking

import "strings"

// Marker pair emitted by DeepSeek-R1-style reasoning models.
const (
	DefaultOpenMarker  = "<think>"
	DefaultCloseMarker = "</think>"
)

// Split is the result of extracting a thinking segment from raw model
// output. It is always a pure function of the input text.
type Split struct {
	// Thinking is the trimmed content strictly between the first complete
	// marker pair. Empty unless Found.
	Thinking string

	// Found reports whether a complete marker pair was present.
	Found bool

	// Visible is the text to display. When a complete pair is found it is
	// the input with the pair and its content removed, then trimmed.
	// Otherwise it is the input unchanged, so an in-progress stream keeps
	// rendering exactly what arrived.
	Visible string
}

// Extractor splits raw model output on a configurable marker pair.
// The zero value is not useful; use NewExtractor or the package-level
// Extract for the default markers.
type Extractor struct {
	Open  string
	Close string
}

// NewExtractor returns an Extractor for the given marker pair.
func NewExtractor(open, closing string) Extractor {
	return Extractor{Open: open, Close: closing}
}

var defaultExtractor = NewExtractor(DefaultOpenMarker, DefaultCloseMarker)

// Extract splits text on the first complete marker pair, matched
// non-greedily across line breaks. Only the first pair is honored; any
// later marker text stays in Visible. The function holds no state and
// recomputes from scratch, so it is safe to call on every growing prefix
// of a streamed response.
func (e Extractor) Extract(text string) Split {
	start := strings.Index(text, e.Open)
	if start < 0 {
		return Split{Visible: text}
	}

	rest := text[start+len(e.Open):]
	end := strings.Index(rest, e.Close)
	if end < 0 {
		// Opened but not yet closed: the segment is still streaming.
		return Split{Visible: text}
	}

	return Split{
		Thinking: strings.TrimSpace(rest[:end]),
		Found:    true,
		Visible:  strings.TrimSpace(text[:start] + rest[end+len(e.Close):]),
	}
}

// Extract splits text on the default <think> marker pair.
func Extract(text string) Split {
	return defaultExtractor.Extract(text)
}
