package llm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Stream is a pull-based iterator over the newline-delimited JSON chunks
// of one generation request. The caller drives advancement with Next; the
// stream is not seekable and not safe for concurrent use.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	err     error
}

func newStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	// Fragments are tiny but a terminal chunk can carry a large context array.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{body: body, scanner: scanner}
}

// Next blocks until the backend sends the next line and returns it decoded.
// Non-terminal chunks carry the response fragment (empty string when the
// field is absent). The terminal chunk carries the usage metrics and an
// empty Response regardless of what the backend sent. After the terminal
// chunk, or when the connection closes, Next returns io.EOF. A line that
// does not decode as JSON returns *MalformedChunkError; every error is
// sticky and ends the iteration.
func (s *Stream) Next() (*GenerateChunk, error) {
	if s.err != nil {
		return nil, s.err
	}

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk GenerateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			s.err = &MalformedChunkError{Line: string(line), Err: err}
			return nil, s.err
		}

		if chunk.Done {
			// The terminal chunk is a stats record; its response field
			// is never rendered.
			chunk.Response = ""
			s.err = io.EOF
		}
		return &chunk, nil
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("read stream: %w", err)
	} else {
		s.err = io.EOF
	}
	return nil, s.err
}

// Close releases the underlying response body. Safe to call after an error
// or in a defer alongside normal iteration.
func (s *Stream) Close() error {
	return s.body.Close()
}
