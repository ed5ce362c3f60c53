package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client issues generation requests to an Ollama-compatible inference
// backend. One Generate call maps to exactly one HTTP POST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the backend at baseURL
// (e.g. "http://localhost:11434").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// LLM requests can be slow, especially with thinking blocks
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate POSTs the request to /api/generate and returns the response as
// a Stream of decoded chunks. Connection failures, timeouts and non-2xx
// responses surface as *BackendUnavailableError. The caller owns the
// returned stream and must Close it.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*Stream, error) {
	req.Stream = true

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &BackendUnavailableError{Endpoint: endpoint, Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		return nil, &BackendUnavailableError{
			Endpoint: endpoint,
			Status:   httpResp.StatusCode,
			Body:     string(body),
		}
	}

	return newStream(httpResp.Body), nil
}
