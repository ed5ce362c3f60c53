// Package server provides the browser chat front-end for an
// Ollama-compatible inference backend. It streams generations to the page
// as NDJSON UI events, separating each response's thinking segment from
// the visible answer and keeping the session's token/energy tally.
package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	_ "embed"

	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lumenchat/lumen/pkg/llm"
	"github.com/lumenchat/lumen/pkg/session"
	"github.com/lumenchat/lumen/pkg/thinking"
)

//go:embed web/index.html
var indexHTML []byte

// Server serves the chat page and drives generation requests against the
// backend. It owns the single logical session: one request is streamed to
// completion before the page sends the next, and the mutex only exists
// because HTTP can still deliver overlapping calls.
type Server struct {
	config    Config
	logger    *zap.Logger
	client    *llm.Client
	extractor thinking.Extractor
	server    *fiber.App
	watcher   *fsnotify.Watcher

	mu      sync.Mutex
	session *session.Session
}

// New creates a new Server.
func New(config Config, logger *zap.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Enable streaming
		StreamRequestBody: true,
	})

	s := &Server{
		config:    config,
		logger:    logger,
		client:    llm.NewClient(config.BackendURL),
		extractor: thinking.NewExtractor(thinking.DefaultOpenMarker, thinking.DefaultCloseMarker),
		server:    app,
		session:   session.New(config.Meter()),
	}

	// Register routes
	app.Get("/", s.handleIndex)
	app.Post("/api/chat", s.handleChat)
	app.Get("/api/history", s.handleHistory)
	app.Delete("/api/history", s.handleResetHistory)
	app.Get("/api/usage", s.handleUsage)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s, nil
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	// Snapshot under the lock; the config watcher may already be running.
	cfg := s.currentConfig()

	s.logger.Info("starting chat server",
		zap.String("listen", cfg.ListenAddr),
		zap.String("backend", cfg.BackendURL),
		zap.String("model", cfg.Model),
	)

	return s.server.Listen(cfg.ListenAddr)
}

// Close shuts down the server and releases resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			return err
		}
	}
	return nil
}

// handleIndex serves the embedded chat page.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(indexHTML)
}

// chatRequest is the body the page posts for one user message.
type chatRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// handleChat drives one generation request: POST the prompt upstream,
// iterate the chunk stream to completion, re-extract the thinking segment
// from the accumulated text on every fragment, and stream UI events back
// to the page. Token accounting happens once, off the terminal chunk.
func (s *Server) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	var req chatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "prompt is required"})
	}

	cfg := s.currentConfig()
	model := req.Model
	if model == "" {
		model = cfg.Model
	}

	s.logger.Debug("received chat request",
		zap.String("model", model),
		zap.Int("prompt_len", len(req.Prompt)),
	)

	stream, err := s.client.Generate(c.Context(), &llm.GenerateRequest{
		Model:     model,
		Prompt:    req.Prompt,
		Stream:    true,
		System:    cfg.Generation.System,
		KeepAlive: cfg.Generation.KeepAlive,
		Options:   cfg.Generation.Options(),
	})
	if err != nil {
		s.logger.Error("backend request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "backend unavailable"})
	}

	s.mu.Lock()
	s.session.AppendUser(req.Prompt)
	s.mu.Unlock()

	// Set up streaming response headers
	c.Set("Content-Type", "application/x-ndjson")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stream.Close()

		enc := json.NewEncoder(w)

		var accumulated strings.Builder
		var terminal *llm.GenerateChunk
		var streamErr error

		for {
			chunk, err := stream.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				streamErr = err
				break
			}

			if chunk.Done {
				terminal = chunk
				continue
			}

			accumulated.WriteString(chunk.Response)
			split := s.extractor.Extract(accumulated.String())

			ev := Event{Event: EventUpdate, Visible: split.Visible}
			if split.Found {
				ev.Thinking = split.Thinking
				ev.ThinkingDone = true
			}

			if err := enc.Encode(ev); err != nil {
				s.logger.Warn("client went away mid-stream", zap.Error(err))
				return
			}
			w.Flush()
		}

		split := s.extractor.Extract(accumulated.String())

		s.mu.Lock()
		s.session.Usage.Record(terminal)
		msg := s.session.AppendAssistant(split.Visible, split.Thinking, streamErr != nil)
		report := s.session.Usage.Report()
		s.mu.Unlock()

		final := Event{Event: EventDone, Message: &msg, Usage: &report}
		if streamErr != nil {
			s.logger.Error("stream failed", zap.Error(streamErr))
			final.Event = EventError
			final.Error = streamErr.Error()
		} else {
			s.logger.Debug("generation complete",
				zap.Int("visible_len", len(split.Visible)),
				zap.Bool("thinking", split.Found),
				zap.Int("total_tokens", report.TotalTokens),
				zap.Duration("duration", time.Since(startTime)),
			)
		}

		enc.Encode(final)
		w.Flush()
	}))

	return nil
}

// handleHistory returns the session's message history.
func (s *Server) handleHistory(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Never serialize as null; the page iterates unconditionally.
	messages := s.session.Messages
	if messages == nil {
		messages = []session.Message{}
	}

	return c.JSON(map[string]any{
		"session_id": s.session.ID,
		"count":      len(messages),
		"messages":   messages,
	})
}

// handleResetHistory clears the conversation and the usage counter.
func (s *Server) handleResetHistory(c *fiber.Ctx) error {
	s.mu.Lock()
	s.session.Reset()
	id := s.session.ID
	s.mu.Unlock()

	s.logger.Info("session reset", zap.String("session_id", id))
	return c.JSON(map[string]string{"session_id": id})
}

// handleUsage returns the session's token total and energy figures.
func (s *Server) handleUsage(c *fiber.Ctx) error {
	s.mu.Lock()
	report := s.session.Usage.Report()
	s.mu.Unlock()

	return c.JSON(report)
}

// currentConfig snapshots the config under the lock; the config watcher
// may swap the default model at runtime.
func (s *Server) currentConfig() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// currentModel reads the default model under the lock.
func (s *Server) currentModel() string {
	return s.currentConfig().Model
}
