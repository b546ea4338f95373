// Package chat holds the conversation session: the transcript, the prompt
// templates layered on it, and the boundary to the completion API.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
)

// Request is one completion call: the full message list plus sampling
// parameters.
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int64
	Temperature float64
}

// Completer performs a single completion call and returns the text of the
// first choice.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Session owns a transcript and mediates every request to a Completer.
// It is not safe for concurrent use.
type Session struct {
	id          string
	completer   Completer
	log         logrus.FieldLogger
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	transcript  []Message
}

type Option func(*Session)

func WithModel(model string) Option {
	return func(s *Session) {
		if model != "" {
			s.model = model
		}
	}
}

func WithMaxTokens(n int64) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(s *Session) { s.temperature = t }
}

// WithTimeout bounds each completion call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSession creates an empty session. A nil completer is allowed: calls
// that need it fail with ErrClientNotConfigured.
func NewSession(c Completer, opts ...Option) *Session {
	s := &Session{
		id:          uuid.Must(uuid.NewV7()).String(),
		completer:   c,
		log:         logrus.StandardLogger(),
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session_id", s.id)
	return s
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Model() string { return s.model }

// Configured reports whether a completer is available.
func (s *Session) Configured() bool { return s.completer != nil }

// Transcript returns a copy of the exchanged messages. The system
// instruction is never part of it.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Clear empties the transcript.
func (s *Session) Clear() {
	s.transcript = nil
	s.log.Debug("transcript cleared")
}

// CallOption adjusts a single Send.
type CallOption func(*Request)

// Model overrides the session model for one call.
func Model(name string) CallOption {
	return func(r *Request) {
		if name != "" {
			r.Model = name
		}
	}
}

// Send appends text as a user message, sends the system instruction plus
// the transcript, and appends the reply. On failure the transcript is left
// as it was before the call.
func (s *Session) Send(ctx context.Context, text string, opts ...CallOption) (string, error) {
	if s.completer == nil {
		return "", ErrClientNotConfigured
	}

	s.transcript = append(s.transcript, UserMessage(text))

	req := Request{
		Model:       s.model,
		Messages:    s.outgoing(),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}
	for _, opt := range opts {
		opt(&req)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.WithFields(logrus.Fields{"model": req.Model, "messages": len(req.Messages)})
	log.Debug("completion request")

	start := time.Now()
	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.transcript = s.transcript[:len(s.transcript)-1]
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("request timed out after %s: %w", s.timeout, err)
		}
		log.WithError(err).Debug("completion failed")
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}

	s.transcript = append(s.transcript, AssistantMessage(reply))
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("completion done")
	return reply, nil
}

// outgoing builds the request messages: system instruction first, then the
// transcript.
func (s *Session) outgoing() []Message {
	msgs := make([]Message, 0, len(s.transcript)+1)
	msgs = append(msgs, SystemMessage(SystemPrompt))
	return append(msgs, s.transcript...)
}

// GenerateCode asks for code in language (python when empty).
func (s *Session) GenerateCode(ctx context.Context, description, language string, opts ...CallOption) (string, error) {
	return s.Send(ctx, CodePrompt(description, language), opts...)
}

// AnalyzeFile reads path and asks for an analysis of its first
// MaxExcerptChars characters.
func (s *Session) AnalyzeFile(ctx context.Context, path string, opts ...CallOption) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: '%s'", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	content := string(b)
	prompt := AnalysisPrompt(path, utf8.RuneCountInString(content), excerpt(content, MaxExcerptChars))
	return s.Send(ctx, prompt, opts...)
}

// SearchWeb is a stub: it answers with a fixed placeholder and performs no
// network call.
func (s *Session) SearchWeb(query string) string {
	return SearchPlaceholder(query)
}
