package chat_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagozs/go-aibot/internal/chat"
)

// echoCompleter replies with the content of the last user message and keeps
// every request it saw.
type echoCompleter struct {
	requests []chat.Request
	err      error
}

func (e *echoCompleter) Complete(_ context.Context, req chat.Request) (string, error) {
	e.requests = append(e.requests, req)
	if e.err != nil {
		return "", e.err
	}
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == chat.RoleUser {
			return req.Messages[i].Content, nil
		}
	}
	return "", nil
}

func (e *echoCompleter) last() chat.Request { return e.requests[len(e.requests)-1] }

type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ chat.Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type panicCompleter struct{ t *testing.T }

func (p panicCompleter) Complete(context.Context, chat.Request) (string, error) {
	p.t.Fatal("completer must not be called")
	return "", nil
}

func TestSend_Echo(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	reply, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
	assert.Equal(t, []chat.Message{
		{Role: chat.RoleUser, Content: "hello"},
		{Role: chat.RoleAssistant, Content: "hello"},
	}, s.Transcript())
}

func TestSend_RequestShape(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	req := fake.last()
	assert.Equal(t, chat.DefaultModel, req.Model)
	assert.EqualValues(t, 1000, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)

	require.Len(t, req.Messages, 4)
	assert.Equal(t, chat.SystemMessage(chat.SystemPrompt), req.Messages[0])
	assert.Equal(t, chat.UserMessage("first"), req.Messages[1])
	assert.Equal(t, chat.AssistantMessage("first"), req.Messages[2])
	assert.Equal(t, chat.UserMessage("second"), req.Messages[3])

	for _, m := range s.Transcript() {
		assert.NotEqual(t, chat.RoleSystem, m.Role, "system instruction leaked into transcript")
	}
}

func TestSend_TranscriptGrowsByPairs(t *testing.T) {
	s := chat.NewSession(&echoCompleter{})
	inputs := []string{"a", "b", "c", "d", "e"}

	for i, in := range inputs {
		_, err := s.Send(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, s.Transcript(), 2*(i+1))
	}

	tr := s.Transcript()
	for i, in := range inputs {
		assert.Equal(t, chat.RoleUser, tr[2*i].Role)
		assert.Equal(t, in, tr[2*i].Content)
		assert.Equal(t, chat.RoleAssistant, tr[2*i+1].Role)
	}
}

func TestSend_ModelOverride(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake, chat.WithModel("gpt-4o-mini"))

	_, err := s.Send(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", fake.last().Model)

	_, err = s.Send(context.Background(), "y", chat.Model("gpt-4.1"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", fake.last().Model)
	assert.Equal(t, "gpt-4o-mini", s.Model())
}

func TestSend_NotConfigured(t *testing.T) {
	s := chat.NewSession(nil)

	_, err := s.Send(context.Background(), "hello")
	require.ErrorIs(t, err, chat.ErrClientNotConfigured)
	assert.False(t, s.Configured())
	assert.Empty(t, s.Transcript())
}

func TestSend_ProviderErrorRollsBack(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	_, err := s.Send(context.Background(), "ok")
	require.NoError(t, err)

	cause := errors.New("401 invalid api key")
	fake.err = cause
	_, err = s.Send(context.Background(), "boom")
	require.ErrorIs(t, err, chat.ErrProvider)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "401 invalid api key")
	assert.Len(t, s.Transcript(), 2)

	fake.err = nil
	_, err = s.Send(context.Background(), "again")
	require.NoError(t, err)
	for _, m := range fake.last().Messages {
		assert.NotEqual(t, "boom", m.Content)
	}
}

func TestSend_Timeout(t *testing.T) {
	s := chat.NewSession(blockingCompleter{}, chat.WithTimeout(20*time.Millisecond))

	_, err := s.Send(context.Background(), "slow")
	require.ErrorIs(t, err, chat.ErrProvider)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
	assert.Empty(t, s.Transcript())
}

func TestClear(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	for i := 0; i < 3; i++ {
		_, err := s.Send(context.Background(), fmt.Sprintf("before-%d", i))
		require.NoError(t, err)
	}
	s.Clear()
	assert.Empty(t, s.Transcript())

	_, err := s.Send(context.Background(), "after")
	require.NoError(t, err)

	msgs := fake.last().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.RoleSystem, msgs[0].Role)
	assert.Equal(t, "after", msgs[1].Content)
	for _, m := range msgs {
		assert.NotContains(t, m.Content, "before-")
	}
}

func TestTranscript_IsCopy(t *testing.T) {
	s := chat.NewSession(&echoCompleter{})
	_, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	tr := s.Transcript()
	tr[0].Content = "mutated"
	assert.Equal(t, "hello", s.Transcript()[0].Content)
}

func TestSessionIDs(t *testing.T) {
	a := chat.NewSession(nil)
	b := chat.NewSession(nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGenerateCode(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	reply, err := s.GenerateCode(context.Background(), "a simple web scraper", "")
	require.NoError(t, err)
	assert.Contains(t, reply, "Generate python code")
	assert.Contains(t, reply, "a simple web scraper")

	reply, err = s.GenerateCode(context.Background(), "fizzbuzz", "go")
	require.NoError(t, err)
	assert.Contains(t, reply, "Generate go code")
	assert.Contains(t, reply, "Complete, working code")
	assert.Contains(t, reply, "Usage examples")
}

func TestAnalyzeFile_TruncatesTo2000Chars(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	head := strings.Repeat("a", 1999) + "ω"
	tail := strings.Repeat("Ω", 600)
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(head+tail), 0o644))

	_, err := s.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	prompt := fake.last().Messages[1].Content
	assert.Contains(t, prompt, head)
	assert.NotContains(t, prompt, "Ω")
	assert.Contains(t, prompt, "Size: 2600 characters")
	assert.Contains(t, prompt, "File: "+path)
}

func TestAnalyzeFile_Small(t *testing.T) {
	fake := &echoCompleter{}
	s := chat.NewSession(fake)

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	_, err := s.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	prompt := fake.last().Messages[1].Content
	assert.Contains(t, prompt, "package main\n...")
	assert.Contains(t, prompt, "1. File type and purpose")
	assert.Contains(t, prompt, "4. Summary")
}

func TestAnalyzeFile_NotFound(t *testing.T) {
	s := chat.NewSession(panicCompleter{t})

	_, err := s.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, chat.ErrNotFound)
	assert.Empty(t, s.Transcript())
}

func TestAnalyzeFile_ReadError(t *testing.T) {
	s := chat.NewSession(panicCompleter{t})

	_, err := s.AnalyzeFile(context.Background(), t.TempDir())
	require.ErrorIs(t, err, chat.ErrIO)
}

func TestSearchWeb(t *testing.T) {
	s := chat.NewSession(panicCompleter{t})

	got := s.SearchWeb("rust async")
	assert.Contains(t, got, "rust async")
	assert.Equal(t, got, s.SearchWeb("rust async"))
	assert.Empty(t, s.Transcript())
}
