// Package provider adapts the OpenAI Go SDK to the chat.Completer and
// credentials.KeyChecker boundaries.
package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/thiagozs/go-aibot/internal/chat"
)

var ErrNoChoices = errors.New("no choices in response")

type Options struct {
	APIKey  string
	BaseURL string
	Proxy   string
}

// Client is a thin wrapper over openai.Client. SDK retries are disabled:
// a failed call is reported once.
type Client struct {
	api openai.Client
}

func New(o Options) (*Client, error) {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if o.APIKey != "" {
		opts = append(opts, option.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	if o.Proxy != "" {
		hc, err := httpClientWithProxy(o.Proxy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithHTTPClient(hc))
	}
	return &Client{api: openai.NewClient(opts...)}, nil
}

// Complete sends req to the chat completions endpoint and returns the
// content of the first choice.
func (c *Client) Complete(ctx context.Context, req chat.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(req.Model),
		Messages:    messagesForAPI(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels is the lightweight authenticated call used to check a key.
func (c *Client) ListModels(ctx context.Context) error {
	_, err := c.api.Models.List(ctx)
	return err
}

func messagesForAPI(in []chat.Message) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(in))
	for _, m := range in {
		switch m.Role {
		case chat.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case chat.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case chat.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}
	return msgs
}

// KeyChecker validates candidate keys against the models endpoint.
type KeyChecker struct {
	BaseURL string
	Proxy   string
}

func (k KeyChecker) CheckKey(ctx context.Context, key string) error {
	c, err := New(Options{APIKey: key, BaseURL: k.BaseURL, Proxy: k.Proxy})
	if err != nil {
		return err
	}
	return c.ListModels(ctx)
}

func httpClientWithProxy(proxy string) (*http.Client, error) {
	tr := &http.Transport{}
	u, err := url.Parse(proxy)
	if err != nil {
		return nil, err
	}
	tr.Proxy = http.ProxyURL(u)
	return &http.Client{Transport: tr}, nil
}
