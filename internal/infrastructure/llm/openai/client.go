// Package openai generates answers through any OpenAI-compatible chat endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/docsense/internal/core/domain"
)

type Client struct {
	api   *goopenai.Client
	model string
}

// New targets baseURL, which must include the API version prefix (".../v1").
// An empty baseURL keeps the library default.
func New(baseURL, apiKey, model string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{api: goopenai.NewClientWithConfig(cfg), model: model}
}

// Generate implements ports.TextGenerator. TopK has no chat-completions
// equivalent and is dropped.
func (c *Client) Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
	})
	if err != nil {
		return "", &StatusError{err: err}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) Name() string {
	return fmt.Sprintf("openai:%s", c.model)
}

// StatusError exposes the HTTP status of a failed completion, when the
// library reported one.
type StatusError struct {
	err error
}

func (e *StatusError) Error() string {
	return "openai chat completion: " + e.err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.err
}

func (e *StatusError) HTTPStatus() int {
	var apiErr *goopenai.APIError
	if errors.As(e.err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(e.err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
