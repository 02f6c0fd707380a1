// Package ollama talks to the Ollama HTTP API.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/docsense/internal/core/domain"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// New builds a client. Per-call deadlines come from the context; the HTTP
// timeout is only a backstop.
func New(baseURL, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate implements ports.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error) {
	req := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: optionsMap(opts),
	}
	var resp generateResponse
	if err := c.postJSON(ctx, "/api/generate", req, &resp, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Response), nil
}

func (c *Client) Name() string {
	return fmt.Sprintf("ollama:%s", c.model)
}

func optionsMap(opts domain.GenerationOptions) map[string]any {
	out := map[string]any{}
	if opts.MaxTokens > 0 {
		out["num_predict"] = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		out["temperature"] = opts.Temperature
	}
	if opts.TopP > 0 {
		out["top_p"] = opts.TopP
	}
	if opts.TopK > 0 {
		out["top_k"] = opts.TopK
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
