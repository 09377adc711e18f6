package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// OllamaProvider implements Provider against a locally hosted Ollama
// server. The server exposes a plain JSON HTTP API, so a generic HTTP
// client is used instead of a vendor SDK.
type OllamaProvider struct {
	client *resty.Client
	model  string
}

// ollamaRequest is the /api/generate request body.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the non-streaming /api/generate response body.
type ollamaResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// NewOllamaProvider creates a provider targeting a local Ollama server.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}

	client := resty.New().SetBaseURL(cfg.BaseURL)

	return &OllamaProvider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	body := ollamaRequest{
		Model:  p.model,
		System: req.System,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.MaxTokens,
		},
	}

	var out ollamaResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusTooManyRequests {
			return nil, &ErrRateLimit{Err: fmt.Errorf("ollama: %s", resp.Status())}
		}
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("ollama: %s", resp.Status())}
	}

	stop := StopEnd
	if out.DoneReason == "length" {
		stop = StopMaxTokens
	}

	return &Response{
		Text: out.Response,
		Usage: Usage{
			InputTokens:  out.PromptEvalCount,
			OutputTokens: out.EvalCount,
			TotalTokens:  out.PromptEvalCount + out.EvalCount,
		},
		Model:      p.model,
		StopReason: stop,
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}
