package llm

import "context"

// Provider is the core abstraction over interchangeable generation
// backends. Consumers call Generate with a Request and receive the raw
// text reply; structure is imposed downstream by the transcript parsers.
type Provider interface {
	// Generate sends a prompt to the backend and returns its reply.
	// Transport and decode failures surface as typed errors; an empty
	// reply is a valid response, not an error.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system prompt. Sets the model's role and the format
	// contract its output must follow.
	System string

	// Prompt is the user message. Generation here is single-turn.
	Prompt string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64

	// TopP is the nucleus sampling parameter. 0 means provider default.
	TopP float64
}

// StopReason values, normalized across backends.
const (
	// StopEnd means the model completed its reply normally.
	StopEnd = "end"

	// StopMaxTokens means the reply was cut off by the output budget.
	// The partial text is still returned.
	StopMaxTokens = "max_tokens"

	// StopSafety means a content filter blocked the reply. The text is
	// empty and callers must treat it as "no usable answer".
	StopSafety = "safety"
)

// Response holds the backend's output.
type Response struct {
	// Text is the raw generated text. Empty when the reply was blocked.
	Text string

	// StopReason is one of StopEnd, StopMaxTokens, StopSafety.
	StopReason string

	// Model is the actual model that served the request.
	Model string

	// Usage reports token consumption for this request.
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
