package llm

import (
	"context"
	"time"
)

// Task identifies the kind of work a gateway call performs. The task
// selects the sampling temperature and the timeout for the call.
type Task string

const (
	TaskQuestionGen  Task = "question-gen"
	TaskWrongAnswers Task = "wrong-answers"
	TaskEvaluate     Task = "evaluate"
	TaskCleanup      Task = "cleanup"
)

// GatewayConfig holds the fixed generation parameters per task class.
type GatewayConfig struct {
	// GenTemperature applies to question, wrong-answer and evaluation
	// tasks. Cleanup runs colder for more deterministic formatting.
	GenTemperature     float64       `mapstructure:"gen_temperature"`
	CleanupTemperature float64       `mapstructure:"cleanup_temperature"`
	TopP               float64       `mapstructure:"top_p"`
	MaxTokens          int           `mapstructure:"max_tokens"`
	GenTimeout         time.Duration `mapstructure:"gen_timeout"`
	CleanupTimeout     time.Duration `mapstructure:"cleanup_timeout"`
}

// DefaultGatewayConfig returns the standard generation parameters.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		GenTemperature:     0.7,
		CleanupTemperature: 0.2,
		TopP:               0.95,
		MaxTokens:          2048,
		GenTimeout:         2 * time.Minute,
		CleanupTimeout:     5 * time.Minute,
	}
}

// Gateway is the task-level facade over a Provider. It applies per-task
// generation parameters and timeouts, and normalizes completion states:
// a truncated reply still yields its partial text, a safety-blocked reply
// yields empty text, and only transport/decode failures become errors.
type Gateway struct {
	provider Provider
	config   GatewayConfig
}

// NewGateway creates a Gateway over the given provider.
func NewGateway(provider Provider, cfg GatewayConfig) *Gateway {
	return &Gateway{provider: provider, config: cfg}
}

// Run issues one generation call for the given task. The returned string
// may be empty (blocked or no output); that is a soft result, not an
// error. Errors are always *ErrBackend carrying the original cause.
func (g *Gateway) Run(ctx context.Context, task Task, system, prompt string) (string, error) {
	ctx = WithPurpose(ctx, string(task))
	ctx, cancel := context.WithTimeout(ctx, g.timeoutFor(task))
	defer cancel()

	req := Request{
		System:      system,
		Prompt:      prompt,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.temperatureFor(task),
		TopP:        g.config.TopP,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", &ErrBackend{Task: task, Err: err}
	}

	// StopSafety already normalized to empty text by the adapters;
	// StopMaxTokens keeps the partial text on a best-effort basis.
	return resp.Text, nil
}

// ModelID returns the underlying provider's model identifier.
func (g *Gateway) ModelID() string {
	return g.provider.ModelID()
}

func (g *Gateway) temperatureFor(task Task) float64 {
	if task == TaskCleanup {
		return g.config.CleanupTemperature
	}
	return g.config.GenTemperature
}

func (g *Gateway) timeoutFor(task Task) time.Duration {
	if task == TaskCleanup {
		return g.config.CleanupTimeout
	}
	return g.config.GenTimeout
}
