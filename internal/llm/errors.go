package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the backend returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the backend is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM backend unavailable: %v", e.Err)
	}
	return "LLM backend unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrBackend is the gateway-level failure handed to callers: a transport,
// timeout or decode problem talking to the backend, carrying the original
// cause. Empty model output never produces an ErrBackend.
type ErrBackend struct {
	Task Task
	Err  error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("generation backend failed (%s): %v", e.Task, e.Err)
}

func (e *ErrBackend) Unwrap() error { return e.Err }
