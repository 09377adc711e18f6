package quizgen

import (
	"context"

	"github.com/vkiss/memoriter/internal/llm"
)

// Evaluation is the outcome of grading a short answer.
type Evaluation struct {
	Accepted  bool
	Rationale string
}

// EvaluateShortAnswer grades a learner's free-text answer against the
// stored sample answer. An empty or unparseable transcript grades as
// not accepted rather than erroring; only backend failures propagate.
func (s *Service) EvaluateShortAnswer(ctx context.Context, question, sample, userAnswer string) (Evaluation, error) {
	raw, err := s.gateway.Run(ctx, llm.TaskEvaluate, evaluateSystemPrompt,
		evaluatePrompt(question, sample, userAnswer))
	if err != nil {
		return Evaluation{}, err
	}

	accepted, rationale, ok := parseEvaluation(raw)
	if !ok {
		return Evaluation{}, nil
	}
	return Evaluation{Accepted: accepted, Rationale: rationale}, nil
}
