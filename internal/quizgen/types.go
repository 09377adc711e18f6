// Package quizgen turns note chunks into persisted quiz questions. The
// prompt templates and the transcript parser live side by side because
// they form a single contract: the regular expressions match exactly the
// line formats the prompts instruct the model to produce.
package quizgen

// MaxPairsPerChunk caps how many questions one chunk may contribute,
// bounding how far a single bad chunk can amplify wrong content.
const MaxPairsPerChunk = 3

// MinWrongAnswers is the distractor floor for choice-based questions.
// Candidates below it are discarded, never persisted half-formed.
const MinWrongAnswers = 2

// DesiredWrongAnswers is the distractor target for multiple-choice
// questions: one correct option plus three wrong ones.
const DesiredWrongAnswers = 3

// QuestionAnswerPair is one parsed question candidate.
type QuestionAnswerPair struct {
	Question     string
	Answer       string
	WrongAnswers []string
}
