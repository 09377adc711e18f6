package quizgen

import (
	"regexp"
	"strings"

	"github.com/vkiss/memoriter/internal/store"
)

// Line patterns mirroring the prompt format contracts. Matching is
// line-oriented, case-insensitive and whitespace tolerant; a line that
// fits no expected pattern invalidates the in-progress pair rather than
// letting the parser guess intent.
var (
	numberedRe  = regexp.MustCompile(`^\d+[.)]\s*(.+)$`)
	correctRe   = regexp.MustCompile(`(?i)^helyes válasz:\s*(.+)$`)
	wrongRe     = regexp.MustCompile(`(?i)^([a-d])[).]\s*(.+)$`)
	tfAnswerRe  = regexp.MustCompile(`(?i)^válasz:\s*(igaz|hamis)\s*$`)
	saAnswerRe  = regexp.MustCompile(`(?i)^válasz:\s*(.+)$`)
	evalRe      = regexp.MustCompile(`(?i)^értékelés:\s*(elfogadva|elutasítva)\s*$`)
	rationaleRe = regexp.MustCompile(`(?i)^indoklás:\s*(.+)$`)
)

// Parse extracts question candidates from a model transcript, capped at
// MaxPairsPerChunk. A malformed transcript yields fewer results, never
// an error.
func Parse(raw string, qt store.QuestionType) []QuestionAnswerPair {
	lines := strings.Split(raw, "\n")

	switch qt {
	case store.QuestionTypeTrueFalse:
		return parseTrueFalse(lines)
	case store.QuestionTypeShortAnswer:
		return parseShortAnswer(lines)
	default:
		return parseMultipleChoice(lines)
	}
}

func parseMultipleChoice(lines []string) []QuestionAnswerPair {
	var pairs []QuestionAnswerPair
	var pending *QuestionAnswerPair
	collectingWrong := false

	commit := func() {
		if pending == nil || pending.Question == "" || pending.Answer == "" {
			pending = nil
			return
		}
		// Fewer than two distractors means an unusable question.
		if len(pending.WrongAnswers) < MinWrongAnswers {
			pending = nil
			return
		}
		if len(pairs) < MaxPairsPerChunk {
			pairs = append(pairs, *pending)
		}
		pending = nil
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := numberedRe.FindStringSubmatch(line); m != nil {
			commit()
			pending = &QuestionAnswerPair{Question: strings.TrimSpace(m[1])}
			collectingWrong = false
			continue
		}

		if m := correctRe.FindStringSubmatch(line); m != nil {
			if pending != nil && pending.Answer == "" {
				pending.Answer = strings.TrimSpace(m[1])
				collectingWrong = true
			} else {
				pending = nil
				collectingWrong = false
			}
			continue
		}

		if m := wrongRe.FindStringSubmatch(line); m != nil {
			if pending != nil && collectingWrong {
				if w := strings.TrimSpace(m[2]); w != "" {
					pending.WrongAnswers = append(pending.WrongAnswers, w)
				}
			}
			continue
		}

		// Unexpected line. Before the correct answer arrives this breaks
		// the question/answer pattern and voids the pair; afterwards it
		// only ends distractor collection.
		if pending != nil && pending.Answer == "" {
			pending = nil
		}
		collectingWrong = false
	}

	commit()
	return pairs
}

func parseTrueFalse(lines []string) []QuestionAnswerPair {
	var pairs []QuestionAnswerPair
	var pending *QuestionAnswerPair

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := numberedRe.FindStringSubmatch(line); m != nil {
			pending = &QuestionAnswerPair{Question: strings.TrimSpace(m[1])}
			continue
		}

		if m := tfAnswerRe.FindStringSubmatch(line); m != nil {
			if pending != nil && pending.Question != "" && len(pairs) < MaxPairsPerChunk {
				answer := strings.ToUpper(m[1])
				pairs = append(pairs, QuestionAnswerPair{
					Question:     pending.Question,
					Answer:       answer,
					WrongAnswers: []string{NegateTrueFalse(answer)},
				})
			}
			pending = nil
			continue
		}

		pending = nil
	}

	return pairs
}

func parseShortAnswer(lines []string) []QuestionAnswerPair {
	var pairs []QuestionAnswerPair
	var pending *QuestionAnswerPair

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := numberedRe.FindStringSubmatch(line); m != nil {
			question := strings.TrimSpace(m[1])
			if strings.HasSuffix(question, "?") {
				pending = &QuestionAnswerPair{Question: question}
			} else {
				pending = nil
			}
			continue
		}

		if m := saAnswerRe.FindStringSubmatch(line); m != nil {
			// Only consume the answer when one is still expected; a
			// stray second answer line must not attach anywhere.
			if pending != nil && pending.Answer == "" {
				answer := strings.TrimSpace(m[1])
				if answer != "" && len(pairs) < MaxPairsPerChunk {
					pairs = append(pairs, QuestionAnswerPair{
						Question: pending.Question,
						Answer:   answer,
					})
				}
			}
			pending = nil
			continue
		}

		pending = nil
	}

	return pairs
}

// ParseWrongAnswers extracts lettered distractor lines from a top-up
// transcript.
func ParseWrongAnswers(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := wrongRe.FindStringSubmatch(line); m != nil {
			if w := strings.TrimSpace(m[2]); w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

// NegateTrueFalse returns the logical negation of an IGAZ/HAMIS answer.
func NegateTrueFalse(answer string) string {
	if strings.EqualFold(strings.TrimSpace(answer), "IGAZ") {
		return "HAMIS"
	}
	return "IGAZ"
}

// parseEvaluation extracts the verdict and rationale from a grading
// transcript. ok is false when no verdict line is present.
func parseEvaluation(raw string) (accepted bool, rationale string, ok bool) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := evalRe.FindStringSubmatch(line); m != nil {
			accepted = strings.EqualFold(m[1], "elfogadva")
			ok = true
			continue
		}
		if m := rationaleRe.FindStringSubmatch(line); m != nil {
			rationale = strings.TrimSpace(m[1])
		}
	}
	return accepted, rationale, ok
}
