package quizgen

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/llm"
	"github.com/vkiss/memoriter/internal/store"
)

// Service drives chunk → gateway → parser → persisted question graphs.
type Service struct {
	store   *store.Store
	gateway *llm.Gateway
	log     *zap.Logger
}

// NewService creates a generation service.
func NewService(st *store.Store, gw *llm.Gateway, log *zap.Logger) *Service {
	return &Service{store: st, gateway: gw, log: log}
}

// Generate produces questions of the requested type from every chunk of
// the note and persists them in one transaction. It returns false when
// nothing usable was generated: the note has no chunks, or every chunk
// came back empty after parsing. One chunk's backend failure never
// blocks the others.
func (s *Service) Generate(ctx context.Context, ownerID string, noteID uint, qt store.QuestionType) (bool, error) {
	if !qt.Valid() {
		return false, fmt.Errorf("unknown question type: %q", qt)
	}

	note, err := s.store.NoteByID(ctx, ownerID, noteID)
	if err != nil {
		return false, err
	}

	chunks, err := s.store.ChunksByNote(ctx, note.ID)
	if err != nil {
		return false, err
	}
	if len(chunks) == 0 {
		// A note must be chunked before generation is possible.
		return false, nil
	}

	var questions []store.Question
	for _, chunk := range chunks {
		pairs := s.generateFromChunk(ctx, chunk, qt)
		for _, pair := range pairs {
			questions = append(questions, s.buildQuestion(note, pair, qt, ownerID))
		}
	}

	if len(questions) == 0 {
		return false, nil
	}

	if err := s.store.InsertQuestions(ctx, questions); err != nil {
		return false, fmt.Errorf("persist generated questions: %w", err)
	}

	s.log.Info("questions generated",
		zap.Uint("note_id", note.ID),
		zap.String("type", string(qt)),
		zap.Int("count", len(questions)))

	return true, nil
}

// generateFromChunk runs one chunk through the gateway and parser,
// topping up multiple-choice distractors when needed. Failures are
// local: a backend error skips the chunk, an unusable candidate is
// dropped.
func (s *Service) generateFromChunk(ctx context.Context, chunk store.NoteChunk, qt store.QuestionType) []QuestionAnswerPair {
	raw, err := s.gateway.Run(ctx, llm.TaskQuestionGen, questionSystemPrompt, questionPrompt(qt, chunk.Content))
	if err != nil {
		s.log.Warn("chunk generation failed, skipping",
			zap.Uint("chunk_id", chunk.ID), zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	pairs := Parse(raw, qt)
	if qt != store.QuestionTypeMultipleChoice {
		return pairs
	}

	var usable []QuestionAnswerPair
	for _, pair := range pairs {
		if len(pair.WrongAnswers) < DesiredWrongAnswers {
			pair.WrongAnswers = s.topUpWrongAnswers(ctx, pair)
		}
		if len(pair.WrongAnswers) < MinWrongAnswers {
			s.log.Debug("discarding candidate with too few distractors",
				zap.String("question", pair.Question))
			continue
		}
		usable = append(usable, pair)
	}
	return usable
}

// topUpWrongAnswers asks the backend for distractors when the original
// transcript supplied too few.
func (s *Service) topUpWrongAnswers(ctx context.Context, pair QuestionAnswerPair) []string {
	raw, err := s.gateway.Run(ctx, llm.TaskWrongAnswers, questionSystemPrompt,
		wrongAnswersPrompt(pair.Question, pair.Answer))
	if err != nil {
		s.log.Warn("wrong-answer generation failed",
			zap.String("question", pair.Question), zap.Error(err))
		return pair.WrongAnswers
	}

	merged := pair.WrongAnswers
	for _, w := range ParseWrongAnswers(raw) {
		if len(merged) >= DesiredWrongAnswers {
			break
		}
		if w != pair.Answer && !slices.Contains(merged, w) {
			merged = append(merged, w)
		}
	}
	return merged
}

// buildQuestion assembles the persistable question graph for one pair.
func (s *Service) buildQuestion(note *store.Note, pair QuestionAnswerPair, qt store.QuestionType, ownerID string) store.Question {
	noteID := note.ID

	answers := []store.Answer{{
		Text:      pair.Answer,
		IsCorrect: true,
	}}
	if qt == store.QuestionTypeShortAnswer {
		// The generated answer doubles as the grading reference.
		answers[0].SampleAnswer = pair.Answer
	}
	for _, w := range pair.WrongAnswers {
		answers = append(answers, store.Answer{Text: w, IsCorrect: false})
	}

	return store.Question{
		Text:         pair.Question,
		Type:         qt,
		TopicID:      note.TopicID,
		SourceNoteID: &noteID,
		OwnerID:      ownerID,
		IsActive:     true,
		Answers:      answers,
	}
}
