package quiz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/store"
	"github.com/vkiss/memoriter/internal/streak"
)

// Session is an assembled quiz. Delivered may be below Requested when the
// topics cannot supply enough distinct questions; callers report the
// actual count instead of padding with duplicates.
type Session struct {
	Questions []store.Question
	Requested int
	StartedAt time.Time
}

// Delivered returns the number of questions actually in the session.
func (s *Session) Delivered() int {
	return len(s.Questions)
}

// Duration returns the elapsed session time.
func (s *Session) Duration(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// Service assembles quiz sessions and records their outcomes.
type Service struct {
	store    *store.Store
	selector *Selector
	tracker  *streak.Tracker
	log      *zap.Logger
}

// NewService creates a quiz service.
func NewService(st *store.Store, sel *Selector, tr *streak.Tracker, log *zap.Logger) *Service {
	return &Service{store: st, selector: sel, tracker: tr, log: log}
}

// BuildSession assembles a quiz of up to count questions drawn across the
// given topics. The count splits equally across topics with the remainder
// going to the first ones; shortfalls backfill from topics with surplus
// availability in a second pass. The combined set is shuffled and
// truncated to the requested count.
func (s *Service) BuildSession(ctx context.Context, ownerID string, topicIDs []uint, count int, qt *store.QuestionType, now time.Time) (*Session, error) {
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}
	if len(topicIDs) == 0 {
		return nil, fmt.Errorf("at least one topic is required")
	}

	for _, id := range topicIDs {
		if _, err := s.store.TopicByID(ctx, ownerID, id); err != nil {
			return nil, err
		}
	}

	share := count / len(topicIDs)
	remainder := count % len(topicIDs)

	var combined []store.Question
	seen := make(map[uint]bool)

	for i, topicID := range topicIDs {
		want := share
		if i < remainder {
			want++
		}

		picked, err := s.selector.Select(ctx, ownerID, topicID, want, qt, seen)
		if err != nil {
			return nil, fmt.Errorf("select from topic %d: %w", topicID, err)
		}
		for _, q := range picked {
			seen[q.ID] = true
			combined = append(combined, q)
		}
	}

	// Second pass: make up the shortfall from whichever topics still
	// have unseen questions.
	for _, topicID := range topicIDs {
		missing := count - len(combined)
		if missing <= 0 {
			break
		}
		extra, err := s.selector.Select(ctx, ownerID, topicID, missing, qt, seen)
		if err != nil {
			return nil, fmt.Errorf("backfill from topic %d: %w", topicID, err)
		}
		for _, q := range extra {
			seen[q.ID] = true
			combined = append(combined, q)
		}
	}

	s.selector.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	if len(combined) > count {
		combined = combined[:count]
	}

	if len(combined) < count {
		s.log.Info("quiz smaller than requested",
			zap.Int("requested", count),
			zap.Int("delivered", len(combined)))
	}

	return &Session{Questions: combined, Requested: count, StartedAt: now}, nil
}

// RecordResult books one answered question: the per-question statistic
// and, when the topic is actively tracked, the daily goal progress.
func (s *Service) RecordResult(ctx context.Context, ownerID string, questionID uint, correct bool, now time.Time) error {
	q, err := s.store.QuestionByID(ctx, ownerID, questionID)
	if err != nil {
		return err
	}

	if err := s.store.RecordAnswerStat(ctx, ownerID, q.ID, correct, now); err != nil {
		return fmt.Errorf("record statistic: %w", err)
	}

	if err := s.tracker.RecordAnswer(ctx, ownerID, q.TopicID, correct, now); err != nil {
		return fmt.Errorf("record daily progress: %w", err)
	}

	return nil
}
