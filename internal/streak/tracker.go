// Package streak implements daily practice goals, streak counting and
// topic mastery.
package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/store"
)

// Tracker maintains per-topic activation state, daily goals and streaks.
type Tracker struct {
	store *store.Store
	log   *zap.Logger
}

// NewTracker creates a streak tracker.
func NewTracker(st *store.Store, log *zap.Logger) *Tracker {
	return &Tracker{store: st, log: log}
}

// Activate turns daily-goal tracking on for a topic. Re-activation resets
// the current streak and the last-practiced marker but keeps the longest
// streak as history.
func (t *Tracker) Activate(ctx context.Context, ownerID string, topicID uint, goalQuestions int, now time.Time) error {
	if goalQuestions <= 0 {
		return fmt.Errorf("daily goal must be positive, got %d", goalQuestions)
	}
	if _, err := t.store.TopicByID(ctx, ownerID, topicID); err != nil {
		return err
	}

	at, err := t.store.ActiveTopicFor(ctx, ownerID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		at = &store.ActiveTopic{OwnerID: ownerID, TopicID: topicID}
	} else if err != nil {
		return err
	}

	at.DailyGoalQuestions = goalQuestions
	at.ActivatedAt = now
	at.LastPracticedAt = nil
	at.CurrentStreak = 0
	at.IsActive = true

	return t.store.SaveActiveTopic(ctx, at)
}

// Deactivate turns tracking off, preserving all historical counters.
func (t *Tracker) Deactivate(ctx context.Context, ownerID string, topicID uint) error {
	at, err := t.store.ActiveTopicFor(ctx, ownerID, topicID)
	if err != nil {
		return err
	}
	at.IsActive = false
	return t.store.SaveActiveTopic(ctx, at)
}

// RecordAnswer advances today's progress for an active topic. Correct
// answers count toward the goal; the goal transition is edge-triggered,
// so once a day's goal is reached further answers leave the streak alone.
// An inactive or never-activated topic is a no-op.
func (t *Tracker) RecordAnswer(ctx context.Context, ownerID string, topicID uint, correct bool, now time.Time) error {
	at, err := t.store.ActiveTopicFor(ctx, ownerID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !at.IsActive {
		return nil
	}

	today := store.DayKey(now)
	dp, err := t.store.ProgressFor(ctx, ownerID, topicID, today)
	if err != nil {
		return err
	}
	if dp == nil {
		// Snapshot the goal so later goal changes don't rewrite history.
		dp = &store.DailyProgress{
			OwnerID:       ownerID,
			TopicID:       topicID,
			Day:           today,
			GoalQuestions: at.DailyGoalQuestions,
		}
	}

	if correct {
		dp.QuestionsAnswered++
	}

	goalJustReached := !dp.GoalReached && dp.QuestionsAnswered >= dp.GoalQuestions
	if goalJustReached {
		dp.GoalReached = true
	}

	if err := t.store.SaveProgress(ctx, dp); err != nil {
		return err
	}

	at.LastPracticedAt = &now
	if goalJustReached {
		t.advanceStreak(ctx, at, now)
	}

	return t.store.SaveActiveTopic(ctx, at)
}

// advanceStreak runs exactly once per day, at the moment the goal flips
// to reached. Yesterday's reached goal extends the streak; anything else
// starts a new one at day one.
func (t *Tracker) advanceStreak(ctx context.Context, at *store.ActiveTopic, now time.Time) {
	yesterday := store.DayKey(now.AddDate(0, 0, -1))

	prev, err := t.store.ProgressFor(ctx, at.OwnerID, at.TopicID, yesterday)
	if err != nil {
		t.log.Warn("streak lookup failed, starting new streak",
			zap.Uint("topic_id", at.TopicID), zap.Error(err))
		prev = nil
	}

	if prev != nil && prev.GoalReached {
		at.CurrentStreak++
	} else {
		at.CurrentStreak = 1
	}
	if at.CurrentStreak > at.LongestStreak {
		at.LongestStreak = at.CurrentStreak
	}
}

// CheckStreaksOnLogin reconciles lapsed streaks across skipped days. For
// every active topic with a nonzero streak, the streak resets to 0 unless
// the most recent goal-reached day is today or yesterday.
func (t *Tracker) CheckStreaksOnLogin(ctx context.Context, ownerID string, now time.Time) error {
	topics, err := t.store.ListActiveTopics(ctx, ownerID)
	if err != nil {
		return err
	}

	today := store.DayKey(now)
	yesterday := store.DayKey(now.AddDate(0, 0, -1))

	for i := range topics {
		at := &topics[i]
		if at.CurrentStreak == 0 {
			continue
		}

		latest, err := t.store.LatestGoalReachedDay(ctx, ownerID, at.TopicID)
		if err != nil {
			return err
		}
		if latest == today || latest == yesterday {
			continue
		}

		at.CurrentStreak = 0
		if err := t.store.SaveActiveTopic(ctx, at); err != nil {
			return err
		}
		t.log.Info("streak lapsed",
			zap.Uint("topic_id", at.TopicID),
			zap.String("last_goal_day", latest))
	}

	return nil
}

// Mastery returns the percentage of a topic's active questions answered
// correctly at least once, or 0 when the topic has no active questions.
func (t *Tracker) Mastery(ctx context.Context, ownerID string, topicID uint) (float64, error) {
	total, err := t.store.CountActiveQuestions(ctx, ownerID, topicID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	practiced, err := t.store.CountPracticedQuestions(ctx, ownerID, topicID)
	if err != nil {
		return 0, err
	}

	return float64(practiced) / float64(total) * 100, nil
}
