package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ActiveTopicFor returns the owner's activation record for a topic, or
// ErrNotFound if the topic was never activated.
func (s *Store) ActiveTopicFor(ctx context.Context, ownerID string, topicID uint) (*ActiveTopic, error) {
	var at ActiveTopic
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND topic_id = ?", ownerID, topicID).
		First(&at).Error
	if err != nil {
		return nil, asStoreError(err)
	}
	return &at, nil
}

// ListActiveTopics returns the owner's currently active topic records.
func (s *Store) ListActiveTopics(ctx context.Context, ownerID string) ([]ActiveTopic, error) {
	var ats []ActiveTopic
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Find(&ats).Error
	return ats, err
}

// SaveActiveTopic inserts or updates an activation record.
func (s *Store) SaveActiveTopic(ctx context.Context, at *ActiveTopic) error {
	return s.db.WithContext(ctx).Save(at).Error
}

// ProgressFor returns the owner's progress row for one topic and day, or
// nil when no answer was recorded that day.
func (s *Store) ProgressFor(ctx context.Context, ownerID string, topicID uint, day string) (*DailyProgress, error) {
	var dp DailyProgress
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND topic_id = ? AND day = ?", ownerID, topicID, day).
		First(&dp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dp, nil
}

// SaveProgress inserts or updates a daily progress row.
func (s *Store) SaveProgress(ctx context.Context, dp *DailyProgress) error {
	return s.db.WithContext(ctx).Save(dp).Error
}

// LatestGoalReachedDay returns the most recent day key on which the owner
// reached the goal for a topic, or "" if the goal was never reached.
func (s *Store) LatestGoalReachedDay(ctx context.Context, ownerID string, topicID uint) (string, error) {
	var dp DailyProgress
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND topic_id = ? AND goal_reached = ?", ownerID, topicID, true).
		Order("day DESC").
		First(&dp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dp.Day, nil
}
