package store

import (
	"context"

	"gorm.io/gorm"
)

// CreateSubject inserts a subject for the owner.
func (s *Store) CreateSubject(ctx context.Context, sub *Subject) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

// SubjectByID returns the owner's subject or ErrNotFound.
func (s *Store) SubjectByID(ctx context.Context, ownerID string, id uint) (*Subject, error) {
	var sub Subject
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&sub).Error
	if err != nil {
		return nil, asStoreError(err)
	}
	return &sub, nil
}

// ListSubjects returns all subjects for the owner, ordered by title.
func (s *Store) ListSubjects(ctx context.Context, ownerID string) ([]Subject, error) {
	var subs []Subject
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("title").
		Find(&subs).Error
	return subs, err
}

// SubjectTitleTaken reports whether the owner already has a subject with
// the given title.
func (s *Store) SubjectTitleTaken(ctx context.Context, ownerID, title string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Subject{}).
		Where("owner_id = ? AND title = ?", ownerID, title).
		Count(&n).Error
	return n > 0, err
}

// DeleteSubject removes the owner's subject and everything beneath it,
// including the owner's activation, progress and statistic rows for the
// subject's topics.
func (s *Store) DeleteSubject(ctx context.Context, ownerID string, id uint) error {
	if _, err := s.SubjectByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&Topic{}).
			Where("subject_id = ?", id).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		if err := sweepTopicRecords(tx, ownerID, topicIDs); err != nil {
			return err
		}
		return tx.Delete(&Subject{}, id).Error
	})
}

// CreateTopic inserts a topic after verifying the parent subject belongs
// to the owner.
func (s *Store) CreateTopic(ctx context.Context, ownerID string, topic *Topic) error {
	if _, err := s.SubjectByID(ctx, ownerID, topic.SubjectID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(topic).Error
}

// TopicByID returns the topic if its parent subject belongs to the owner.
func (s *Store) TopicByID(ctx context.Context, ownerID string, id uint) (*Topic, error) {
	var topic Topic
	err := s.db.WithContext(ctx).
		Joins("JOIN subjects ON subjects.id = topics.subject_id").
		Where("subjects.owner_id = ? AND topics.id = ?", ownerID, id).
		First(&topic).Error
	if err != nil {
		return nil, asStoreError(err)
	}
	return &topic, nil
}

// ListTopics returns the owner's topics under one subject.
func (s *Store) ListTopics(ctx context.Context, ownerID string, subjectID uint) ([]Topic, error) {
	if _, err := s.SubjectByID(ctx, ownerID, subjectID); err != nil {
		return nil, err
	}
	var topics []Topic
	err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("title").
		Find(&topics).Error
	return topics, err
}

// DeleteTopic removes the owner's topic and everything beneath it,
// including the owner's activation, progress and statistic rows.
func (s *Store) DeleteTopic(ctx context.Context, ownerID string, id uint) error {
	if _, err := s.TopicByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := sweepTopicRecords(tx, ownerID, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&Topic{}, id).Error
	})
}

// sweepTopicRecords removes the per-user rows tied to the given topics.
// ActiveTopic and DailyProgress carry no foreign key to topics (they are
// per-user state, not content), so the content cascade cannot reach
// them. Statistics hang off questions and are matched through the
// topics' question set before the cascade deletes it.
func sweepTopicRecords(tx *gorm.DB, ownerID string, topicIDs []uint) error {
	if len(topicIDs) == 0 {
		return nil
	}
	if err := tx.Where("owner_id = ? AND topic_id IN ?", ownerID, topicIDs).
		Delete(&ActiveTopic{}).Error; err != nil {
		return err
	}
	if err := tx.Where("owner_id = ? AND topic_id IN ?", ownerID, topicIDs).
		Delete(&DailyProgress{}).Error; err != nil {
		return err
	}

	var questionIDs []uint
	if err := tx.Model(&Question{}).
		Where("topic_id IN ?", topicIDs).
		Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return nil
	}
	return tx.Where("owner_id = ? AND question_id IN ?", ownerID, questionIDs).
		Delete(&QuestionStatistic{}).Error
}
