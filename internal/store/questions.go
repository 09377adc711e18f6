package store

import (
	"context"

	"gorm.io/gorm"
)

// InsertQuestions persists a batch of question graphs (question + answers)
// in a single transaction. Any failure rolls back the whole batch so a
// half-formed question/answer graph is never visible.
func (s *Store) InsertQuestions(ctx context.Context, questions []Question) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		for i := range questions {
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// QuestionByID returns the owner's question with answers preloaded.
func (s *Store) QuestionByID(ctx context.Context, ownerID string, id uint) (*Question, error) {
	var q Question
	err := s.db.WithContext(ctx).
		Preload("Answers").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&q).Error
	if err != nil {
		return nil, asStoreError(err)
	}
	return &q, nil
}

// ActiveQuestionsByTopic returns the owner's active questions in a topic,
// optionally filtered by type, with answers preloaded.
func (s *Store) ActiveQuestionsByTopic(ctx context.Context, ownerID string, topicID uint, qt *QuestionType) ([]Question, error) {
	q := s.db.WithContext(ctx).
		Preload("Answers").
		Where("owner_id = ? AND topic_id = ? AND is_active = ?", ownerID, topicID, true)
	if qt != nil {
		q = q.Where("type = ?", *qt)
	}
	var questions []Question
	err := q.Find(&questions).Error
	return questions, err
}

// CountActiveQuestions returns the number of active questions the owner
// has in a topic.
func (s *Store) CountActiveQuestions(ctx context.Context, ownerID string, topicID uint) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Question{}).
		Where("owner_id = ? AND topic_id = ? AND is_active = ?", ownerID, topicID, true).
		Count(&n).Error
	return int(n), err
}

// QuestionsByNote returns the owner's questions derived from one note,
// with answers preloaded. Used by export.
func (s *Store) QuestionsByNote(ctx context.Context, ownerID string, noteID uint) ([]Question, error) {
	var questions []Question
	err := s.db.WithContext(ctx).
		Preload("Answers").
		Where("owner_id = ? AND source_note_id = ?", ownerID, noteID).
		Find(&questions).Error
	return questions, err
}

// SetQuestionActive flips the active flag on the owner's question.
func (s *Store) SetQuestionActive(ctx context.Context, ownerID string, id uint, active bool) error {
	res := s.db.WithContext(ctx).Model(&Question{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
