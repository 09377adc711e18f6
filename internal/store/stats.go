package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// StatsForQuestions returns the owner's statistics for the given question
// ids, keyed by question id. Questions never asked have no entry.
func (s *Store) StatsForQuestions(ctx context.Context, ownerID string, questionIDs []uint) (map[uint]QuestionStatistic, error) {
	out := make(map[uint]QuestionStatistic, len(questionIDs))
	if len(questionIDs) == 0 {
		return out, nil
	}
	var stats []QuestionStatistic
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND question_id IN ?", ownerID, questionIDs).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	for _, st := range stats {
		out[st.QuestionID] = st
	}
	return out, nil
}

// RecordAnswerStat updates the owner's statistic for a question, creating
// it lazily on the first answer.
func (s *Store) RecordAnswerStat(ctx context.Context, ownerID string, questionID uint, correct bool, now time.Time) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		var st QuestionStatistic
		err := tx.Where("owner_id = ? AND question_id = ?", ownerID, questionID).First(&st).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			st = QuestionStatistic{OwnerID: ownerID, QuestionID: questionID}
		} else if err != nil {
			return err
		}

		st.TimesAsked++
		if correct {
			st.TimesCorrect++
		} else {
			st.TimesIncorrect++
		}
		st.LastAsked = now

		return tx.Save(&st).Error
	})
}

// CountPracticedQuestions returns how many of the owner's active questions
// in a topic have at least one recorded correct answer. Feeds the mastery
// percentage.
func (s *Store) CountPracticedQuestions(ctx context.Context, ownerID string, topicID uint) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&QuestionStatistic{}).
		Joins("JOIN questions ON questions.id = question_statistics.question_id").
		Where("question_statistics.owner_id = ? AND question_statistics.times_correct > 0", ownerID).
		Where("questions.topic_id = ? AND questions.is_active = ?", topicID, true).
		Count(&n).Error
	return int(n), err
}
