package store

import "time"

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	}
	return false
}

// Subject is the top of the content hierarchy. Titles are unique per owner.
type Subject struct {
	ID        uint   `gorm:"primarykey"`
	OwnerID   string `gorm:"size:36;not null;uniqueIndex:idx_subject_owner_title"`
	Title     string `gorm:"size:100;not null;uniqueIndex:idx_subject_owner_title"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Topics []Topic `gorm:"constraint:OnDelete:CASCADE"`
}

// Topic groups notes and questions under a subject. Ownership is derived
// from the parent subject.
type Topic struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"size:100;not null"`
	SubjectID uint   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Notes     []Note     `gorm:"constraint:OnDelete:CASCADE"`
	Questions []Question `gorm:"constraint:OnDelete:CASCADE"`
}

// Note holds imported study text. Chunks and derived questions cascade
// away when the note is deleted or its content changes.
type Note struct {
	ID        uint   `gorm:"primarykey"`
	Title     string `gorm:"size:100;not null"`
	Content   string `gorm:"not null"`
	TopicID   uint   `gorm:"not null;index"`
	OwnerID   string `gorm:"size:36;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Chunks []NoteChunk `gorm:"constraint:OnDelete:CASCADE"`
}

// NoteChunk is an ephemeral slice of a note's content, regenerated on
// every content change. Position preserves document order.
type NoteChunk struct {
	ID       uint   `gorm:"primarykey"`
	Content  string `gorm:"not null"`
	Position int    `gorm:"not null"`
	NoteID   uint   `gorm:"not null;index"`
}

// Question is a generated quiz question. SourceNoteID is set when the
// question was derived from a note and cascades with it.
type Question struct {
	ID           uint         `gorm:"primarykey"`
	Text         string       `gorm:"not null"`
	Type         QuestionType `gorm:"size:20;not null;index"`
	TopicID      uint         `gorm:"not null;index"`
	SourceNoteID *uint        `gorm:"index"`
	OwnerID      string       `gorm:"size:36;not null;index"`
	IsActive     bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time

	SourceNote *Note    `gorm:"constraint:OnDelete:CASCADE"`
	Answers    []Answer `gorm:"constraint:OnDelete:CASCADE"`
}

// Answer belongs to a question. SampleAnswer carries the grading
// reference text for short-answer questions and is empty otherwise.
type Answer struct {
	ID           uint   `gorm:"primarykey"`
	Text         string `gorm:"not null"`
	IsCorrect    bool   `gorm:"not null"`
	SampleAnswer string
	QuestionID   uint `gorm:"not null;index"`
}

// QuestionStatistic tracks per-user answer history for one question.
// Created lazily on the first recorded answer.
type QuestionStatistic struct {
	ID             uint   `gorm:"primarykey"`
	OwnerID        string `gorm:"size:36;not null;uniqueIndex:idx_stat_owner_question"`
	QuestionID     uint   `gorm:"not null;uniqueIndex:idx_stat_owner_question"`
	TimesAsked     int    `gorm:"not null"`
	TimesCorrect   int    `gorm:"not null"`
	TimesIncorrect int    `gorm:"not null"`
	LastAsked      time.Time
}

// NeutralSuccessRate is the prior for questions that were never asked.
const NeutralSuccessRate = 0.5

// SuccessRate returns TimesCorrect/TimesAsked, or the neutral prior when
// the question was never asked.
func (s QuestionStatistic) SuccessRate() float64 {
	if s.TimesAsked == 0 {
		return NeutralSuccessRate
	}
	return float64(s.TimesCorrect) / float64(s.TimesAsked)
}

// ActiveTopic is a per-user topic activation record carrying the daily
// goal and streak counters. Unique per (owner, topic).
type ActiveTopic struct {
	ID                 uint   `gorm:"primarykey"`
	OwnerID            string `gorm:"size:36;not null;uniqueIndex:idx_active_owner_topic"`
	TopicID            uint   `gorm:"not null;uniqueIndex:idx_active_owner_topic"`
	DailyGoalQuestions int    `gorm:"not null"`
	ActivatedAt        time.Time
	LastPracticedAt    *time.Time
	CurrentStreak      int  `gorm:"not null"`
	LongestStreak      int  `gorm:"not null"`
	IsActive           bool `gorm:"not null;default:true"`
}

// DailyProgress records answered-question counts for one user, topic and
// calendar day. Day is a YYYY-MM-DD key. Unique per (owner, topic, day).
type DailyProgress struct {
	ID                uint   `gorm:"primarykey"`
	OwnerID           string `gorm:"size:36;not null;uniqueIndex:idx_progress_owner_topic_day"`
	TopicID           uint   `gorm:"not null;uniqueIndex:idx_progress_owner_topic_day"`
	Day               string `gorm:"size:10;not null;uniqueIndex:idx_progress_owner_topic_day"`
	QuestionsAnswered int    `gorm:"not null"`
	GoalQuestions     int    `gorm:"not null"`
	GoalReached       bool   `gorm:"not null"`
}

// DayKey formats t as the calendar-day key used by DailyProgress.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
