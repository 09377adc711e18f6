// Package content manages the subject → topic → note hierarchy.
package content

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/docimport"
	"github.com/vkiss/memoriter/internal/extract"
	"github.com/vkiss/memoriter/internal/store"
	"github.com/vkiss/memoriter/internal/textchunk"
)

// ErrTitleTaken is returned when a subject title collides with an
// existing one of the same owner.
var ErrTitleTaken = fmt.Errorf("title already in use")

// Service implements content CRUD plus document import. Note content
// changes re-chunk the note and drop its derived questions, keeping the
// question pool consistent with what the user can actually read.
type Service struct {
	store     *store.Store
	chunker   *textchunk.Chunker
	chunkSize int
	extractor extract.Extractor
	pipeline  *docimport.Pipeline
	validate  *validator.Validate
	log       *zap.Logger
}

// NewService creates a content service.
func NewService(st *store.Store, chunker *textchunk.Chunker, chunkSize int, ex extract.Extractor, pipe *docimport.Pipeline, log *zap.Logger) *Service {
	return &Service{
		store:     st,
		chunker:   chunker,
		chunkSize: chunkSize,
		extractor: ex,
		pipeline:  pipe,
		validate:  validator.New(),
		log:       log,
	}
}

type subjectInput struct {
	Title string `validate:"required,max=100"`
}

type topicInput struct {
	Title string `validate:"required,max=100"`
}

type noteInput struct {
	Title   string `validate:"required,max=100"`
	Content string `validate:"required"`
}

// CreateSubject adds a subject. Titles are unique per owner.
func (s *Service) CreateSubject(ctx context.Context, ownerID, title string) (*store.Subject, error) {
	if err := s.validate.Struct(subjectInput{Title: title}); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}

	taken, err := s.store.SubjectTitleTaken(ctx, ownerID, title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", ErrTitleTaken, title)
	}

	sub := &store.Subject{OwnerID: ownerID, Title: title}
	if err := s.store.CreateSubject(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubjects returns the owner's subjects.
func (s *Service) ListSubjects(ctx context.Context, ownerID string) ([]store.Subject, error) {
	return s.store.ListSubjects(ctx, ownerID)
}

// DeleteSubject removes a subject and everything beneath it.
func (s *Service) DeleteSubject(ctx context.Context, ownerID string, id uint) error {
	return s.store.DeleteSubject(ctx, ownerID, id)
}

// CreateTopic adds a topic under the owner's subject.
func (s *Service) CreateTopic(ctx context.Context, ownerID string, subjectID uint, title string) (*store.Topic, error) {
	if err := s.validate.Struct(topicInput{Title: title}); err != nil {
		return nil, fmt.Errorf("invalid topic: %w", err)
	}

	topic := &store.Topic{Title: title, SubjectID: subjectID}
	if err := s.store.CreateTopic(ctx, ownerID, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// ListTopics returns the owner's topics under one subject.
func (s *Service) ListTopics(ctx context.Context, ownerID string, subjectID uint) ([]store.Topic, error) {
	return s.store.ListTopics(ctx, ownerID, subjectID)
}

// DeleteTopic removes a topic and everything beneath it.
func (s *Service) DeleteTopic(ctx context.Context, ownerID string, id uint) error {
	return s.store.DeleteTopic(ctx, ownerID, id)
}

// CreateNote stores a note and its chunks.
func (s *Service) CreateNote(ctx context.Context, ownerID string, topicID uint, title, content string) (*store.Note, error) {
	if err := s.validate.Struct(noteInput{Title: title, Content: content}); err != nil {
		return nil, fmt.Errorf("invalid note: %w", err)
	}
	if _, err := s.store.TopicByID(ctx, ownerID, topicID); err != nil {
		return nil, err
	}

	note := &store.Note{Title: title, Content: content, TopicID: topicID, OwnerID: ownerID}
	chunks := s.chunker.Split(content, s.chunkSize)
	if err := s.store.CreateNote(ctx, note, chunks); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns the owner's notes under one topic.
func (s *Service) ListNotes(ctx context.Context, ownerID string, topicID uint) ([]store.Note, error) {
	return s.store.ListNotes(ctx, ownerID, topicID)
}

// UpdateNoteContent replaces a note's content. Chunks are rebuilt and
// questions derived from the old content are dropped.
func (s *Service) UpdateNoteContent(ctx context.Context, ownerID string, id uint, content string) error {
	if content == "" {
		return fmt.Errorf("invalid note: content must not be empty")
	}
	chunks := s.chunker.Split(content, s.chunkSize)
	return s.store.UpdateNoteContent(ctx, ownerID, id, content, chunks)
}

// DeleteNote removes a note, its chunks and its derived questions.
func (s *Service) DeleteNote(ctx context.Context, ownerID string, id uint) error {
	return s.store.DeleteNote(ctx, ownerID, id)
}

// ImportDocument extracts a document, cleans it through the import
// pipeline and stores the result as a new note under the topic.
func (s *Service) ImportDocument(ctx context.Context, ownerID string, topicID uint, title, path string) (*store.Note, error) {
	raw, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	cleaned := s.pipeline.Clean(ctx, raw)
	if cleaned == "" {
		return nil, fmt.Errorf("document %s contains no usable text", path)
	}

	s.log.Info("document imported",
		zap.String("path", path),
		zap.Int("raw_len", len(raw)),
		zap.Int("cleaned_len", len(cleaned)))

	return s.CreateNote(ctx, ownerID, topicID, title, cleaned)
}
