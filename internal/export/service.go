package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vkiss/memoriter/internal/store"
	"github.com/vkiss/memoriter/internal/textchunk"
)

// Service converts notes to and from the share format.
type Service struct {
	store   *store.Store
	chunker *textchunk.Chunker
	// chunkSize bounds the chunks cut from imported note content.
	chunkSize int
}

// NewService creates an export service.
func NewService(st *store.Store, chunker *textchunk.Chunker, chunkSize int) *Service {
	return &Service{store: st, chunker: chunker, chunkSize: chunkSize}
}

// Export serializes one note and its derived questions.
func (s *Service) Export(ctx context.Context, ownerID string, noteID uint) ([]byte, error) {
	note, err := s.store.NoteByID(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.QuestionsByNote(ctx, ownerID, noteID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	file := File{Title: note.Title, Content: note.Content}
	for _, q := range questions {
		eq := Question{Text: q.Text, QuestionType: string(q.Type)}
		for _, a := range q.Answers {
			eq.Answers = append(eq.Answers, Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		file.Questions = append(file.Questions, eq)
	}

	return json.MarshalIndent(file, "", "  ")
}

// Import validates a share file and recreates its note and questions
// under the importing user and the given topic. The note content is
// re-chunked so question generation works immediately on the copy.
func (s *Service) Import(ctx context.Context, ownerID string, topicID uint, data []byte) (*store.Note, error) {
	if _, err := s.store.TopicByID(ctx, ownerID, topicID); err != nil {
		return nil, err
	}

	file, err := parseAndValidate(data)
	if err != nil {
		return nil, err
	}

	note := &store.Note{
		Title:   file.Title,
		Content: file.Content,
		TopicID: topicID,
		OwnerID: ownerID,
	}
	chunks := s.chunker.Split(file.Content, s.chunkSize)
	if err := s.store.CreateNote(ctx, note, chunks); err != nil {
		return nil, fmt.Errorf("create imported note: %w", err)
	}

	if len(file.Questions) == 0 {
		return note, nil
	}

	noteID := note.ID
	questions := make([]store.Question, 0, len(file.Questions))
	for _, fq := range file.Questions {
		q := store.Question{
			Text:         fq.Text,
			Type:         store.QuestionType(fq.QuestionType),
			TopicID:      topicID,
			SourceNoteID: &noteID,
			OwnerID:      ownerID,
			IsActive:     true,
		}
		for _, fa := range fq.Answers {
			a := store.Answer{Text: fa.Text, IsCorrect: fa.IsCorrect}
			if q.Type == store.QuestionTypeShortAnswer && fa.IsCorrect {
				a.SampleAnswer = fa.Text
			}
			q.Answers = append(q.Answers, a)
		}
		questions = append(questions, q)
	}

	if err := s.store.InsertQuestions(ctx, questions); err != nil {
		return nil, fmt.Errorf("create imported questions: %w", err)
	}

	return note, nil
}

// parseAndValidate decodes data against the share-format schema. Any
// syntactic or structural problem maps to ErrInvalidFormat.
func parseAndValidate(data []byte) (*File, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := fileSchema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &file, nil
}
