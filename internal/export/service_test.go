package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkiss/memoriter/internal/store"
	"github.com/vkiss/memoriter/internal/textchunk"
)

type fixture struct {
	store   *store.Store
	service *Service
	ownerID string
	topicID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ownerID := uuid.NewString()

	subject := store.Subject{OwnerID: ownerID, Title: "Fizika"}
	require.NoError(t, st.CreateSubject(ctx, &subject))

	topic := store.Topic{Title: "Mechanika", SubjectID: subject.ID}
	require.NoError(t, st.CreateTopic(ctx, ownerID, &topic))

	return &fixture{
		store:   st,
		service: NewService(st, textchunk.New(), 2000),
		ownerID: ownerID,
		topicID: topic.ID,
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note := store.Note{
		Title:   "Newton törvényei",
		Content: "Az első törvény a tehetetlenség törvénye.",
		TopicID: f.topicID,
		OwnerID: f.ownerID,
	}
	require.NoError(t, f.store.CreateNote(ctx, &note, []string{note.Content}))

	noteID := note.ID
	questions := []store.Question{
		{
			Text: "Mi az első törvény neve?", Type: store.QuestionTypeShortAnswer,
			TopicID: f.topicID, SourceNoteID: &noteID, OwnerID: f.ownerID, IsActive: true,
			Answers: []store.Answer{{Text: "A tehetetlenség törvénye", IsCorrect: true, SampleAnswer: "A tehetetlenség törvénye"}},
		},
		{
			Text: "Newton három törvényt fogalmazott meg.", Type: store.QuestionTypeTrueFalse,
			TopicID: f.topicID, SourceNoteID: &noteID, OwnerID: f.ownerID, IsActive: true,
			Answers: []store.Answer{
				{Text: "IGAZ", IsCorrect: true},
				{Text: "HAMIS", IsCorrect: false},
			},
		},
	}
	require.NoError(t, f.store.InsertQuestions(ctx, questions))

	data, err := f.service.Export(ctx, f.ownerID, note.ID)
	require.NoError(t, err)

	var file File
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, "Newton törvényei", file.Title)
	require.Len(t, file.Questions, 2)

	// Import into a different user's topic.
	otherOwner := uuid.NewString()
	subject := store.Subject{OwnerID: otherOwner, Title: "Fizika"}
	require.NoError(t, f.store.CreateSubject(ctx, &subject))
	topic := store.Topic{Title: "Mechanika", SubjectID: subject.ID}
	require.NoError(t, f.store.CreateTopic(ctx, otherOwner, &topic))

	imported, err := f.service.Import(ctx, otherOwner, topic.ID, data)
	require.NoError(t, err)
	assert.Equal(t, note.Title, imported.Title)
	assert.Equal(t, note.Content, imported.Content)

	chunks, err := f.store.ChunksByNote(ctx, imported.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)

	copied, err := f.store.QuestionsByNote(ctx, otherOwner, imported.ID)
	require.NoError(t, err)
	require.Len(t, copied, 2)
	for _, q := range copied {
		if q.Type == store.QuestionTypeShortAnswer {
			require.Len(t, q.Answers, 1)
			assert.Equal(t, "A tehetetlenség törvénye", q.Answers[0].SampleAnswer)
		}
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Import(context.Background(), f.ownerID, f.topicID, []byte("{nem json"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestImport_SchemaViolations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]string{
		"missing title":    `{"Content": "szöveg"}`,
		"empty title":      `{"Title": "", "Content": "szöveg"}`,
		"bad type":         `{"Title": "Cím", "Content": "szöveg", "Questions": [{"Text": "K?", "QuestionType": "essay", "Answers": [{"Text": "V", "IsCorrect": true}]}]}`,
		"no answers":       `{"Title": "Cím", "Content": "szöveg", "Questions": [{"Text": "K?", "QuestionType": "true_false", "Answers": []}]}`,
		"not an object":    `[1, 2, 3]`,
		"wrong value type": `{"Title": 42, "Content": "szöveg"}`,
	}

	for name, raw := range cases {
		_, err := f.service.Import(ctx, f.ownerID, f.topicID, []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidFormat, name)
	}
}

func TestImport_UnknownTopic(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Import(context.Background(), f.ownerID, 9999, []byte(`{"Title": "Cím", "Content": "szöveg"}`))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImport_NoQuestionsIsFine(t *testing.T) {
	f := newFixture(t)
	note, err := f.service.Import(context.Background(), f.ownerID, f.topicID, []byte(`{"Title": "Csak jegyzet", "Content": "tartalom"}`))
	require.NoError(t, err)
	assert.NotZero(t, note.ID)
}

func TestExport_UnknownNote(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Export(context.Background(), f.ownerID, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
