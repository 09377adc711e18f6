package quizgen

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/llm"
	"github.com/vkiss/memoriter/internal/store"
)

type fixture struct {
	store   *store.Store
	ownerID string
	topicID uint
	noteID  uint
}

func newFixture(t *testing.T, chunks []string) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ownerID := uuid.NewString()

	subject := store.Subject{OwnerID: ownerID, Title: "Biológia"}
	require.NoError(t, st.CreateSubject(ctx, &subject))

	topic := store.Topic{Title: "Fotoszintézis", SubjectID: subject.ID}
	require.NoError(t, st.CreateTopic(ctx, ownerID, &topic))

	note := store.Note{
		Title:   "Jegyzet",
		Content: "A fotoszintézis a kloroplasztiszban zajlik.",
		TopicID: topic.ID,
		OwnerID: ownerID,
	}
	require.NoError(t, st.CreateNote(ctx, &note, chunks))

	return &fixture{store: st, ownerID: ownerID, topicID: topic.ID, noteID: note.ID}
}

func newService(st *store.Store, mock *llm.MockProvider) *Service {
	gw := llm.NewGateway(mock, llm.DefaultGatewayConfig())
	return NewService(st, gw, zap.NewNop())
}

func TestGenerate_NoChunksFailsSoft(t *testing.T) {
	f := newFixture(t, nil)
	svc := newService(f.store, llm.NewMockProvider())

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeMultipleChoice)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerate_UnknownNoteIsNotFound(t *testing.T) {
	f := newFixture(t, []string{"tartalom"})
	svc := newService(f.store, llm.NewMockProvider())

	_, err := svc.Generate(context.Background(), f.ownerID, 9999, store.QuestionTypeTrueFalse)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerate_OtherUsersNoteIsNotFound(t *testing.T) {
	f := newFixture(t, []string{"tartalom"})
	svc := newService(f.store, llm.NewMockProvider())

	_, err := svc.Generate(context.Background(), uuid.NewString(), f.noteID, store.QuestionTypeTrueFalse)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerate_MultipleChoicePersistsFullGraphs(t *testing.T) {
	f := newFixture(t, []string{"első darab", "második darab"})
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: wellFormedMC},
		llm.MockResponse{Text: ""}, // second chunk yields nothing
	)
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeMultipleChoice)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, mock.CallCount())

	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for _, q := range questions {
		require.NotNil(t, q.SourceNoteID)
		assert.Equal(t, f.noteID, *q.SourceNoteID)

		correct := 0
		wrong := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			} else {
				wrong++
			}
		}
		assert.Equal(t, 1, correct, "question %q", q.Text)
		assert.GreaterOrEqual(t, wrong, 2, "question %q", q.Text)
	}
}

func TestGenerate_TrueFalseSynthesizesNegation(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(llm.MockResponse{Text: "1. A Nap egy csillag.\nVálasz: IGAZ"})
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeTrueFalse)
	require.NoError(t, err)
	assert.True(t, ok)
	// Negation is local; no second backend call for the wrong answer.
	assert.Equal(t, 1, mock.CallCount())

	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 2)

	var correctText, wrongText string
	for _, a := range questions[0].Answers {
		if a.IsCorrect {
			correctText = a.Text
		} else {
			wrongText = a.Text
		}
	}
	assert.Equal(t, "IGAZ", correctText)
	assert.Equal(t, "HAMIS", wrongText)
}

func TestGenerate_ShortAnswerStoresSampleAnswer(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(llm.MockResponse{Text: "1. Mikor volt a mohácsi csata?\nVálasz: 1526-ban"})
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeShortAnswer)
	require.NoError(t, err)
	assert.True(t, ok)

	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 1)

	a := questions[0].Answers[0]
	assert.True(t, a.IsCorrect)
	assert.Equal(t, "1526-ban", a.Text)
	assert.Equal(t, "1526-ban", a.SampleAnswer)
}

func TestGenerate_WrongAnswerTopUp(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	// The transcript carries only two distractors; the service asks for
	// more to fill the candidate up to three.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "1. Melyik bolygó a legnagyobb?\nHelyes válasz: A Jupiter\nA) A Mars\nB) A Föld"},
		llm.MockResponse{Text: "A) A Vénusz\nB) A Szaturnusz"},
	)
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeMultipleChoice)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, mock.CallCount())

	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Len(t, questions[0].Answers, 4) // 1 correct + 3 distractors
}

func TestGenerate_TopUpFailureKeepsPairWithEnoughDistractors(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "1. Melyik bolygó a legnagyobb?\nHelyes válasz: A Jupiter\nA) A Mars\nB) A Föld"},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeMultipleChoice)
	require.NoError(t, err)
	assert.True(t, ok)

	// Two inline distractors already satisfy the floor.
	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Len(t, questions[0].Answers, 3)
}

func TestGenerate_BackendFailureOnOneChunkDoesNotBlockOthers(t *testing.T) {
	f := newFixture(t, []string{"első", "második"})
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Text: "1. A Nap egy csillag.\nVálasz: IGAZ"},
	)
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeTrueFalse)
	require.NoError(t, err)
	assert.True(t, ok)

	questions, err := f.store.ActiveQuestionsByTopic(context.Background(), f.ownerID, f.topicID, nil)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerate_SafetyBlockedChunkYieldsNothing(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(llm.MockResponse{Text: "", StopReason: llm.StopSafety})
	svc := newService(f.store, mock)

	ok, err := svc.Generate(context.Background(), f.ownerID, f.noteID, store.QuestionTypeTrueFalse)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateShortAnswer(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Értékelés: ELFOGADVA\nIndoklás: Tartalmilag egyezik."},
	)
	svc := newService(f.store, mock)

	eval, err := svc.EvaluateShortAnswer(context.Background(), "Mikor volt a mohácsi csata?", "1526-ban", "1526")
	require.NoError(t, err)
	assert.True(t, eval.Accepted)
	assert.Equal(t, "Tartalmilag egyezik.", eval.Rationale)
}

func TestEvaluateShortAnswer_EmptyTranscriptRejects(t *testing.T) {
	f := newFixture(t, []string{"darab"})
	mock := llm.NewMockProvider(llm.MockResponse{Text: ""})
	svc := newService(f.store, mock)

	eval, err := svc.EvaluateShortAnswer(context.Background(), "Kérdés?", "minta", "válasz")
	require.NoError(t, err)
	assert.False(t, eval.Accepted)
}
