package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkiss/memoriter/internal/store"
)

const wellFormedMC = `1. Mi a fotoszintézis helyszíne a növényi sejtben?
Helyes válasz: A kloroplasztisz
A) A mitokondrium
B) A sejtmag
C) A riboszóma

2. Melyik gáz keletkezik a fotoszintézis során?
Helyes válasz: Oxigén
A) Szén-dioxid
B) Nitrogén
C) Hidrogén

3. Mi a fotoszintézis fő energiaforrása?
Helyes válasz: A napfény
A) A talaj
B) A víz
C) A hő
`

func TestParse_MultipleChoice_WellFormed(t *testing.T) {
	pairs := Parse(wellFormedMC, store.QuestionTypeMultipleChoice)
	require.Len(t, pairs, 3)

	for i, p := range pairs {
		assert.NotEmpty(t, p.Question, "pair %d question", i)
		assert.NotEmpty(t, p.Answer, "pair %d answer", i)
		assert.GreaterOrEqual(t, len(p.WrongAnswers), 2, "pair %d wrong answers", i)
	}

	assert.Equal(t, "Mi a fotoszintézis helyszíne a növényi sejtben?", pairs[0].Question)
	assert.Equal(t, "A kloroplasztisz", pairs[0].Answer)
	assert.Equal(t, []string{"A mitokondrium", "A sejtmag", "A riboszóma"}, pairs[0].WrongAnswers)
}

func TestParse_MultipleChoice_MissingCorrectAnswerDropsBlock(t *testing.T) {
	raw := `1. Mi a fotoszintézis helyszíne?
Helyes válasz: A kloroplasztisz
A) A mitokondrium
B) A sejtmag

2. Melyik gáz keletkezik?
A) Szén-dioxid
B) Nitrogén

3. Mi a fő energiaforrás?
Helyes válasz: A napfény
A) A talaj
B) A víz
`
	pairs := Parse(raw, store.QuestionTypeMultipleChoice)
	require.Len(t, pairs, 2)
	assert.Equal(t, "A kloroplasztisz", pairs[0].Answer)
	assert.Equal(t, "A napfény", pairs[1].Answer)
}

func TestParse_MultipleChoice_TooFewDistractorsDiscarded(t *testing.T) {
	raw := `1. Melyik bolygó a legnagyobb?
Helyes válasz: A Jupiter
A) A Mars
`
	pairs := Parse(raw, store.QuestionTypeMultipleChoice)
	assert.Empty(t, pairs)
}

func TestParse_MultipleChoice_MalformedLineInvalidatesPendingPair(t *testing.T) {
	raw := `1. Mi a víz képlete?
ez a sor nem követi a formátumot
Helyes válasz: H2O
A) CO2
B) O2
`
	pairs := Parse(raw, store.QuestionTypeMultipleChoice)
	// The broken line between question and answer voids the pair; the
	// parser never guesses across a broken pattern.
	assert.Empty(t, pairs)
}

func TestParse_MultipleChoice_CapsAtThree(t *testing.T) {
	raw := wellFormedMC + `
4. Negyedik kérdés szövege?
Helyes válasz: Negyedik válasz
A) Rossz egy
B) Rossz kettő
`
	pairs := Parse(raw, store.QuestionTypeMultipleChoice)
	assert.Len(t, pairs, MaxPairsPerChunk)
}

func TestParse_TrueFalse(t *testing.T) {
	raw := `1. A Nap egy csillag.
Válasz: IGAZ

2. A Hold saját fénnyel világít.
Válasz: HAMIS
`
	pairs := Parse(raw, store.QuestionTypeTrueFalse)
	require.Len(t, pairs, 2)

	assert.Equal(t, "IGAZ", pairs[0].Answer)
	assert.Equal(t, []string{"HAMIS"}, pairs[0].WrongAnswers)

	assert.Equal(t, "HAMIS", pairs[1].Answer)
	assert.Equal(t, []string{"IGAZ"}, pairs[1].WrongAnswers)
}

func TestParse_TrueFalse_CaseInsensitive(t *testing.T) {
	raw := `1. A víz 100 fokon forr tengerszinten.
válasz: igaz
`
	pairs := Parse(raw, store.QuestionTypeTrueFalse)
	require.Len(t, pairs, 1)
	assert.Equal(t, "IGAZ", pairs[0].Answer)
	assert.Equal(t, []string{"HAMIS"}, pairs[0].WrongAnswers)
}

func TestParse_TrueFalse_InvalidAnswerDropsPair(t *testing.T) {
	raw := `1. A Föld lapos.
Válasz: TALÁN
`
	pairs := Parse(raw, store.QuestionTypeTrueFalse)
	assert.Empty(t, pairs)
}

func TestParse_ShortAnswer(t *testing.T) {
	raw := `1. Mikor volt a mohácsi csata?
Válasz: 1526-ban

2. Ki volt Magyarország első királya?
Válasz: Szent István
`
	pairs := Parse(raw, store.QuestionTypeShortAnswer)
	require.Len(t, pairs, 2)
	assert.Equal(t, "1526-ban", pairs[0].Answer)
	assert.Equal(t, "Szent István", pairs[1].Answer)
	assert.Empty(t, pairs[0].WrongAnswers)
}

func TestParse_ShortAnswer_QuestionMustEndWithQuestionMark(t *testing.T) {
	raw := `1. Ez egy kijelentés, nem kérdés.
Válasz: valami
`
	pairs := Parse(raw, store.QuestionTypeShortAnswer)
	assert.Empty(t, pairs)
}

func TestParse_ShortAnswer_DuplicateAnswerLineNotConsumed(t *testing.T) {
	raw := `1. Mikor volt a mohácsi csata?
Válasz: 1526-ban
Válasz: 1527-ben
`
	pairs := Parse(raw, store.QuestionTypeShortAnswer)
	require.Len(t, pairs, 1)
	assert.Equal(t, "1526-ban", pairs[0].Answer)
}

func TestParse_EmptyAndGarbageTranscripts(t *testing.T) {
	for _, qt := range []store.QuestionType{
		store.QuestionTypeMultipleChoice,
		store.QuestionTypeTrueFalse,
		store.QuestionTypeShortAnswer,
	} {
		assert.Empty(t, Parse("", qt))
		assert.Empty(t, Parse("teljesen strukturálatlan szöveg\nmég egy sor", qt))
	}
}

func TestParseWrongAnswers(t *testing.T) {
	raw := `A) A Mars
B) A Vénusz
C) A Szaturnusz
`
	wrongs := ParseWrongAnswers(raw)
	assert.Equal(t, []string{"A Mars", "A Vénusz", "A Szaturnusz"}, wrongs)
}

func TestNegateTrueFalse(t *testing.T) {
	assert.Equal(t, "HAMIS", NegateTrueFalse("IGAZ"))
	assert.Equal(t, "IGAZ", NegateTrueFalse("HAMIS"))
	assert.Equal(t, "HAMIS", NegateTrueFalse(" igaz "))
}

func TestParseEvaluation(t *testing.T) {
	accepted, rationale, ok := parseEvaluation("Értékelés: ELFOGADVA\nIndoklás: A válasz tartalmilag helyes.")
	require.True(t, ok)
	assert.True(t, accepted)
	assert.Equal(t, "A válasz tartalmilag helyes.", rationale)

	accepted, _, ok = parseEvaluation("Értékelés: ELUTASÍTVA")
	require.True(t, ok)
	assert.False(t, accepted)

	_, _, ok = parseEvaluation("nincs verdikt ebben a szövegben")
	assert.False(t, ok)
}
