package quizgen

import (
	"fmt"
	"strings"

	"github.com/vkiss/memoriter/internal/store"
)

// The prompts below pin the exact output format the parser expects.
// Changing any instructed line shape here requires changing the matching
// pattern in parser.go in the same commit; parser_test.go feeds canned
// transcripts through both halves of the contract.

const questionSystemPrompt = `Te egy tanulást segítő asszisztens vagy. A megadott tananyag alapján készítesz gyakorló kérdéseket magyar nyelven. Pontosan követed a kért formátumot, semmilyen más szöveget nem írsz.`

const multipleChoicePromptFormat = `Készíts legfeljebb %d feleletválasztós kérdést az alábbi tananyagból.

Formátum minden kérdéshez, pontosan így:
1. <kérdés szövege>?
Helyes válasz: <helyes válasz>
A) <rossz válasz>
B) <rossz válasz>
C) <rossz válasz>

A kérdések a tananyag tényein alapuljanak. Minden kérdéshez legalább két rossz válasz tartozzon.

Tananyag:
%s`

const trueFalsePromptFormat = `Készíts legfeljebb %d igaz-hamis állítást az alábbi tananyagból.

Formátum minden állításhoz, pontosan így:
1. <állítás szövege>
Válasz: IGAZ
vagy
Válasz: HAMIS

Tananyag:
%s`

const shortAnswerPromptFormat = `Készíts legfeljebb %d rövid válaszos kérdést az alábbi tananyagból.

Formátum minden kérdéshez, pontosan így:
1. <kérdés szövege>?
Válasz: <rövid mintaválasz>

Minden kérdés kérdőjellel végződjön.

Tananyag:
%s`

const wrongAnswersPromptFormat = `Adott egy kérdés és a helyes válasz. Írj 3 hihető, de helytelen választ.

Formátum, pontosan így:
A) <rossz válasz>
B) <rossz válasz>
C) <rossz válasz>

Kérdés: %s
Helyes válasz: %s`

const evaluateSystemPrompt = `Te egy vizsgáztató vagy. A tanuló válaszát a mintaválaszhoz méred: a jelentés számít, nem a szó szerinti egyezés. Pontosan követed a kért formátumot.`

const evaluatePromptFormat = `Döntsd el, hogy a tanuló válasza tartalmilag helyes-e.

Formátum, pontosan így:
Értékelés: ELFOGADVA
vagy
Értékelés: ELUTASÍTVA
Indoklás: <egy mondatos indoklás>

Kérdés: %s
Mintaválasz: %s
A tanuló válasza: %s`

// questionPrompt builds the generation prompt for one chunk.
func questionPrompt(qt store.QuestionType, chunkText string) string {
	switch qt {
	case store.QuestionTypeTrueFalse:
		return fmt.Sprintf(trueFalsePromptFormat, MaxPairsPerChunk, chunkText)
	case store.QuestionTypeShortAnswer:
		return fmt.Sprintf(shortAnswerPromptFormat, MaxPairsPerChunk, chunkText)
	default:
		return fmt.Sprintf(multipleChoicePromptFormat, MaxPairsPerChunk, chunkText)
	}
}

// wrongAnswersPrompt builds the distractor top-up prompt for one pair.
func wrongAnswersPrompt(question, answer string) string {
	return fmt.Sprintf(wrongAnswersPromptFormat, question, answer)
}

// evaluatePrompt builds the short-answer grading prompt.
func evaluatePrompt(question, sample, userAnswer string) string {
	return fmt.Sprintf(evaluatePromptFormat,
		strings.TrimSpace(question),
		strings.TrimSpace(sample),
		strings.TrimSpace(userAnswer))
}
