package textchunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := New()
	chunks := c.Split("Egy rövid bekezdés.", 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Egy rövid bekezdés.", chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	c := New()
	assert.Nil(t, c.Split("", 1000))
	assert.Nil(t, c.Split("   \n\n \t ", 1000))
}

func TestSplit_SkipsBlankParagraphs(t *testing.T) {
	c := New()
	chunks := c.Split("Első.\n\n   \n\nMásodik.", 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Első.\n\nMásodik.", chunks[0])
}

func TestSplit_RespectsSizeBound(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "Bekezdés %d tartalma, néhány mondattal a teszteléshez. Ez itt kitöltő szöveg.\n\n", i)
	}

	c := New()
	maxSize := 500
	chunks := c.Split(b.String(), maxSize)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), maxSize+c.Overlap+2, "chunk %d too large", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplit_PreservesParagraphSequence(t *testing.T) {
	paragraphs := make([]string, 12)
	for i := range paragraphs {
		paragraphs[i] = fmt.Sprintf("PARA%02d tartalma ami elég hosszú hogy a darabolás működjön rendesen.", i)
	}

	c := New()
	chunks := c.Split(strings.Join(paragraphs, "\n\n"), 200)

	// Every paragraph marker must appear, in order, across the chunks.
	joined := strings.Join(chunks, "\n")
	last := -1
	for _, p := range paragraphs {
		idx := strings.Index(joined, p[:6])
		require.GreaterOrEqual(t, idx, 0, "paragraph %s missing", p[:6])
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestSplit_OverlapNeverSplitsWords(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "szóhatár%02d ellenőrzése miatt minden bekezdés csupa hosszú szóból áll.\n\n", i)
	}

	c := New()
	chunks := c.Split(b.String(), 300)
	require.Greater(t, len(chunks), 1)

	// Each continuation chunk begins with a full word from the previous
	// chunk's tail, never a fragment.
	for i := 1; i < len(chunks); i++ {
		firstWord := strings.Fields(chunks[i])[0]
		assert.Contains(t, strings.Fields(chunks[i-1]), firstWord, "chunk %d starts mid-word", i)
	}
}

func TestSplit_GiantParagraphFallsBackToSentences(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "Ez a(z) %d. mondat a hatalmas bekezdésben. ", i)
	}
	giant := strings.TrimSpace(b.String())
	require.Greater(t, len(giant), 500)

	c := New()
	chunks := c.Split(giant, 500)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 500, "chunk %d exceeds bound", i)
	}

	// No sentence lost.
	joined := strings.Join(chunks, " ")
	for i := 0; i < 50; i++ {
		assert.Contains(t, joined, fmt.Sprintf("a(z) %d. mondat", i))
	}
}

func TestSplit_SevenThousandCharNote(t *testing.T) {
	// Short uniform paragraphs pack tightly, so ~7000 chars at
	// chunkSize 2000 with overlap-seeded continuations lands on
	// 3 full chunks plus a remainder.
	para := strings.TrimSpace(strings.Repeat("abcdefg ", 5))
	var b strings.Builder
	for b.Len() < 7000 {
		b.WriteString(para)
		b.WriteString("\n\n")
	}

	c := New()
	chunks := c.Split(b.String(), 2000)

	assert.Equal(t, 4, len(chunks))
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 2000+c.Overlap, "chunk %d too large", i)
	}
}
