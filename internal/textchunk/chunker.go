// Package textchunk splits long study text into overlapping, size-bounded
// segments along paragraph and sentence boundaries.
package textchunk

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultOverlap is the number of characters carried over from the end of
// one chunk into the next, preserving context for facts that straddle a
// chunk boundary.
const DefaultOverlap = 200

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`([.!?])\s+`)
)

// Chunker splits text into ordered chunks of at most maxChunkSize
// characters (plus the overlap tail).
type Chunker struct {
	Overlap int
}

// New returns a Chunker with the default overlap.
func New() *Chunker {
	return &Chunker{Overlap: DefaultOverlap}
}

// Split divides text into ordered chunks. Paragraphs are accumulated
// greedily until the next one would exceed maxChunkSize; each closed
// chunk seeds the next with a whitespace-aligned overlap tail. A single
// paragraph larger than maxChunkSize falls back to sentence splitting.
// Empty and whitespace-only paragraphs are skipped.
func (c *Chunker) Split(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		current.Reset()
		if chunk == "" {
			return
		}
		chunks = append(chunks, chunk)
		current.WriteString(c.overlapTail(chunk))
	}

	appendPart := func(part string) {
		if current.Len() > 0 && current.Len()+len(part)+2 > maxChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(part)
	}

	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > maxChunkSize {
			// Degenerate case: one giant paragraph. Close whatever is
			// pending and fall back to sentence boundaries, without the
			// overlap requirement.
			if current.Len() > 0 {
				flush()
				current.Reset()
			}
			chunks = append(chunks, splitSentences(para, maxChunkSize)...)
			continue
		}

		appendPart(para)
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		// Drop a trailing fragment that is nothing but the overlap seed.
		if len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], tail) {
			chunks = append(chunks, tail)
		}
	}

	return chunks
}

// overlapTail returns the last Overlap characters of chunk, trimmed
// forward to the next whitespace boundary so a word is never split.
func (c *Chunker) overlapTail(chunk string) string {
	if c.Overlap <= 0 || len(chunk) <= c.Overlap {
		return ""
	}

	tail := chunk[len(chunk)-c.Overlap:]

	// Advance past the partial word at the start of the tail.
	if !unicode.IsSpace(rune(chunk[len(chunk)-c.Overlap-1])) {
		if idx := strings.IndexFunc(tail, unicode.IsSpace); idx >= 0 {
			tail = tail[idx:]
		} else {
			return ""
		}
	}

	return strings.TrimSpace(tail)
}

// splitSentences greedily accumulates sentences into chunks of at most
// maxChunkSize characters. Pathological sentences longer than the limit
// are hard-cut.
func splitSentences(para string, maxChunkSize int) []string {
	sentences := splitKeepingTerminator(para)

	var chunks []string
	var current strings.Builder

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		for len(s) > maxChunkSize {
			chunks = append(chunks, s[:maxChunkSize])
			s = s[maxChunkSize:]
		}

		if current.Len() > 0 && current.Len()+len(s)+1 > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(s)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitKeepingTerminator splits on sentence-ending punctuation followed
// by whitespace, keeping the punctuation with the sentence.
func splitKeepingTerminator(text string) []string {
	indexes := sentenceRe.FindAllStringSubmatchIndex(text, -1)

	var out []string
	start := 0
	for _, m := range indexes {
		// m[3] is the end of the captured terminator.
		out = append(out, text[start:m[3]])
		start = m[1]
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}
