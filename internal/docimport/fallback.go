package docimport

import (
	"regexp"
	"strings"
)

// The fallback formatter is fully deterministic and needs no network.
// Every chunk the model cannot clean goes through here instead, so the
// pipeline always yields usable output.

var (
	pageNumberRe = regexp.MustCompile(`(?m)^\s*(?:-\s*)?\d{1,4}(?:\s*-)?\s*$`)
	pageLabelRe  = regexp.MustCompile(`(?mi)^\s*(?:page|oldal)\s*\d+(?:\s*/\s*\d+)?\s*\.?\s*$`)
	emailRe      = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.]+`)
	urlRe        = regexp.MustCompile(`(?:https?://|www\.)\S+`)

	// OCR merge boundaries: "wordWord" and "word2Word" style joins.
	lowerUpperRe  = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	letterDigitRe = regexp.MustCompile(`(\p{L})(\d)`)
	digitLetterRe = regexp.MustCompile(`(\d)(\p{L})`)

	spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Heading keywords promoted to Markdown headings, Hungarian and English.
var headingWords = []string{
	"bevezetés", "összefoglalás", "tartalomjegyzék", "fejezet", "definíció", "tétel",
	"introduction", "summary", "contents", "chapter", "definition", "theorem",
}

// FormatFallback normalizes raw extracted text without any model call.
func FormatFallback(text string) string {
	text = pageNumberRe.ReplaceAllString(text, "")
	text = pageLabelRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")

	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = promoteHeading(strings.TrimRight(line, " \t"))
	}
	text = strings.Join(lines, "\n")

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// promoteHeading turns a short line starting with a known heading keyword
// into a Markdown heading. Lines that already look like headings or are
// too long to be one are left alone.
func promoteHeading(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || len(trimmed) > 60 {
		return line
	}

	lower := strings.ToLower(trimmed)
	for _, w := range headingWords {
		if strings.HasPrefix(lower, w) {
			return "## " + trimmed
		}
	}
	return line
}
