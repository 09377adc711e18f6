package docimport

import "regexp"

var (
	mathDelimRe = regexp.MustCompile(`\$|\\\(|\\\[`)
	ocrMergeRe  = regexp.MustCompile(`\p{Ll}\p{Lu}`)
)

// containsComplexContent reports whether a chunk is worth sending to the
// model at all. Math notation and OCR-merged words need a model to fix;
// plain prose does fine with the regex formatter alone.
func containsComplexContent(text string) bool {
	return mathDelimRe.MatchString(text) || ocrMergeRe.MatchString(text)
}
