package docimport

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vkiss/memoriter/internal/llm"
	"github.com/vkiss/memoriter/internal/textchunk"
)

func newPipeline(mock *llm.MockProvider) *Pipeline {
	cfg := DefaultConfig()
	cfg.BatchCooldown = 0
	gw := llm.NewGateway(mock, llm.DefaultGatewayConfig())
	return NewPipeline(gw, textchunk.New(), cfg, zap.NewNop())
}

func TestClean_EmptyInput(t *testing.T) {
	p := newPipeline(llm.NewMockProvider())
	assert.Equal(t, "", p.Clean(context.Background(), "   \n\n  "))
}

func TestClean_TrivialTextSkipsBackend(t *testing.T) {
	mock := llm.NewMockProvider()
	p := newPipeline(mock)

	out := p.Clean(context.Background(), "ez egy egyszerű bekezdés minden extra nélkül.")
	assert.NotEmpty(t, out)
	assert.Equal(t, 0, mock.CallCount())
}

func TestClean_ShortComplexTextOneCall(t *testing.T) {
	cleaned := strings.Repeat("Megtisztított matematikai szöveg $x^2$ képlettel. ", 10)
	mock := llm.NewMockProvider(llm.MockResponse{Text: cleaned})
	p := newPipeline(mock)

	raw := strings.Repeat("A másodfokú egyenlet $ x^2 + 1 $ alakú. ", 12)
	out := p.Clean(context.Background(), raw)

	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, strings.TrimSpace(cleaned), out)
}

func TestClean_BackendFailureFallsBackPerChunk(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	p := newPipeline(mock)

	raw := "Az egyenlet $ a+b $ formájú és hosszabb magyarázat követi."
	out := p.Clean(context.Background(), raw)
	// Fallback output survives the failed model call.
	assert.NotEmpty(t, out)
}

func TestClean_TooShortResultFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	p := newPipeline(mock)

	raw := strings.Repeat("Hosszú képletes szöveg $ x $ jelöléssel tele. ", 30)
	out := p.Clean(context.Background(), raw)

	assert.Equal(t, 1, mock.CallCount())
	// The two-character reply is rejected; output comes from the fallback
	// and so keeps the bulk of the original text.
	assert.Greater(t, len(out), 200)
}

func TestClean_LongDocumentConcatenatesChunksInOrder(t *testing.T) {
	// No complex content anywhere, so every chunk takes the fallback path
	// and no canned responses are needed.
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("egyszerű bekezdés sok ismételt szóval a teszthez itt.\n\n")
	}
	raw := b.String()
	require.Greater(t, len(raw), DefaultConfig().SingleChunkThreshold)

	mock := llm.NewMockProvider()
	p := newPipeline(mock)

	out := p.Clean(context.Background(), raw)
	assert.NotEmpty(t, out)
	assert.Equal(t, 0, mock.CallCount())
	assert.Contains(t, out, "egyszerű bekezdés")
}

func TestMinAcceptableLength(t *testing.T) {
	assert.Equal(t, 20, minAcceptableLength(100))
	assert.Equal(t, 200, minAcceptableLength(5000))
}

func TestContainsComplexContent(t *testing.T) {
	assert.True(t, containsComplexContent(`az egyenlet $x^2$ alakú`))
	assert.True(t, containsComplexContent(`képlet: \(a+b\)`))
	assert.True(t, containsComplexContent("összetapadtSzavak a szövegben"))
	assert.False(t, containsComplexContent("teljesen sima magyar mondat."))
}

func TestFormatFallback(t *testing.T) {
	raw := "Bevezetés\n\nEz egy szövegOCR hibával és 3szor ismételve.\n\n- 12 -\n\nÍrj nekünk: info@example.com vagy https://example.com/oldal címen.\n\n\n\nVége."

	out := FormatFallback(raw)

	assert.Contains(t, out, "## Bevezetés")
	assert.Contains(t, out, "szöveg OCR")
	assert.Contains(t, out, "3 szor")
	assert.NotContains(t, out, "- 12 -")
	assert.NotContains(t, out, "info@example.com")
	assert.NotContains(t, out, "https://example.com")
	assert.NotContains(t, out, "\n\n\n")
}

func TestFormatFallback_LongLineNotPromotedToHeading(t *testing.T) {
	line := "Bevezetés a témába, amely egy nagyon hosszú mondat és semmiképp sem címsor, mert túl sok szöveget tartalmaz."
	out := FormatFallback(line)
	assert.NotContains(t, out, "##")
}

func TestPostProcess_TrimsLatexPadding(t *testing.T) {
	assert.Equal(t, "az egyenlet $x^2+1$ alakú", postProcess("az egyenlet $ x^2+1 $ alakú"))
	assert.Equal(t, "kész", postProcess("kész   \n\n\n\n"))
}
