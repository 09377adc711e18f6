package docimport

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/vkiss/memoriter/internal/llm"
	"github.com/vkiss/memoriter/internal/textchunk"
)

// Config bounds the pipeline's backend load.
type Config struct {
	// SingleChunkThreshold is the text length under which no chunking
	// happens and the whole document is cleaned in one call.
	SingleChunkThreshold int           `mapstructure:"single_chunk_threshold"`
	ChunkSize            int           `mapstructure:"chunk_size"`
	BatchSize            int           `mapstructure:"batch_size"`
	BatchCooldown        time.Duration `mapstructure:"batch_cooldown"`
}

// DefaultConfig returns the standard import limits.
func DefaultConfig() Config {
	return Config{
		SingleChunkThreshold: 3000,
		ChunkSize:            2000,
		BatchSize:            4,
		BatchCooldown:        500 * time.Millisecond,
	}
}

// Pipeline cleans raw extracted document text into structured Markdown.
// It degrades per chunk: when the model is unavailable or returns junk,
// the deterministic regex formatter takes over for that chunk only.
type Pipeline struct {
	gateway *llm.Gateway
	chunker *textchunk.Chunker
	config  Config
	log     *zap.Logger
}

// NewPipeline creates an import pipeline.
func NewPipeline(gw *llm.Gateway, chunker *textchunk.Chunker, cfg Config, log *zap.Logger) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.SingleChunkThreshold <= 0 {
		cfg.SingleChunkThreshold = DefaultConfig().SingleChunkThreshold
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	return &Pipeline{gateway: gw, chunker: chunker, config: cfg, log: log}
}

// Clean converts raw document text into cleaned Markdown. It never fails:
// the regex fallback guarantees some usable output for every chunk.
func (p *Pipeline) Clean(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if len(raw) <= p.config.SingleChunkThreshold {
		return p.cleanChunk(ctx, raw)
	}

	chunks := p.chunker.Split(raw, p.config.ChunkSize)
	results := make([]string, len(chunks))

	sem := semaphore.NewWeighted(int64(p.config.BatchSize))
	var wg sync.WaitGroup

	for start := 0; start < len(chunks); start += p.config.BatchSize {
		end := start + p.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		for i := start; i < end; i++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Context gone; finish the rest on the fallback path.
				results[i] = FormatFallback(chunks[i])
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer sem.Release(1)
				results[i] = p.cleanChunk(ctx, chunks[i])
			}(i)
		}
		wg.Wait()

		if end < len(chunks) && p.config.BatchCooldown > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.config.BatchCooldown):
			}
		}
	}

	var nonEmpty []string
	for _, r := range results {
		if r != "" {
			nonEmpty = append(nonEmpty, r)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// cleanChunk cleans one chunk, preferring the model only when the text
// actually needs it and falling back on any failure or junk result.
func (p *Pipeline) cleanChunk(ctx context.Context, chunk string) string {
	if p.gateway == nil || !containsComplexContent(chunk) {
		return postProcess(FormatFallback(chunk))
	}

	cleaned, err := p.gateway.Run(ctx, llm.TaskCleanup, cleanupSystemPrompt, cleanupPrompt(chunk))
	if err != nil {
		p.log.Warn("ai cleanup failed, using fallback formatter", zap.Error(err))
		return postProcess(FormatFallback(chunk))
	}

	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) < minAcceptableLength(len(chunk)) {
		p.log.Debug("ai cleanup result too short, using fallback formatter",
			zap.Int("got", len(cleaned)), zap.Int("original", len(chunk)))
		return postProcess(FormatFallback(chunk))
	}

	return postProcess(cleaned)
}

// minAcceptableLength is the shortest cleanup result still considered a
// real cleaning rather than a degenerate reply.
func minAcceptableLength(originalLen int) int {
	if originalLen/5 < 200 {
		return originalLen / 5
	}
	return 200
}

var trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)

// postProcess normalizes whitespace and trims padding inside LaTeX
// delimiters on the final per-chunk output.
func postProcess(text string) string {
	text = trimLatexPadding(text)
	text = trailingSpaceRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// trimLatexPadding removes the whitespace the model tends to leave just
// inside $...$ delimiters. Odd-indexed segments of a $-split are inside
// math mode; an unbalanced trailing delimiter is left untouched.
func trimLatexPadding(text string) string {
	parts := strings.Split(text, "$")
	if len(parts) < 3 {
		return text
	}
	for i := 1; i+1 < len(parts); i += 2 {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "$")
}
