// Package extract pulls raw text out of study documents.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound means the document path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedFormat means no extractor handles the file type.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Extractor converts one document file into raw text.
type Extractor interface {
	// Extract returns the document's text, or ErrNotFound /
	// ErrUnsupportedFormat.
	Extract(path string) (string, error)
	// Supports reports whether the extractor handles the file extension.
	Supports(ext string) bool
}

// PlainText reads .txt and .md files as-is.
type PlainText struct{}

// Supports reports whether ext is a plain-text extension.
func (PlainText) Supports(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

// Extract reads the whole file. Content that is not valid UTF-8 is
// rejected as unsupported rather than imported as mojibake.
func (p PlainText) Extract(path string) (string, error) {
	if !p.Supports(filepath.Ext(path)) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrUnsupportedFormat)
	}
	return string(data), nil
}
