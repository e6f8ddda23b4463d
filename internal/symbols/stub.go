//go:build !cgo

// This stub is used when CGO is not available.
package symbols

import (
	"context"
)

// Extractor extracts symbols from source files using tree-sitter.
// This is a stub implementation when CGO is not available.
type Extractor struct{}

// NewExtractor creates a new symbol extractor.
// Returns nil when CGO is not available.
func NewExtractor() *Extractor {
	return nil
}

// Extract extracts symbols from source bytes.
// Returns empty when CGO is not available.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]Symbol, error) {
	return nil, nil
}

// ExtractSource extracts symbols from source bytes for a known language.
// Returns empty when CGO is not available.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte, lang Language) ([]Symbol, error) {
	return nil, nil
}

// IsAvailable returns whether symbol extraction is available.
func IsAvailable() bool {
	return false
}
