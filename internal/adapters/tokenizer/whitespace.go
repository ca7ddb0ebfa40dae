package tokenizer

import (
	"strings"

	"github.com/baditaflorin/go_verse_similarity/internal/ports"
)

// WhitespaceTokenizer splits text on Unicode whitespace.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer creates a new whitespace tokenizer.
func NewWhitespaceTokenizer() ports.Tokenizer {
	return WhitespaceTokenizer{}
}

// Tokenize returns the non-empty whitespace-delimited words of text in order.
func (WhitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}
