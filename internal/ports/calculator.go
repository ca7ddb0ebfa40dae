package ports

import (
	"context"

	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
)

// VerseComparator defines the interface for comparing a recognized utterance against a reference verse.
type VerseComparator interface {
	Compare(ctx context.Context, recognized, verse string) (domain.Result, error)
}

// Scorer computes a bounded [0,1] similarity between two words.
type Scorer interface {
	Similarity(a, b string) float64
}
