// Package versesimilarity compares a recognized recitation of an Arabic verse
// against the canonical verse text and reports a word-level alignment with a
// match percentage.
//
// Both texts are stripped of diacritics and split on whitespace. Each verse
// word is then paired with the most similar recognized word found within a
// small window around its position; a pair counts as a match when its
// similarity reaches the threshold (0.75 by default). Recognized words that
// no match selected are reported after the verse words.
//
// CompareWithDefaults uses the default threshold and window with logging
// disabled. For custom settings use the verse package directly.
package versesimilarity

import (
	"context"

	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/pkg/verse"
)

// Result is the outcome of a verse comparison.
type Result = domain.Result

// WordComparison is a single entry of Result.WordComparisons.
type WordComparison = domain.WordComparison

// CompareWithDefaults compares recognized against verseText with the default
// threshold and window. Empty strings yield a zero-word result.
func CompareWithDefaults(recognized, verseText string) Result {
	vs, err := verse.New(verse.WithNopLogger())
	if err != nil {
		// The default configuration is always valid.
		panic(err)
	}
	// Compare only fails on a cancelled context.
	res, _ := vs.Compare(context.Background(), recognized, verseText)
	return res
}
