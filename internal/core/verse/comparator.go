package verse

import (
	"context"

	"github.com/baditaflorin/go_verse_similarity/internal/core/alignment"
	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/internal/ports"
)

// Comparator runs normalization, tokenization, alignment and aggregation for
// one recognized utterance against one reference verse.
type Comparator struct {
	aligner    *alignment.Aligner
	normalizer ports.Normalizer
	tokenizer  ports.Tokenizer
	logger     ports.Logger
}

// NewComparator creates a new verse comparator.
func NewComparator(aligner *alignment.Aligner, normalizer ports.Normalizer, tokenizer ports.Tokenizer, logger ports.Logger) *Comparator {
	return &Comparator{
		aligner:    aligner,
		normalizer: normalizer,
		tokenizer:  tokenizer,
		logger:     logger,
	}
}

// Compare aligns the words of recognized against the words of verse. It only
// fails when ctx is already done; empty strings produce a zero-word result.
func (c *Comparator) Compare(ctx context.Context, recognized, verse string) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		c.logger.Error("Comparison cancelled", "error", err)
		return domain.Result{}, err
	}

	normalizedRecognized := c.normalizer.Normalize(recognized)
	normalizedVerse := c.normalizer.Normalize(verse)
	c.logger.Debug("Normalized texts",
		"normalizedRecognized", normalizedRecognized,
		"normalizedVerse", normalizedVerse,
	)

	candidateWords := c.tokenizer.Tokenize(normalizedRecognized)
	verseWords := c.tokenizer.Tokenize(normalizedVerse)

	aligned := c.aligner.Align(verseWords, candidateWords)
	total := len(verseWords)
	result := domain.Result{
		MatchPercentage: Aggregate(aligned.Matched, aligned.Mismatched, total),
		WordComparisons: aligned.Records,
		TotalWords:      total,
		MatchedWords:    aligned.Matched,
		MismatchedWords: aligned.Mismatched,
	}

	c.logger.Debug("Computed verse comparison",
		"total_words", result.TotalWords,
		"matched_words", result.MatchedWords,
		"mismatched_words", result.MismatchedWords,
		"leftover_words", len(result.WordComparisons)-total,
		"match_percentage", result.MatchPercentage,
	)
	return result, nil
}

// Aggregate returns matched/totalWords as a percentage rounded to two
// decimals, or 0 when there are no reference words. The mismatched count
// does not affect the value.
func Aggregate(matched, _, totalWords int) float64 {
	if totalWords <= 0 {
		return 0
	}
	return alignment.Round(float64(matched)/float64(totalWords)*100, 2)
}
