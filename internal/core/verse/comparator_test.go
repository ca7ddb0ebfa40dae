package verse

import (
	"context"
	"errors"
	"testing"

	"github.com/baditaflorin/go_verse_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_verse_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_verse_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_verse_similarity/internal/core/alignment"
	"github.com/baditaflorin/go_verse_similarity/internal/core/similarity"
)

func newComparator(t *testing.T) *Comparator {
	t.Helper()
	aligner, err := alignment.NewAligner(alignment.DefaultConfig(), similarity.NewScorer())
	if err != nil {
		t.Fatal(err)
	}
	return NewComparator(aligner, normalizer.NewArabicNormalizer(), tokenizer.NewWhitespaceTokenizer(), logger.NewNopLogger())
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name                        string
		matched, mismatched, total int
		expected                    float64
	}{
		{"no words", 0, 0, 0, 0},
		{"all matched", 4, 0, 4, 100},
		{"none matched", 0, 3, 3, 0},
		{"one third", 1, 2, 3, 33.33},
		{"two thirds", 2, 1, 3, 66.67},
		{"one seventh", 1, 6, 7, 14.29},
		{"one thirty-second", 1, 31, 32, 3.12},
		{"five thirty-seconds", 5, 27, 32, 15.62},
		{"three thirty-seconds", 3, 29, 32, 9.38},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Aggregate(tc.matched, tc.mismatched, tc.total); got != tc.expected {
				t.Errorf("Aggregate(%d, %d, %d) = %v, want %v", tc.matched, tc.mismatched, tc.total, got, tc.expected)
			}
		})
	}
}

func TestCompareUsesVerseAsReference(t *testing.T) {
	c := newComparator(t)

	res, err := c.Compare(context.Background(), "بسم الله", "بِسْمِ اللَّهِ الرَّحْمَٰنِ")
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalWords != 3 {
		t.Errorf("TotalWords = %d, want 3", res.TotalWords)
	}
	if res.WordComparisons[0].Verse != "بسم" || res.WordComparisons[0].Recognized != "بسم" {
		t.Errorf("first record = %+v, want normalized verse and recognized words", res.WordComparisons[0])
	}
	if res.MatchedWords != 2 || res.MatchPercentage != 66.67 {
		t.Errorf("matched %d (%.2f%%), want 2 (66.67%%)", res.MatchedWords, res.MatchPercentage)
	}
}

func TestCompareEmptyStrings(t *testing.T) {
	c := newComparator(t)

	res, err := c.Compare(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalWords != 0 || res.MatchPercentage != 0 || len(res.WordComparisons) != 0 {
		t.Errorf("Compare(\"\", \"\") = %+v, want zero-word result", res)
	}
}

func TestCompareCancelled(t *testing.T) {
	c := newComparator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Compare(ctx, "a", "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("Compare() error = %v, want context.Canceled", err)
	}
}
