package versesimilarity

import (
	"testing"
)

func TestCompareWithDefaults(t *testing.T) {
	tests := []struct {
		name       string
		recognized string
		verse      string
		total      int
		matched    int
		percentage float64
	}{
		{
			name:       "Identical diacritized verse",
			recognized: "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
			verse:      "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
			total:      4,
			matched:    4,
			percentage: 100,
		},
		{
			name:       "Recitation without diacritics",
			recognized: "بسم الله الرحمن",
			verse:      "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
			total:      4,
			matched:    4,
			percentage: 100,
		},
		{
			name:       "Missing word",
			recognized: "بسم الله",
			verse:      "بسم الله الرحمن",
			total:      3,
			matched:    2,
			percentage: 66.67,
		},
		{
			name:       "Empty verse",
			recognized: "بسم الله",
			verse:      "",
			total:      0,
			matched:    0,
			percentage: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CompareWithDefaults(tc.recognized, tc.verse)
			if result.TotalWords != tc.total || result.MatchedWords != tc.matched || result.MatchPercentage != tc.percentage {
				t.Errorf("expected %d/%d (%.2f%%), got %d/%d (%.2f%%), details: %+v",
					tc.matched, tc.total, tc.percentage,
					result.MatchedWords, result.TotalWords, result.MatchPercentage, result.WordComparisons)
			}
		})
	}
}
