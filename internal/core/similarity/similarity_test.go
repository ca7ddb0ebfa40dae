package similarity

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestSimilarity(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 0},
		{"left empty", "", "abc", 0},
		{"right empty", "abc", "", 0},
		{"identical", "الرحمن", "الرحمن", 1},
		{"single disjoint characters", "a", "x", 0.3},
		{"disjoint words of equal length", "abc", "xyz", 0.3},
		{"one substitution at the end", "abcd", "abce", 0.75*0.7 + 0.3},
		{"arabic near miss", "الرحيم", "الرحمن", 10.0/12.0*0.7 + 0.3},
		{"shared prefix lifts score", "abcdefgh", "abcxyzuvwq", 0.6},
		{"prefix of a short word", "ab", "abxyzw", 0.6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.Similarity(tc.a, tc.b)
			if math.Abs(got-tc.expected) > epsilon {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 1},
		{"identical", "abc", "abc", 1},
		{"disjoint", "abc", "xyz", 0},
		{"shifted block", "abcd", "bcde", 0.75},
		{"swapped middle", "abcd", "acbd", 0.75},
		{"blocks on both sides", "qabxcd", "abycdf", 2.0 * 4 / 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scorer.Ratio(tc.a, tc.b); math.Abs(got-tc.expected) > epsilon {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
			if got := scorer.Ratio(tc.b, tc.a); math.Abs(got-tc.expected) > epsilon {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tc.b, tc.a, got, tc.expected)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	scorer := NewScorer()
	words := []string{"بسم", "الله", "الرحمن", "الرحيم", "الحمد", "لله", "a", "ab", "abcabc", "xyz", "مالك", "ملك"}

	for _, a := range words {
		for _, b := range words {
			s := scorer.Similarity(a, b)
			if s < 0 || s > 1 {
				t.Fatalf("Similarity(%q, %q) = %v, outside [0,1]", a, b, s)
			}
			if a != b && s == 1 {
				t.Fatalf("Similarity(%q, %q) = 1 for different words", a, b)
			}
		}
	}
}

func TestSimilarityCountsRunesNotBytes(t *testing.T) {
	scorer := NewScorer()

	// Each Arabic letter is two bytes; lengths must be compared in characters.
	got := scorer.Similarity("ملك", "مالك")
	// blocks "لك" and "م": M=3, ratio 6/7, length ratio 3/4.
	want := 6.0/7.0*0.7 + 0.75*0.3
	if math.Abs(got-want) > epsilon {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
}

func TestScorerConcurrentUse(t *testing.T) {
	scorer := NewScorer()
	want := scorer.Similarity("الرحيم", "الرحمن")

	done := make(chan float64)
	for i := 0; i < 8; i++ {
		go func() {
			var last float64
			for j := 0; j < 200; j++ {
				last = scorer.Similarity("الرحيم", "الرحمن")
			}
			done <- last
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Fatalf("concurrent Similarity = %v, want %v", got, want)
		}
	}
}
