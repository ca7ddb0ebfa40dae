package benchmark

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_verse_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_verse_similarity/internal/core/similarity"
	"github.com/baditaflorin/go_verse_similarity/internal/warmup"
	"github.com/baditaflorin/go_verse_similarity/pkg/verse"
)

// generateText repeats the sample verses until the text has roughly the requested number of words
func generateText(words int) string {
	if words <= 0 {
		return ""
	}

	var out []string
	for len(out) < words {
		for _, v := range warmup.SampleVerses {
			out = append(out, strings.Fields(v)...)
		}
	}
	return strings.Join(out[:words], " ")
}

// BenchmarkNormalizer measures diacritic stripping on inputs of different sizes
func BenchmarkNormalizer(b *testing.B) {
	norm := normalizer.NewArabicNormalizer()

	benchmarks := []struct {
		name  string
		input string
	}{
		{"Small", generateText(4)},
		{"Medium", generateText(100)},
		{"Large", generateText(5000)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(bm.input)
			}
		})
	}
}

// BenchmarkSimilarity measures the word scorer on typical word pairs
func BenchmarkSimilarity(b *testing.B) {
	scorer := similarity.NewScorer()

	pairs := []struct {
		name string
		a, b string
	}{
		{"Identical", "الرحمن", "الرحمن"},
		{"Close", "الرحيم", "الرحمن"},
		{"Disjoint", "بسم", "قل"},
		{"Long", "والمستضعفين", "المستقيم"},
	}

	for _, p := range pairs {
		b.Run(p.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = scorer.Similarity(p.a, p.b)
			}
		})
	}
}

// BenchmarkCompare measures full comparisons for verse-sized and page-sized inputs
func BenchmarkCompare(b *testing.B) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vs, err := verse.New(verse.WithNopLogger())
	if err != nil {
		b.Fatal(err)
	}

	verseText := generateText(200)
	recognized := strings.ReplaceAll(verseText, "الله", "اللة")

	b.Run("Verse", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = vs.Compare(ctx, "بسم الله الرحمن", warmup.SampleVerses[0])
		}
	})

	b.Run("Page", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = vs.Compare(ctx, recognized, verseText)
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_, _ = vs.Compare(ctx, recognized, verseText)
			}
		})
	})
}
