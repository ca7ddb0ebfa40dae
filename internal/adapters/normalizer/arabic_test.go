package normalizer

import (
	"testing"
)

func TestArabicNormalizer(t *testing.T) {
	n := NewArabicNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"diacritics only", " َ ُ ", ""},
		{"basmala", "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ", "بسم الله الرحمن الرحيم"},
		{"tanwin", "أَحَدٌ كُفُوًا", "أحد كفوا"},
		{"quranic annotation marks", "قَالَۖ رَبِّۚ", "قال رب"},
		{"collapses mixed whitespace", "  بسم\t\tالله\n\nالرحمن  ", "بسم الله الرحمن"},
		{"keeps unlisted marks", "ءآ", "ءآ"},
		{"keeps latin text", "Hello   World", "Hello World"},
		{"idempotent on plain text", "الحمد لله", "الحمد لله"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestIsDiacritic(t *testing.T) {
	for r := rune(0x064B); r <= 0x0652; r++ {
		if !IsDiacritic(r) {
			t.Errorf("IsDiacritic(%U) = false, want true", r)
		}
	}
	for r := rune(0x06D6); r <= 0x06DC; r++ {
		if !IsDiacritic(r) {
			t.Errorf("IsDiacritic(%U) = false, want true", r)
		}
	}
	if !IsDiacritic('\u0670') {
		t.Error("superscript alef must be a diacritic")
	}
	for _, r := range []rune{'ا', 'ل', ' ', 'a', '\u0653', '\u0654', '\u06DD'} {
		if IsDiacritic(r) {
			t.Errorf("IsDiacritic(%U) = true, want false", r)
		}
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	n := NewArabicNormalizer()
	input := "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"
	want := n.Normalize(input)

	done := make(chan string)
	for i := 0; i < 8; i++ {
		go func() {
			var last string
			for j := 0; j < 100; j++ {
				last = n.Normalize(input)
			}
			done <- last
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Fatalf("concurrent Normalize = %q, want %q", got, want)
		}
	}
}
