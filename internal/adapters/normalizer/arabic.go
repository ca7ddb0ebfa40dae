package normalizer

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/baditaflorin/go_verse_similarity/internal/pool"
	"github.com/baditaflorin/go_verse_similarity/internal/ports"
)

// diacritics is the fixed set of Arabic marks removed before comparison:
// tanwin, harakat, shadda, sukun, superscript alef and the small Qur'anic
// annotation marks U+06D6..U+06DC.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x0652, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1},
	},
}

var stripDiacritics = runes.Remove(runes.In(diacritics))

// IsDiacritic reports whether r is one of the marks stripped by ArabicNormalizer.
func IsDiacritic(r rune) bool {
	return unicode.Is(diacritics, r)
}

// ArabicNormalizer strips Arabic diacritics and collapses whitespace.
type ArabicNormalizer struct {
	builders *pool.StringBuilderPool
}

// NewArabicNormalizer creates a new Arabic normalizer.
func NewArabicNormalizer() ports.Normalizer {
	return &ArabicNormalizer{
		builders: pool.NewStringBuilderPool(),
	}
}

// Normalize removes diacritics, turns every run of whitespace into a single
// space and trims both ends. Empty input yields empty output.
func (n *ArabicNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	stripped, _, _ := transform.String(stripDiacritics, text)

	sb := n.builders.Get()
	defer n.builders.Put(sb)
	sb.Grow(len(stripped))

	pendingSpace := false
	for _, r := range stripped {
		if unicode.IsSpace(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
