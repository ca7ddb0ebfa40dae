// Package similarity scores how alike two words are on a [0,1] scale.
//
// The score blends a block-matching edit ratio with a length ratio:
//
//	similarity = ratio(a, b)*0.7 + min(len)/max(len)*0.3
//
// and is raised to at least 0.6 when one word starts with the first
// (up to three) characters of the other. Lengths are counted in runes.
package similarity

import (
	"github.com/baditaflorin/go_verse_similarity/internal/pool"
)

const (
	ratioWeight       = 0.7
	lengthRatioWeight = 0.3
	prefixLength      = 3
	prefixFloor       = 0.6
)

// Scorer computes word similarity. It holds only buffer pools and is safe for
// concurrent use.
type Scorer struct {
	runes *pool.RuneBufferPool
	rows  *pool.IntBufferPool
}

// NewScorer creates a new word similarity scorer.
func NewScorer() *Scorer {
	return &Scorer{
		runes: pool.NewRuneBufferPool(32),
		rows:  pool.NewIntBufferPool(64),
	}
}

// Similarity returns the composite similarity of a and b.
func (s *Scorer) Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ra := s.runes.Get()
	rb := s.runes.Get()
	defer s.runes.Put(ra)
	defer s.runes.Put(rb)
	*ra = appendRunes(*ra, a)
	*rb = appendRunes(*rb, b)

	la, lb := len(*ra), len(*rb)
	base := s.ratio(*ra, *rb)
	lengthRatio := float64(min(la, lb)) / float64(max(la, lb))
	score := base*ratioWeight + lengthRatio*lengthRatioWeight

	k := min(prefixLength, la, lb)
	if hasPrefix(*ra, (*rb)[:k]) || hasPrefix(*rb, (*ra)[:k]) {
		score = max(score, prefixFloor)
	}
	return score
}

// Ratio returns the block-matching ratio 2*M/(len(a)+len(b)) on its own.
func (s *Scorer) Ratio(a, b string) float64 {
	ra := s.runes.Get()
	rb := s.runes.Get()
	defer s.runes.Put(ra)
	defer s.runes.Put(rb)
	*ra = appendRunes(*ra, a)
	*rb = appendRunes(*rb, b)
	return s.ratio(*ra, *rb)
}

func (s *Scorer) ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(s.matchedLength(a, b)) / float64(total)
}

type region struct {
	alo, ahi, blo, bhi int
}

// matchedLength repeatedly takes the longest common block of the unmatched
// regions and sums the block sizes.
func (s *Scorer) matchedLength(a, b []rune) int {
	prev := s.rows.Get(len(b) + 1)
	cur := s.rows.Get(len(b) + 1)
	defer s.rows.Put(prev)
	defer s.rows.Put(cur)

	matched := 0
	stack := []region{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, k := longestMatch(a, b, r, *prev, *cur)
		if k == 0 {
			continue
		}
		matched += k
		if r.alo < i && r.blo < j {
			stack = append(stack, region{r.alo, i, r.blo, j})
		}
		if i+k < r.ahi && j+k < r.bhi {
			stack = append(stack, region{i + k, r.ahi, j + k, r.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside r.
// Among equally long blocks the one ending earliest in a wins, then the one
// earliest in b. prev and cur are scratch rows of at least len(b)+1.
func longestMatch(a, b []rune, r region, prev, cur []int) (besti, bestj, bestk int) {
	besti, bestj = r.alo, r.blo
	width := r.bhi - r.blo
	clear(prev[:width+1])
	for i := r.alo; i < r.ahi; i++ {
		cur[0] = 0
		for j := r.blo; j < r.bhi; j++ {
			col := j - r.blo + 1
			if a[i] != b[j] {
				cur[col] = 0
				continue
			}
			k := prev[col-1] + 1
			cur[col] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestk
}

func appendRunes(dst []rune, s string) []rune {
	for _, r := range s {
		dst = append(dst, r)
	}
	return dst
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
