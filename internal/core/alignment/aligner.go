package alignment

import (
	"errors"
	"math"
	"strconv"

	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/internal/ports"
)

// Default configuration values.
const (
	DefaultThreshold = 0.75
	DefaultWindow    = 2
)

var (
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
	ErrInvalidWindow    = errors.New("window must not be negative")
)

// Config holds the tunable alignment parameters.
type Config struct {
	// Threshold is the minimum similarity accepted as a match.
	Threshold float64
	// Window bounds how far from its own position a reference word may look
	// for a candidate.
	Window int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Window:    DefaultWindow,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 || math.IsNaN(c.Threshold) {
		return ErrInvalidThreshold
	}
	if c.Window < 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Alignment is the output of Aligner.Align.
type Alignment struct {
	Records    []domain.WordComparison
	Matched    int
	Mismatched int
}

// Aligner pairs every reference word with at most one recognized word found
// inside a window around its position. It is stateless after construction.
type Aligner struct {
	config Config
	scorer ports.Scorer
}

// NewAligner creates a new aligner.
func NewAligner(config Config, scorer ports.Scorer) (*Aligner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Aligner{config: config, scorer: scorer}, nil
}

// Config returns the configuration the aligner was built with.
func (a *Aligner) Config() Config {
	return a.config
}

// Align emits one record per reference word in order, followed by a record
// for every candidate that no matching record selected. Matched and
// Mismatched count reference positions only.
func (a *Aligner) Align(reference, candidates []string) Alignment {
	records := make([]domain.WordComparison, 0, len(reference)+len(candidates))
	used := make([]bool, len(candidates))
	var matched, mismatched int
	// A window wider than both sequences behaves like an unbounded one.
	window := min(a.config.Window, len(reference)+len(candidates))

	for i, ref := range reference {
		lo := max(0, i-window)
		hi := min(len(candidates), i+window+1)

		best, bestScore := -1, 0.0
		for j := lo; j < hi; j++ {
			score := a.scorer.Similarity(ref, candidates[j])
			if best < 0 || score > bestScore {
				best, bestScore = j, score
			}
		}

		rec := domain.WordComparison{Position: i, Verse: ref}
		if best >= 0 {
			rec.Similarity = Round(bestScore*100, 1)
			rec.Match = bestScore >= a.config.Threshold
		}
		if rec.Match {
			rec.Recognized = candidates[best]
			used[best] = true
			matched++
		} else {
			mismatched++
		}
		records = append(records, rec)
	}

	position := len(reference)
	for j, word := range candidates {
		if used[j] {
			continue
		}
		records = append(records, domain.WordComparison{
			Position:   position,
			Recognized: word,
		})
		position++
	}

	return Alignment{
		Records:    records,
		Matched:    matched,
		Mismatched: mismatched,
	}
}

// Round rounds the exact binary value of v to the given number of decimal
// places. Exact ties go to the even digit: 3.125 becomes 3.12.
func Round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
