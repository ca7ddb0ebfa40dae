package domain

// WordComparison is the outcome for a single reference position, or for a
// leftover recognized word appended after the reference positions.
type WordComparison struct {
	Position   int
	Recognized string
	Verse      string
	Match      bool
	// Similarity is a percentage in [0,100] rounded to one decimal.
	Similarity float64
}

// Result holds the outcome of a verse comparison.
type Result struct {
	MatchPercentage float64
	WordComparisons []WordComparison
	TotalWords      int
	MatchedWords    int
	MismatchedWords int
}
