package ports

// Normalizer defines the interface for text normalization.
type Normalizer interface {
	Normalize(text string) string
}

// Tokenizer splits normalized text into an ordered sequence of words.
type Tokenizer interface {
	Tokenize(text string) []string
}
