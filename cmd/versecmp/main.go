package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/baditaflorin/go_verse_similarity/internal/core/alignment"
	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/pkg/verse"
)

// Command-line flags
var (
	recognizedFile string
	verseFile      string
	recognizedText string
	verseText      string
	threshold      float64
	window         int
	outputFormat   string
	verbose        bool
)

func init() {
	flag.StringVar(&recognizedFile, "recognized-file", "", "Path to a file holding the recognized text")
	flag.StringVar(&verseFile, "verse-file", "", "Path to a file holding the verse text")

	flag.StringVar(&recognizedText, "recognized", "", "Recognized text content")
	flag.StringVar(&verseText, "verse", "", "Verse text content")

	flag.Float64Var(&threshold, "threshold", alignment.DefaultThreshold, "Word similarity threshold (0.0-1.0)")
	flag.IntVar(&window, "window", alignment.DefaultWindow, "Alignment window size")

	flag.StringVar(&outputFormat, "output", "text", "Output format: 'text' or 'json'")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --recognized-file=asr.txt --verse-file=verse.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --recognized=\"بسم الله\" --verse=\"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ\" --output=json\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := validateInputs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	recognized, verseContent, err := loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inputs: %v\n", err)
		os.Exit(1)
	}
	if err := verse.ValidateInput(recognized, verseContent); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vs, err := verse.New(
		verse.WithThreshold(threshold),
		verse.WithWindow(window),
		verse.WithNopLogger(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating comparator: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	result, err := vs.Compare(ctx, recognized, verseContent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing texts: %v\n", err)
		os.Exit(1)
	}

	switch outputFormat {
	case "json":
		err = writeJSON(os.Stdout, result)
	default:
		err = writeText(os.Stdout, result)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing time: %v\n", time.Since(start))
	}
}

// validateInputs validates the command-line inputs
func validateInputs() error {
	hasRecognized := recognizedFile != "" || recognizedText != ""
	hasVerse := verseFile != "" || verseText != ""
	if !hasRecognized || !hasVerse {
		return fmt.Errorf("must provide both a recognized text and a verse text")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("invalid output format: %s. Must be 'text' or 'json'", outputFormat)
	}
	return nil
}

// loadInputs reads inputs from files when given, falling back to the direct text flags
func loadInputs() (string, string, error) {
	recognized, err := readInput(recognizedFile, recognizedText)
	if err != nil {
		return "", "", fmt.Errorf("recognized: %w", err)
	}
	verseContent, err := readInput(verseFile, verseText)
	if err != nil {
		return "", "", fmt.Errorf("verse: %w", err)
	}
	return recognized, verseContent, nil
}

func readInput(path, text string) (string, error) {
	if path == "" {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type jsonWord struct {
	Position   int     `json:"position"`
	Recognized string  `json:"recognized"`
	Verse      string  `json:"verse"`
	Match      bool    `json:"match"`
	Similarity float64 `json:"similarity"`
}

type jsonResult struct {
	MatchPercentage float64    `json:"match_percentage"`
	WordComparisons []jsonWord `json:"word_comparisons"`
	TotalWords      int        `json:"total_words"`
	MatchedWords    int        `json:"matched_words"`
	MismatchedWords int        `json:"mismatched_words"`
}

func writeJSON(w io.Writer, res domain.Result) error {
	out := jsonResult{
		MatchPercentage: res.MatchPercentage,
		WordComparisons: make([]jsonWord, len(res.WordComparisons)),
		TotalWords:      res.TotalWords,
		MatchedWords:    res.MatchedWords,
		MismatchedWords: res.MismatchedWords,
	}
	for i, wc := range res.WordComparisons {
		out.WordComparisons[i] = jsonWord(wc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func writeText(w io.Writer, res domain.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match: %.2f%% (%d/%d words, %d mismatched)\n",
		res.MatchPercentage, res.MatchedWords, res.TotalWords, res.MismatchedWords)
	for _, wc := range res.WordComparisons {
		mark := "✗"
		if wc.Match {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%3d %s  verse=%q recognized=%q similarity=%.1f\n",
			wc.Position, mark, wc.Verse, wc.Recognized, wc.Similarity)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
