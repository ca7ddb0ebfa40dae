// Package verse compares a recognized recitation against a reference verse
// word by word and reports a match percentage.
package verse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_verse_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_verse_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_verse_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_verse_similarity/internal/core/alignment"
	"github.com/baditaflorin/go_verse_similarity/internal/core/domain"
	"github.com/baditaflorin/go_verse_similarity/internal/core/similarity"
	corev "github.com/baditaflorin/go_verse_similarity/internal/core/verse"
	"github.com/baditaflorin/go_verse_similarity/internal/ports"
	"github.com/baditaflorin/go_verse_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// ErrEmptyInput is returned by ValidateInput when either text is empty.
var ErrEmptyInput = errors.New("both recognized_text and verse_text are required")

// Pair is one recognized/verse input for CompareAll.
type Pair struct {
	Recognized string
	Verse      string
}

// VerseSimilarity compares recognized text to verse text.
type VerseSimilarity struct {
	comparator ports.VerseComparator
	logger     ports.Logger
	normalizer ports.Normalizer
	config     alignment.Config
	warmOnce   sync.Once
	warmed     atomic.Bool
}

// Option defines a functional option for configuring VerseSimilarity.
type Option func(*verseConfig)

type verseConfig struct {
	Threshold    float64
	Window       int
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	Tokenizer    ports.Tokenizer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithThreshold sets the minimum word similarity accepted as a match.
func WithThreshold(th float64) Option {
	return func(cfg *verseConfig) {
		cfg.Threshold = th
	}
}

// WithWindow sets how many positions on either side of a verse word are searched.
func WithWindow(window int) Option {
	return func(cfg *verseConfig) {
		cfg.Window = window
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *verseConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithServiceLogger sets an already adapted logger.
func WithServiceLogger(lg ports.Logger) Option {
	return func(cfg *verseConfig) {
		cfg.Logger = lg
	}
}

// WithNopLogger silences all logging.
func WithNopLogger() Option {
	return func(cfg *verseConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *verseConfig) {
		cfg.Normalizer = n
	}
}

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(t ports.Tokenizer) Option {
	return func(cfg *verseConfig) {
		cfg.Tokenizer = t
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *verseConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *verseConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new VerseSimilarity instance.
func New(opts ...Option) (*VerseSimilarity, error) {
	defaults := alignment.DefaultConfig()
	config := &verseConfig{
		Threshold:    defaults.Threshold,
		Window:       defaults.Window,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewArabicNormalizer()
	}
	if config.Tokenizer == nil {
		config.Tokenizer = tokenizer.NewWhitespaceTokenizer()
	}

	coreConfig := alignment.Config{
		Threshold: config.Threshold,
		Window:    config.Window,
	}
	aligner, err := alignment.NewAligner(coreConfig, similarity.NewScorer())
	if err != nil {
		return nil, fmt.Errorf("invalid alignment config: %w", err)
	}

	vs := &VerseSimilarity{
		comparator: corev.NewComparator(aligner, config.Normalizer, config.Tokenizer, config.Logger),
		logger:     config.Logger,
		normalizer: config.Normalizer,
		config:     coreConfig,
	}

	if config.WarmUp {
		vs.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return vs, nil
}

// Config returns the alignment parameters in use.
func (vs *VerseSimilarity) Config() alignment.Config {
	return vs.config
}

// ValidateInput rejects empty recognized or verse text.
func ValidateInput(recognized, verse string) error {
	if recognized == "" || verse == "" {
		return ErrEmptyInput
	}
	return nil
}

// Compare aligns recognized against verse. Empty strings are tolerated and
// yield a zero-word result; callers that must reject them use ValidateInput.
func (vs *VerseSimilarity) Compare(ctx context.Context, recognized, verse string) (domain.Result, error) {
	return vs.comparator.Compare(ctx, recognized, verse)
}

// CompareAll compares every pair with at most limit comparisons in flight
// (limit <= 0 means unbounded). Results keep the order of pairs.
func (vs *VerseSimilarity) CompareAll(ctx context.Context, pairs []Pair, limit int) ([]domain.Result, error) {
	results := make([]domain.Result, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range pairs {
		g.Go(func() error {
			res, err := vs.comparator.Compare(gctx, p.Recognized, p.Verse)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WarmUp performs system warm-up to optimize performance. Only the first
// call does any work; it is safe to call concurrently.
func (vs *VerseSimilarity) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	ran := false
	vs.warmOnce.Do(func() {
		warmupMgr := warmup.NewManager(vs.logger, config)
		warmupMgr.RegisterComparator(vs.comparator)
		warmupMgr.RegisterNormalizer(vs.normalizer)

		warmupMgr.WarmUp(ctx)
		vs.warmed.Store(true)
		ran = true
	})
	if !ran {
		vs.logger.Debug("System already warmed up, skipping")
	}
}
