package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_verse_similarity/internal/ports"
)

// SampleVerses are diacritized verses used to exercise the comparison path.
var SampleVerses = []string{
	"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
	"الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
	"مَالِكِ يَوْمِ الدِّينِ",
	"إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ",
	"اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ",
	"قُلْ هُوَ اللَّهُ أَحَدٌ",
	"لَمْ يَلِدْ وَلَمْ يُولَدْ",
	"قُلْ أَعُوذُ بِرَبِّ الْفَلَقِ",
	"مِن شَرِّ مَا خَلَقَ",
	"قُلْ أَعُوذُ بِرَبِّ النَّاسِ",
}

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Stats reports how much work a warmup run performed.
type Stats struct {
	Normalizations int64
	Comparisons    int64
	Duration       time.Duration
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	comparators []ports.VerseComparator
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterComparator adds a comparator to be warmed up
func (wm *Manager) RegisterComparator(c ports.VerseComparator) {
	wm.comparators = append(wm.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.comparators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	var stats Stats
	stats.Normalizations = wm.warmUpNormalizers(warmupCtx)
	stats.Comparisons = wm.warmUpComparators(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"duration", stats.Duration,
		"normalizations", stats.Normalizations,
		"comparisons", stats.Comparisons,
	)
	return stats
}

// warmUpNormalizers runs every normalizer over every sample verse
func (wm *Manager) warmUpNormalizers(ctx context.Context) int64 {
	if len(wm.normalizers) == 0 {
		return 0
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	sample := strings.Join(SampleVerses, "\n")
	return wm.run(ctx, func(int) int64 {
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(sample)
		}
		return int64(len(wm.normalizers))
	})
}

// warmUpComparators compares sample verses against themselves, a stripped
// recitation and an unrelated verse
func (wm *Manager) warmUpComparators(ctx context.Context) int64 {
	if len(wm.comparators) == 0 {
		return 0
	}

	wm.logger.Debug("Warming up comparators", "count", len(wm.comparators))

	return wm.run(ctx, func(iteration int) int64 {
		verse := SampleVerses[iteration%len(SampleVerses)]
		var recognized string
		switch iteration % 3 {
		case 0:
			recognized = verse
		case 1:
			recognized = dropLastWord(verse)
		default:
			recognized = SampleVerses[(iteration+1)%len(SampleVerses)]
		}

		var n int64
		for _, comparator := range wm.comparators {
			if _, err := comparator.Compare(ctx, recognized, verse); err != nil {
				return n
			}
			n++
		}
		return n
	})
}

// run calls fn Iterations times on each of Concurrency goroutines, stopping
// early once ctx is done, and sums fn's results.
func (wm *Manager) run(ctx context.Context, fn func(iteration int) int64) int64 {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var local int64
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					break
				}
				local += fn(j)
			}

			mu.Lock()
			total += local
			mu.Unlock()
		}()
	}

	wg.Wait()
	return total
}

func dropLastWord(text string) string {
	words := strings.Fields(text)
	if len(words) <= 1 {
		return text
	}
	return strings.Join(words[:len(words)-1], " ")
}
