package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/textintel/go_content_authenticity/internal/ports"
)

// Config defines configuration for warming up the engine before it serves
// latency-sensitive callers.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles engine warmup operations.
type Manager struct {
	logger      ports.Logger
	comparators []ports.PairComparator
	estimators  []ports.AIRateEstimator
	preparers   []ports.TextPreparer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterComparator adds a pair comparator to be warmed up.
func (wm *Manager) RegisterComparator(c ports.PairComparator) {
	wm.comparators = append(wm.comparators, c)
}

// RegisterEstimator adds an AI-likelihood estimator to be warmed up.
func (wm *Manager) RegisterEstimator(e ports.AIRateEstimator) {
	wm.estimators = append(wm.estimators, e)
}

// RegisterPreparer adds a text preparer to be warmed up.
func (wm *Manager) RegisterPreparer(p ports.TextPreparer) {
	wm.preparers = append(wm.preparers, p)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting engine warmup",
		"components", len(wm.comparators)+len(wm.estimators)+len(wm.preparers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	original := generateSampleText(wm.config.SampleTextSize)
	similar := generateSimilarText(original, 0.1)
	different := generateSimilarText(original, 0.5)

	wm.run(warmupCtx, func(ctx context.Context, iteration int) {
		for _, preparer := range wm.preparers {
			_ = preparer.NormalizeForShingling(original, 0)
			_ = preparer.Tokenize(original, 0)
			_ = preparer.SplitSentences(original, 0)
		}
		for _, comparator := range wm.comparators {
			switch iteration % 3 {
			case 0:
				_ = comparator.Compare(ctx, original, original)
			case 1:
				_ = comparator.Compare(ctx, original, similar)
			default:
				_ = comparator.Compare(ctx, original, different)
			}
		}
		for _, estimator := range wm.estimators {
			_ = estimator.Estimate(ctx, original)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Engine warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) run(ctx context.Context, step func(ctx context.Context, iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				step(ctx, j)
			}
		}()
	}
	wg.Wait()
}

// generateSampleText creates sample text of approximately the given size.
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	wordsNeeded := size / 5
	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}
	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// generateSimilarText creates a text similar to the original with the
// specified difference ratio.
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)
	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)
	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}
	return strings.Join(newWords, " ")
}
