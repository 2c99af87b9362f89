// Package similarity exposes the pairwise similarity engine and the
// reference-corpus scanner behind a configurable facade.
package similarity

import (
	"context"

	"github.com/baditaflorin/l"
	adlogger "github.com/textintel/go_content_authenticity/internal/adapters/logger"
	adtextprep "github.com/textintel/go_content_authenticity/internal/adapters/textprep"
	"github.com/textintel/go_content_authenticity/internal/core/corpus"
	"github.com/textintel/go_content_authenticity/internal/core/domain"
	core "github.com/textintel/go_content_authenticity/internal/core/similarity"
	"github.com/textintel/go_content_authenticity/internal/ports"
	"github.com/textintel/go_content_authenticity/internal/warmup"
)

// ReferenceRecord is a strictly typed reference document, re-exported so
// callers never reach into internal packages.
type ReferenceRecord = domain.ReferenceRecord

// Comparator provides methods to compare a source text against single
// references or a whole reference corpus.
type Comparator struct {
	calc    *core.Calculator
	scanner *corpus.Scanner
	logger  ports.Logger
}

// Option defines a functional option for configuring the Comparator.
type Option func(*comparatorConfig)

type comparatorConfig struct {
	Threshold float64
	Config    core.ComparisonConfig
	TopK      int
	Logger    ports.Logger
	Preparer  ports.TextPreparer
	WarmUp    bool
}

// WithThreshold sets a custom decision threshold (clamped to [0.05, 0.95]).
func WithThreshold(th float64) Option {
	return func(cfg *comparatorConfig) {
		cfg.Threshold = th
	}
}

// WithNgramSize sets the character shingle length (clamped to [3, 16]).
func WithNgramSize(n int) Option {
	return func(cfg *comparatorConfig) {
		cfg.Config.NgramSize = n
	}
}

// WithWinnowingK sets the fingerprint k-gram length (clamped to [5, 64]).
func WithWinnowingK(k int) Option {
	return func(cfg *comparatorConfig) {
		cfg.Config.WinnowingK = k
	}
}

// WithWinnowingWindow sets the winnowing window size (clamped to [4, 128]).
func WithWinnowingWindow(w int) Option {
	return func(cfg *comparatorConfig) {
		cfg.Config.WinnowingWindow = w
	}
}

// WithMinMatchChars sets the evidence block floor (clamped to [16, 320]).
func WithMinMatchChars(n int) Option {
	return func(cfg *comparatorConfig) {
		cfg.Config.MinMatchChars = n
	}
}

// WithTopK sets how many ranked rows a corpus scan keeps (clamped to [1, 100]).
func WithTopK(k int) Option {
	return func(cfg *comparatorConfig) {
		cfg.TopK = k
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *comparatorConfig) {
		cfg.Logger = adlogger.FromExisting(logger)
	}
}

// WithPreparer sets a custom text preparer.
func WithPreparer(preparer ports.TextPreparer) Option {
	return func(cfg *comparatorConfig) {
		cfg.Preparer = preparer
	}
}

// WithOptimizedPreparer selects the pooled ASCII fast-path preparer.
func WithOptimizedPreparer() Option {
	return func(cfg *comparatorConfig) {
		cfg.Preparer = adtextprep.NewOptimizedPreparer()
	}
}

// WithWarmUp runs an engine warm-up during construction.
func WithWarmUp(enabled bool) Option {
	return func(cfg *comparatorConfig) {
		cfg.WarmUp = enabled
	}
}

// New creates a new Comparator with the provided functional options.
func New(opts ...Option) (*Comparator, error) {
	config := &comparatorConfig{
		Threshold: core.DefaultThreshold,
		Config:    core.DefaultConfig(),
		TopK:      corpus.DefaultTopK,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = adlogger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Preparer == nil {
		config.Preparer = adtextprep.NewDefaultPreparer()
	}

	calc, err := core.NewCalculator(config.Config, config.Threshold, config.Logger, config.Preparer)
	if err != nil {
		return nil, err
	}
	scanner := corpus.NewScanner(calc, config.Preparer, config.Logger, config.TopK)

	c := &Comparator{calc: calc, scanner: scanner, logger: config.Logger}
	if config.WarmUp {
		manager := warmup.NewManager(config.Logger, warmup.DefaultConfig())
		manager.RegisterComparator(calc)
		manager.RegisterPreparer(config.Preparer)
		manager.WarmUp(context.Background())
	}
	return c, nil
}

// Compare computes the similarity between a source and a reference text.
func (c *Comparator) Compare(ctx context.Context, source, reference string) domain.SimilarityResult {
	return c.calc.Compare(ctx, source, reference)
}

// ScanReferences compares the source against every reference record and
// returns the ranked, truncated corpus result.
func (c *Comparator) ScanReferences(ctx context.Context, source string, references []ReferenceRecord) domain.ReferenceCorpusResult {
	return c.scanner.Scan(ctx, source, references)
}

// NormalizeRecords maps loosely shaped reference records into strict ones.
func NormalizeRecords(records []ReferenceRecord, maxCount int) []ReferenceRecord {
	return corpus.NormalizeRecords(records, maxCount)
}

// DedupeRecords resolves duplicate reference ids while keeping input order.
func DedupeRecords(records []ReferenceRecord) []ReferenceRecord {
	return corpus.DedupeRecords(records)
}
