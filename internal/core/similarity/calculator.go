// Package similarity implements the pairwise similarity engine: four
// independent estimators over the prepared text views, folded into one
// weighted composite score with human-auditable evidence spans.
package similarity

import (
	"context"
	"math"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/ports"
)

// Composite weights. They sum to 1.0: containment and resemblance from
// shingling carry the decision, winnowing adds robust local overlap, SimHash
// adds lexical robustness, and the sequence ratio acts as a tie-breaker.
const (
	weightContainment = 0.36
	weightJaccard     = 0.24
	weightWinnowing   = 0.20
	weightSimhash     = 0.12
	weightSequence    = 0.08
)

// Calculator implements the pairwise similarity comparison.
type Calculator struct {
	config    ComparisonConfig
	threshold float64
	logger    ports.Logger
	preparer  ports.TextPreparer
}

// NewCalculator creates a new pairwise similarity calculator. The config is
// normalized and the threshold clamped before use.
func NewCalculator(config ComparisonConfig, threshold float64, logger ports.Logger, preparer ports.TextPreparer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		config:    config.Normalized(),
		threshold: ClampThreshold(threshold),
		logger:    logger,
		preparer:  preparer,
	}, nil
}

// Config returns the normalized configuration the calculator runs with.
func (c *Calculator) Config() ComparisonConfig {
	return c.config
}

// Threshold returns the clamped decision threshold.
func (c *Calculator) Threshold() float64 {
	return c.threshold
}

// Compare computes the similarity between a source and a reference text.
// Degenerate input never fails: an input that is empty after normalization
// yields a zero-valued result with no evidence.
func (c *Calculator) Compare(ctx context.Context, source, reference string) domain.SimilarityResult {
	c.logger.Debug("Starting pair comparison",
		"source_len", len(source),
		"reference_len", len(reference),
	)

	select {
	case <-ctx.Done():
		c.logger.Error("Comparison cancelled", "error", ctx.Err())
		return c.zeroResult(0, 0)
	default:
	}

	sourceNorm := []rune(c.preparer.NormalizeForShingling(source, 0))
	refNorm := []rune(c.preparer.NormalizeForShingling(reference, 0))
	sourceChars := len(sourceNorm)
	refChars := len(refNorm)

	if sourceChars == 0 || refChars == 0 {
		c.logger.Debug("Empty input after normalization",
			"source_chars", sourceChars,
			"reference_chars", refChars,
		)
		return c.zeroResult(sourceChars, refChars)
	}

	sourceGrams := charNgrams(sourceNorm, c.config.NgramSize)
	refGrams := charNgrams(refNorm, c.config.NgramSize)
	shared := intersectionSize(sourceGrams, refGrams)
	union := len(sourceGrams) + len(refGrams) - shared
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(shared) / float64(union)
	}
	containment := 0.0
	if len(sourceGrams) > 0 {
		containment = float64(shared) / float64(len(sourceGrams))
	}

	srcFps := fingerprintHashSet(winnowingFingerprints(sourceNorm, c.config.WinnowingK, c.config.WinnowingWindow))
	refFps := fingerprintHashSet(winnowingFingerprints(refNorm, c.config.WinnowingK, c.config.WinnowingWindow))
	winnowing := 0.0
	if len(srcFps) > 0 {
		sharedFps := 0
		for h := range srcFps {
			if _, ok := refFps[h]; ok {
				sharedFps++
			}
		}
		winnowing = float64(sharedFps) / float64(len(srcFps))
	}

	srcHash := simhash64(c.preparer.Tokenize(source, 0))
	refHash := simhash64(c.preparer.Tokenize(reference, 0))
	simhash := 1.0 - float64(hammingDistance64(srcHash, refHash))/64.0

	seqRatio, longest := sequenceStats(sourceNorm, refNorm)
	longestRatio := float64(longest) / float64(sourceChars)

	score := weightContainment*containment +
		weightJaccard*jaccard +
		weightWinnowing*winnowing +
		weightSimhash*simhash +
		weightSequence*seqRatio
	score = clampFloat(score, 0, 1)

	evidence := evidenceBlocks(source, reference, c.config.MinMatchChars)

	result := domain.SimilarityResult{
		Score:     round4(score),
		Threshold: round4(c.threshold),
		Suspected: score >= c.threshold,
		Metrics: domain.SimilarityMetrics{
			SourceChars:        sourceChars,
			ReferenceChars:     refChars,
			JaccardResemblance: round4(jaccard),
			Containment:        round4(containment),
			WinnowingOverlap:   round4(winnowing),
			SimhashSimilarity:  round4(simhash),
			SequenceRatio:      round4(seqRatio),
			LongestMatchChars:  longest,
			LongestMatchRatio:  round4(longestRatio),
			SharedNgrams:       shared,
		},
		Evidence: evidence,
	}

	c.logger.Debug("Computed pair comparison",
		"score", result.Score,
		"suspected", result.Suspected,
		"containment", result.Metrics.Containment,
		"jaccard", result.Metrics.JaccardResemblance,
		"winnowing", result.Metrics.WinnowingOverlap,
		"evidence_blocks", len(result.Evidence),
	)
	return result
}

func (c *Calculator) zeroResult(sourceChars, refChars int) domain.SimilarityResult {
	return domain.SimilarityResult{
		Score:     0,
		Threshold: round4(c.threshold),
		Suspected: false,
		Metrics: domain.SimilarityMetrics{
			SourceChars:    sourceChars,
			ReferenceChars: refChars,
		},
		Evidence: []domain.EvidenceBlock{},
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
