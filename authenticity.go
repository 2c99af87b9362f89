// Package authenticity analyzes content authenticity: it measures textual
// similarity between a candidate document and reference documents to detect
// copied content, and estimates the likelihood that a passage was produced
// by a generative model from surface stylometric signals.
//
// Both analyzers are pure functions of their inputs and configuration: they
// keep no state between calls, never touch the network or filesystem, and
// degrade to zero-valued results on empty input instead of failing. Outputs
// are heuristic scores with explicit confidence and evidence, meant to be
// reviewed by a human.
//
// The package-level functions construct a fresh engine per call. Callers on
// a hot path should build a similarity.Comparator or airate.Estimator once
// and reuse it.
package authenticity

import (
	"context"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/pkg/airate"
	"github.com/textintel/go_content_authenticity/pkg/similarity"
)

// Result shapes re-exported for callers of the package-level API.
type (
	SimilarityResult      = domain.SimilarityResult
	SimilarityMetrics     = domain.SimilarityMetrics
	EvidenceBlock         = domain.EvidenceBlock
	ReferenceRecord       = domain.ReferenceRecord
	ReferenceRow          = domain.ReferenceRow
	ReferenceCorpusResult = domain.ReferenceCorpusResult
	AiRateResult          = domain.AiRateResult
	StylometricSignals    = domain.StylometricSignals
)

// ComparePair compares a source text against a single reference text.
func ComparePair(ctx context.Context, source, reference string, opts ...similarity.Option) (SimilarityResult, error) {
	comparator, err := similarity.New(opts...)
	if err != nil {
		return SimilarityResult{}, err
	}
	return comparator.Compare(ctx, source, reference), nil
}

// ScanReferences compares a source text against a list of reference
// documents and returns the ranked corpus result.
func ScanReferences(ctx context.Context, source string, references []ReferenceRecord, opts ...similarity.Option) (ReferenceCorpusResult, error) {
	comparator, err := similarity.New(opts...)
	if err != nil {
		return ReferenceCorpusResult{}, err
	}
	return comparator.ScanReferences(ctx, source, references), nil
}

// EstimateAIRate estimates the likelihood that a passage was produced by a
// generative model.
func EstimateAIRate(ctx context.Context, text string, opts ...airate.Option) (AiRateResult, error) {
	estimator, err := airate.New(opts...)
	if err != nil {
		return AiRateResult{}, err
	}
	return estimator.Estimate(ctx, text), nil
}
