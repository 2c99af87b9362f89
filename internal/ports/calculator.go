package ports

import (
	"context"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
)

// PairComparator defines the interface for comparing a source text against a
// single reference text.
type PairComparator interface {
	Compare(ctx context.Context, source, reference string) domain.SimilarityResult
}

// CorpusScanner defines the interface for comparing a source text against a
// list of reference documents.
type CorpusScanner interface {
	Scan(ctx context.Context, source string, references []domain.ReferenceRecord) domain.ReferenceCorpusResult
}

// AIRateEstimator defines the interface for estimating the likelihood that a
// passage was produced by a generative model.
type AIRateEstimator interface {
	Estimate(ctx context.Context, text string) domain.AiRateResult
}
