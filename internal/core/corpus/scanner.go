// Package corpus orchestrates the pairwise similarity engine across a list
// of named reference documents and reports aggregate exposure.
package corpus

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/core/similarity"
	"github.com/textintel/go_content_authenticity/internal/ports"
)

// DefaultTopK is the number of ranked rows kept when the caller does not ask
// for a specific truncation.
const DefaultTopK = 10

// Scanner runs one source text against a reference corpus.
type Scanner struct {
	calc     *similarity.Calculator
	preparer ports.TextPreparer
	logger   ports.Logger
	topK     int
}

// NewScanner creates a new corpus scanner around a pairwise calculator.
// topK is clamped to [1, 100].
func NewScanner(calc *similarity.Calculator, preparer ports.TextPreparer, logger ports.Logger, topK int) *Scanner {
	if topK < 1 {
		topK = 1
	}
	if topK > 100 {
		topK = 100
	}
	return &Scanner{calc: calc, preparer: preparer, logger: logger, topK: topK}
}

// Scan compares the source against every reference, ranks the rows by score
// descending (ties keep input order), truncates to top-k, and aggregates
// exposure over the kept rows. References with blank bodies are skipped.
func (s *Scanner) Scan(ctx context.Context, source string, references []domain.ReferenceRecord) domain.ReferenceCorpusResult {
	threshold := s.calc.Threshold()
	cfg := s.calc.Config()

	s.logger.Debug("Starting corpus scan",
		"references", len(references),
		"top_k", s.topK,
		"threshold", threshold,
	)

	rows := make([]domain.ReferenceRow, 0, len(references))
	for idx, rec := range references {
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		id := capRunes(strings.TrimSpace(rec.ID), maxRecordIDChars)
		if id == "" {
			id = fmt.Sprintf("ref_%d", idx+1)
		}
		title := capRunes(strings.TrimSpace(rec.Title), maxRecordTitleChars)
		if title == "" {
			title = id
		}
		one := s.calc.Compare(ctx, source, rec.Text)
		rows = append(rows, domain.ReferenceRow{
			ReferenceID:    id,
			ReferenceTitle: title,
			Score:          one.Score,
			Threshold:      one.Threshold,
			Suspected:      one.Suspected,
			Metrics:        one.Metrics,
			Evidence:       one.Evidence,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	if len(rows) > s.topK {
		rows = rows[:s.topK]
	}

	maxScore := 0.0
	flagged := 0
	for _, row := range rows {
		if row.Score > maxScore {
			maxScore = row.Score
		}
		if row.Suspected {
			flagged++
		}
	}

	result := domain.ReferenceCorpusResult{
		SourceChars:     len([]rune(s.preparer.NormalizeForShingling(source, 0))),
		Threshold:       math.Round(threshold*10000) / 10000,
		TotalReferences: len(rows),
		FlaggedCount:    flagged,
		MaxScore:        math.Round(maxScore*10000) / 10000,
		Suspected:       maxScore >= threshold,
		Results:         rows,
		Config: domain.CorpusConfig{
			NgramSize:       cfg.NgramSize,
			WinnowingK:      cfg.WinnowingK,
			WinnowingWindow: cfg.WinnowingWindow,
			MinMatchChars:   cfg.MinMatchChars,
		},
	}

	s.logger.Debug("Completed corpus scan",
		"total_references", result.TotalReferences,
		"flagged_count", result.FlaggedCount,
		"max_score", result.MaxScore,
		"suspected", result.Suspected,
	)
	return result
}
