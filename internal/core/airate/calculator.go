// Package airate estimates the likelihood that a passage was produced by a
// generative model from surface stylometric signals. The output is a
// heuristic score with explicit confidence and evidence, not ground truth.
package airate

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/core/textprep"
	"github.com/textintel/go_content_authenticity/internal/ports"
)

// DefaultThreshold is the decision threshold applied when the caller does
// not supply one.
const DefaultThreshold = 0.65

// Signal weights. They sum to 1.0.
const (
	weightBurstiness = 0.20
	weightRepetition = 0.20
	weightConnector  = 0.16
	weightPunct      = 0.14
	weightEntropy    = 0.15
	weightLexical    = 0.10
	weightTemplate   = 0.05
)

// neutralPrior anchors the estimate for short, low-confidence passages.
const neutralPrior = 0.45

// Note attached to every result: the estimate is heuristic and must be
// reviewed by a human.
const Note = "Heuristic estimate only; must not be used as the sole basis for a decision."

// Fixed evidence strings, one per triggered signal.
const (
	evidenceEmpty      = "text empty, cannot evaluate"
	evidenceRepetition = "repeated n-gram ratio is elevated, suggesting templated reuse"
	evidenceBurstiness = "sentence length variation is low; pacing is unusually uniform"
	evidenceConnector  = "discourse-connector density is high; structured transitions are dense"
	evidencePunct      = "sentence-terminal punctuation is overly concentrated"
	evidenceEntropy    = "token entropy is low; the vocabulary distribution is concentrated"
	evidenceLexical    = "lexical diversity is low"
	evidenceShortText  = "text is short; detection confidence is limited"
	evidenceNone       = "no significant single-signal anomaly"
)

const (
	maxEvidenceEntries  = 8
	shortTextTokenCount = 120
)

// Estimator implements the AI-likelihood estimation.
type Estimator struct {
	threshold float64
	logger    ports.Logger
	preparer  ports.TextPreparer
}

// NewEstimator creates a new estimator. The threshold is clamped to
// [0.05, 0.95].
func NewEstimator(threshold float64, logger ports.Logger, preparer ports.TextPreparer) *Estimator {
	if threshold < 0.05 {
		threshold = 0.05
	}
	if threshold > 0.95 {
		threshold = 0.95
	}
	return &Estimator{threshold: threshold, logger: logger, preparer: preparer}
}

// Threshold returns the clamped decision threshold.
func (e *Estimator) Threshold() float64 {
	return e.threshold
}

// Estimate computes the AI-likelihood of a passage. Empty input yields a
// zero-confidence result rather than an error.
func (e *Estimator) Estimate(ctx context.Context, text string) domain.AiRateResult {
	select {
	case <-ctx.Done():
		e.logger.Error("Estimation cancelled", "error", ctx.Err())
		return e.zeroResult(0, 0, 0)
	default:
	}

	// One hard cap up front bounds every signal pass below.
	src := textprep.Truncate(text, textprep.DefaultTokenMaxChars)
	tokens := e.preparer.Tokenize(src, 0)
	sentences := e.preparer.SplitSentences(src, 0)
	tokenCount := len(tokens)
	charCount := utf8.RuneCountInString(strings.TrimSpace(src))
	sentenceCount := len(sentences)

	e.logger.Debug("Starting AI-likelihood estimation",
		"token_count", tokenCount,
		"char_count", charCount,
		"sentence_count", sentenceCount,
	)

	if tokenCount == 0 || charCount == 0 {
		e.logger.Debug("Empty input, returning zero-confidence result")
		return e.zeroResult(tokenCount, charCount, sentenceCount)
	}

	unique := make(map[string]struct{}, tokenCount)
	for _, token := range tokens {
		unique[token] = struct{}{}
	}
	lexicalDiversity := float64(len(unique)) / float64(tokenCount)

	sentenceTokenCounts := make([]int, 0, sentenceCount)
	for _, sentence := range sentences {
		n := len(e.preparer.Tokenize(sentence, 0))
		if n < 1 {
			n = 1
		}
		sentenceTokenCounts = append(sentenceTokenCounts, n)
	}
	burstiness := sentenceLengthCV(sentenceTokenCounts)
	repeatedRatio := repeatedNgramRatio(tokens, 3)
	connectorDensity := connectorDensityPer1k(src)
	punctDominant := dominantPunctuationRatio(src)
	entropyNorm := entropyNormalized(tokens)
	templateDensity := templateHeadingDensity(src)

	// Each sub-score maps its signal onto [0,1] against a fixed reference
	// range; higher means more model-like.
	subScores := domain.SubScores{
		BurstinessLow:       clamp((0.52 - burstiness) / 0.52),
		RepetitionHigh:      clamp((repeatedRatio - 0.02) / 0.20),
		ConnectorHigh:       clamp((connectorDensity - 1.8) / 6.0),
		PunctuationUniform:  clamp((punctDominant - 0.72) / 0.25),
		EntropyLow:          clamp((0.82 - entropyNorm) / 0.30),
		LexicalDiversityLow: clamp((0.38 - lexicalDiversity) / 0.22),
		TemplateDensityHigh: clamp((templateDensity - 0.20) / 0.40),
	}

	rawScore := clamp(weightBurstiness*subScores.BurstinessLow +
		weightRepetition*subScores.RepetitionHigh +
		weightConnector*subScores.ConnectorHigh +
		weightPunct*subScores.PunctuationUniform +
		weightEntropy*subScores.EntropyLow +
		weightLexical*subScores.LexicalDiversityLow +
		weightTemplate*subScores.TemplateDensityHigh)

	// Confidence grows with sample length; short text is estimated against
	// the neutral prior instead of collapsing to a fixed midpoint.
	confidence := clamp(float64(tokenCount-40) / 260.0)
	aiRate := clamp(rawScore*confidence + neutralPrior*(1.0-confidence))

	evidence := make([]string, 0, maxEvidenceEntries)
	if subScores.RepetitionHigh >= 0.6 {
		evidence = append(evidence, evidenceRepetition)
	}
	if subScores.BurstinessLow >= 0.6 {
		evidence = append(evidence, evidenceBurstiness)
	}
	if subScores.ConnectorHigh >= 0.6 {
		evidence = append(evidence, evidenceConnector)
	}
	if subScores.PunctuationUniform >= 0.6 {
		evidence = append(evidence, evidencePunct)
	}
	if subScores.EntropyLow >= 0.6 {
		evidence = append(evidence, evidenceEntropy)
	}
	if subScores.LexicalDiversityLow >= 0.6 {
		evidence = append(evidence, evidenceLexical)
	}
	if tokenCount < shortTextTokenCount {
		evidence = append(evidence, evidenceShortText)
	}
	if len(evidence) == 0 {
		evidence = append(evidence, evidenceNone)
	}
	if len(evidence) > maxEvidenceEntries {
		evidence = evidence[:maxEvidenceEntries]
	}

	riskLevel := domain.RiskLow
	switch {
	case aiRate >= 0.78:
		riskLevel = domain.RiskHigh
	case aiRate >= 0.58:
		riskLevel = domain.RiskMedium
	}

	result := domain.AiRateResult{
		AiRate:        round4(aiRate),
		AiRatePercent: int(math.Round(aiRate * 100)),
		Threshold:     round4(e.threshold),
		SuspectedAI:   aiRate >= e.threshold,
		RiskLevel:     riskLevel,
		Confidence:    round4(confidence),
		Signals: domain.StylometricSignals{
			TokenCount:                 tokenCount,
			CharCount:                  charCount,
			SentenceCount:              sentenceCount,
			SentenceBurstinessCV:       round4(burstiness),
			LexicalDiversity:           round4(lexicalDiversity),
			Repeated3gramRatio:         round4(repeatedRatio),
			ConnectorDensityPer1kChars: round4(connectorDensity),
			DominantPunctuationRatio:   round4(punctDominant),
			TokenEntropyNorm:           round4(entropyNorm),
			TemplateHeadingDensity:     round4(templateDensity),
			SubScores: domain.SubScores{
				BurstinessLow:       round4(subScores.BurstinessLow),
				RepetitionHigh:      round4(subScores.RepetitionHigh),
				ConnectorHigh:       round4(subScores.ConnectorHigh),
				PunctuationUniform:  round4(subScores.PunctuationUniform),
				EntropyLow:          round4(subScores.EntropyLow),
				LexicalDiversityLow: round4(subScores.LexicalDiversityLow),
				TemplateDensityHigh: round4(subScores.TemplateDensityHigh),
			},
		},
		Evidence: evidence,
		Note:     Note,
	}

	e.logger.Debug("Computed AI-likelihood estimation",
		"ai_rate", result.AiRate,
		"risk_level", result.RiskLevel,
		"confidence", result.Confidence,
		"suspected_ai", result.SuspectedAI,
	)
	return result
}

func (e *Estimator) zeroResult(tokenCount, charCount, sentenceCount int) domain.AiRateResult {
	return domain.AiRateResult{
		AiRate:        0,
		AiRatePercent: 0,
		Threshold:     round4(e.threshold),
		SuspectedAI:   false,
		RiskLevel:     domain.RiskLow,
		Confidence:    0,
		Signals: domain.StylometricSignals{
			TokenCount:    tokenCount,
			CharCount:     charCount,
			SentenceCount: sentenceCount,
		},
		Evidence: []string{evidenceEmpty},
		Note:     Note,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
