package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textintel/go_content_authenticity/internal/core/domain"
)

func sampleResult() domain.ReferenceCorpusResult {
	return domain.ReferenceCorpusResult{
		SourceChars:     120,
		Threshold:       0.35,
		TotalReferences: 2,
		FlaggedCount:    1,
		MaxScore:        0.9123,
		Suspected:       true,
		Results: []domain.ReferenceRow{
			{
				ReferenceID:    "ref-a",
				ReferenceTitle: "A | pipe-laden title",
				Score:          0.9123,
				Threshold:      0.35,
				Suspected:      true,
				Metrics: domain.SimilarityMetrics{
					Containment:        0.95,
					JaccardResemblance: 0.88,
					WinnowingOverlap:   0.91,
					SimhashSimilarity:  0.97,
					SequenceRatio:      0.9,
					LongestMatchChars:  64,
				},
				Evidence: []domain.EvidenceBlock{
					{SourceStart: 0, ReferenceStart: 0, MatchChars: 64, Snippet: "multi\nline\r\nsnippet"},
				},
			},
			{
				ReferenceID: "ref-b",
				Score:       0.02,
			},
		},
		Config: domain.CorpusConfig{NgramSize: 7, WinnowingK: 13, WinnowingWindow: 17, MinMatchChars: 24},
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleResult())

	assert.True(t, strings.HasPrefix(out, "# Reference Similarity Scan Report"))
	assert.Contains(t, out, "- Threshold: `0.3500`")
	assert.Contains(t, out, "- Max Score: `0.9123`")
	assert.Contains(t, out, "- Flagged Count: `1`")
	assert.Contains(t, out, "| Reference | Score | Suspected |")

	// Pipes inside names would break the table and are replaced.
	assert.Contains(t, out, "A / pipe-laden title")
	assert.NotContains(t, out, "A | pipe-laden")

	assert.Contains(t, out, "| 0.9123 | Y |")
	assert.Contains(t, out, "| 0.0200 | N |")
	// A row with no title falls back to the id.
	assert.Contains(t, out, "| ref-b |")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMarkdownTruncatesLongNames(t *testing.T) {
	result := sampleResult()
	result.Results[0].ReferenceTitle = strings.Repeat("x", 120)

	out := Markdown(result)

	assert.Contains(t, out, strings.Repeat("x", 80))
	assert.NotContains(t, out, strings.Repeat("x", 81))
}

func TestCSV(t *testing.T) {
	out := CSV(sampleResult())

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "reference_id", rows[0][0])
	assert.Equal(t, "top_evidence_snippet", rows[0][10])

	assert.Equal(t, "ref-a", rows[1][0])
	assert.Equal(t, "0.9123", rows[1][2])
	assert.Equal(t, "true", rows[1][3])
	assert.Equal(t, "64", rows[1][9])
	// Newlines in the snippet are flattened onto one line.
	assert.Equal(t, "multi line  snippet", rows[1][10])

	assert.Equal(t, "ref-b", rows[2][0])
	assert.Equal(t, "false", rows[2][3])
	assert.Equal(t, "", rows[2][10])
}

func TestCSVEmptyResults(t *testing.T) {
	out := CSV(domain.ReferenceCorpusResult{})

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
