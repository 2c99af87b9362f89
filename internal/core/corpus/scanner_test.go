package corpus

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adtextprep "github.com/textintel/go_content_authenticity/internal/adapters/textprep"
	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/core/similarity"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Close() error                  { return nil }

func newTestScanner(t *testing.T, threshold float64, topK int) *Scanner {
	t.Helper()
	prep := adtextprep.NewDefaultPreparer()
	calc, err := similarity.NewCalculator(similarity.DefaultConfig(), threshold, nopLogger{}, prep)
	require.NoError(t, err)
	return NewScanner(calc, prep, nopLogger{}, topK)
}

func TestScanRanksAndAggregates(t *testing.T) {
	scanner := newTestScanner(t, 0.30, DefaultTopK)

	source := "The quick brown fox jumps over the lazy dog near the river bank at dawn."
	references := []domain.ReferenceRecord{
		{ID: "exact", Title: "Exact copy", Text: source},
		{ID: "unrelated", Title: "Cooking notes", Text: "Simmer the onions slowly until they caramelize in the heavy pot."},
		{ID: "partial", Title: "Partial copy", Text: "The quick brown fox jumps over the lazy dog, said the announcer at the fair."},
	}

	result := scanner.Scan(context.Background(), source, references)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "exact", result.Results[0].ReferenceID)
	assert.Equal(t, 1.0, result.Results[0].Score)
	assert.Equal(t, "partial", result.Results[1].ReferenceID)
	assert.Equal(t, "unrelated", result.Results[2].ReferenceID)

	assert.Equal(t, 1.0, result.MaxScore)
	assert.True(t, result.Suspected)
	assert.GreaterOrEqual(t, result.FlaggedCount, 2)
	assert.Equal(t, 3, result.TotalReferences)
	assert.Greater(t, result.SourceChars, 0)

	cfg := similarity.DefaultConfig()
	assert.Equal(t, cfg.NgramSize, result.Config.NgramSize)
	assert.Equal(t, cfg.WinnowingK, result.Config.WinnowingK)
	assert.Equal(t, cfg.WinnowingWindow, result.Config.WinnowingWindow)
	assert.Equal(t, cfg.MinMatchChars, result.Config.MinMatchChars)
}

func TestScanSkipsBlankBodiesAndDefaultsIdentity(t *testing.T) {
	scanner := newTestScanner(t, similarity.DefaultThreshold, DefaultTopK)

	references := []domain.ReferenceRecord{
		{ID: "blank", Text: "   \n  "},
		{Text: "The quick brown fox jumps over the lazy dog."},
		{ID: "  named  ", Title: "", Text: "Another reference body with plenty of words."},
	}

	result := scanner.Scan(context.Background(), "The quick brown fox jumps over the lazy dog.", references)

	require.Len(t, result.Results, 2)
	ids := []string{result.Results[0].ReferenceID, result.Results[1].ReferenceID}
	assert.Contains(t, ids, "ref_2") // positional default follows input index
	assert.Contains(t, ids, "named")
	for _, row := range result.Results {
		assert.NotEmpty(t, row.ReferenceTitle)
	}
}

func TestScanTruncatesToTopK(t *testing.T) {
	scanner := newTestScanner(t, similarity.DefaultThreshold, 2)

	source := "The quick brown fox jumps over the lazy dog near the river bank."
	var references []domain.ReferenceRecord
	for i := 0; i < 5; i++ {
		references = append(references, domain.ReferenceRecord{
			ID:   fmt.Sprintf("ref-%d", i),
			Text: source + strings.Repeat(" extra filler words", i),
		})
	}

	result := scanner.Scan(context.Background(), source, references)

	assert.Len(t, result.Results, 2)
	assert.Equal(t, 2, result.TotalReferences)
	// Top row is the exact copy, unpadded.
	assert.Equal(t, "ref-0", result.Results[0].ReferenceID)
}

func TestScanEmptyCorpus(t *testing.T) {
	scanner := newTestScanner(t, similarity.DefaultThreshold, DefaultTopK)

	result := scanner.Scan(context.Background(), "some source text", nil)

	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.TotalReferences)
	assert.Equal(t, 0.0, result.MaxScore)
	assert.False(t, result.Suspected)
	assert.Equal(t, 0, result.FlaggedCount)
}

func TestNormalizeRecords(t *testing.T) {
	records := []domain.ReferenceRecord{
		{ID: "", Title: "", Text: "  first body \n"},
		{ID: "blank", Text: "   "},
		{ID: strings.Repeat("x", 200), Title: strings.Repeat("t", 300), Text: "second body"},
	}

	out := NormalizeRecords(records, 0)

	require.Len(t, out, 2)
	assert.Equal(t, "ref_1", out[0].ID)
	assert.Equal(t, "ref_1", out[0].Title) // title defaults to the id
	assert.Equal(t, "first body", out[0].Text)
	assert.Len(t, out[1].ID, 120)
	assert.Len(t, out[1].Title, 200)
}

func TestNormalizeRecordsMaxCount(t *testing.T) {
	records := []domain.ReferenceRecord{
		{ID: "a", Text: "body a"},
		{ID: "b", Text: "body b"},
		{ID: "c", Text: "body c"},
	}

	out := NormalizeRecords(records, 2)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestDedupeRecords(t *testing.T) {
	records := []domain.ReferenceRecord{
		{ID: "doc", Text: "first"},
		{ID: "doc", Text: "second"},
		{ID: "doc", Text: "third"},
		{ID: "doc_2", Text: "fourth"},
	}

	out := DedupeRecords(records)

	require.Len(t, out, 4)
	assert.Equal(t, "doc", out[0].ID)
	assert.Equal(t, "doc_2", out[1].ID)
	assert.Equal(t, "doc_3", out[2].ID)
	// The explicit doc_2 arrives after the suffixed one and gets bumped.
	assert.Equal(t, "doc_2_2", out[3].ID)
}
