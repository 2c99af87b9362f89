package authenticity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textintel/go_content_authenticity/pkg/airate"
	"github.com/textintel/go_content_authenticity/pkg/similarity"
)

func TestComparePair(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		reference string
		suspected bool
	}{
		{
			name:      "Identical texts",
			source:    "The quick brown fox jumps over the lazy dog near the river bank.",
			reference: "The quick brown fox jumps over the lazy dog near the river bank.",
			suspected: true,
		},
		{
			name:      "Unrelated texts",
			source:    "Quantum entanglement links the states of particle pairs across distance.",
			reference: "Sourdough starters need regular feeding with flour and warm water.",
			suspected: false,
		},
		{
			name:      "Empty source",
			source:    "",
			reference: "Some reference text with enough content to matter.",
			suspected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ComparePair(context.Background(), tc.source, tc.reference)
			require.NoError(t, err)
			assert.Equal(t, tc.suspected, result.Suspected)
		})
	}
}

func TestComparePairWithOptions(t *testing.T) {
	result, err := ComparePair(context.Background(),
		"The quick brown fox jumps over the lazy dog.",
		"The quick brown fox jumps over the lazy dog, said the announcer.",
		similarity.WithThreshold(0.2),
		similarity.WithNgramSize(5),
	)
	require.NoError(t, err)
	assert.Equal(t, 0.2, result.Threshold)
	assert.True(t, result.Suspected)
}

func TestScanReferences(t *testing.T) {
	source := "The quick brown fox jumps over the lazy dog near the river bank at dawn."
	references := []ReferenceRecord{
		{ID: "copy", Text: source},
		{ID: "other", Text: "Simmer the onions slowly until they caramelize in the heavy pot."},
	}

	result, err := ScanReferences(context.Background(), source, references, similarity.WithTopK(1))
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "copy", result.Results[0].ReferenceID)
	assert.Equal(t, 1.0, result.MaxScore)
	assert.True(t, result.Suspected)
}

func TestEstimateAIRate(t *testing.T) {
	result, err := EstimateAIRate(context.Background(),
		"A short and unremarkable sentence about the weather.")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Confidence)
	assert.False(t, result.SuspectedAI)
	assert.NotEmpty(t, result.Evidence)
	assert.NotEmpty(t, result.Note)
}

func TestEstimateAIRateWithThreshold(t *testing.T) {
	result, err := EstimateAIRate(context.Background(),
		"Some text to estimate.", airate.WithThreshold(0.9))
	require.NoError(t, err)
	assert.Equal(t, 0.9, result.Threshold)
}
