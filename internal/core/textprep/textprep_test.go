package textprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForShingling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Lowercases ASCII letters",
			input:    "Hello WORLD",
			expected: "helloworld",
		},
		{
			name:     "Drops whitespace and punctuation",
			input:    "a, b; c.\n d!",
			expected: "abcd",
		},
		{
			name:     "Keeps digits",
			input:    "Version 2.0 build 17",
			expected: "version20build17",
		},
		{
			name:     "Keeps CJK characters",
			input:    "机器 学习，模型。",
			expected: "机器学习模型",
		},
		{
			name:     "Mixed script",
			input:    "AI 模型 v3!",
			expected: "ai模型v3",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeForShingling(tc.input, 0))
		})
	}
}

func TestNormalizeForShinglingCap(t *testing.T) {
	long := strings.Repeat("aB ", DefaultShingleMaxChars)
	got := NormalizeForShingling(long, 0)
	// Truncation happens before normalization, so the output is bounded by
	// the cap but can be shorter once separators are dropped.
	assert.LessOrEqual(t, len([]rune(got)), DefaultShingleMaxChars)
	assert.True(t, strings.HasPrefix(got, "abab"))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "ASCII words lowercased",
			input:    "The Quick brown-Fox",
			expected: []string{"the", "quick", "brown", "fox"},
		},
		{
			name:     "Alphanumeric runs stay joined",
			input:    "gpt4 turbo 2024edition",
			expected: []string{"gpt4", "turbo", "2024edition"},
		},
		{
			name:     "CJK characters are single tokens",
			input:    "机器学习",
			expected: []string{"机", "器", "学", "习"},
		},
		{
			name:     "CJK breaks an ASCII run",
			input:    "ai模型test",
			expected: []string{"ai", "模", "型", "test"},
		},
		{
			name:     "Punctuation only",
			input:    "!!! ... ???",
			expected: nil,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input, 0)
			if tc.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Chinese terminal punctuation",
			input:    "你好。今天天气不错！要出门吗？",
			expected: []string{"你好", "今天天气不错", "要出门吗"},
		},
		{
			name:     "ASCII terminal punctuation",
			input:    "First sentence! Second sentence? Third;",
			expected: []string{"First sentence", "Second sentence", "Third"},
		},
		{
			name:     "Double newline split",
			input:    "paragraph one\n\nparagraph two",
			expected: []string{"paragraph one", "paragraph two"},
		},
		{
			name:     "Single newline does not split",
			input:    "line one\nline two",
			expected: []string{"line one\nline two"},
		},
		{
			name:     "Runs of punctuation collapse",
			input:    "wow!!!really??",
			expected: []string{"wow", "really"},
		},
		{
			name:     "Whitespace-only segments dropped",
			input:    "。 。 a 。",
			expected: []string{"a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitSentences(tc.input, 0))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Run("Under cap unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 10))
	})

	t.Run("Rune-safe truncation", func(t *testing.T) {
		got := Truncate("机器学习模型", 3)
		require.Equal(t, "机器学", got)
	})

	t.Run("Non-positive cap unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 0))
	})
}
