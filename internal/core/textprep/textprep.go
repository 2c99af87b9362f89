// Package textprep implements the shared text-preparation layer both
// analyzers sit on: a compact character stream for shingling, a lower-cased
// token stream for hashing metrics, and a sentence-segmented view.
//
// Every operation truncates its input to a hard character cap before any
// further work so that pathological inputs cannot blow up the quadratic and
// hashing passes downstream.
package textprep

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default input caps, in code points.
const (
	DefaultShingleMaxChars  = 220000
	DefaultTokenMaxChars    = 260000
	DefaultSentenceMaxChars = 260000
)

var sentenceSplitRe = regexp.MustCompile(`[。！？!?；;]+|\n{2,}`)

// Truncate returns the first maxChars code points of text.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		// Byte length bounds code-point length, so short inputs pass through.
		return text
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}

func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// NormalizeForShingling lower-cases the text and strips every character that
// is not ASCII alphanumeric or a CJK ideograph. Punctuation insensitivity is
// deliberate: reformatting must not hide copied content from the shingle and
// winnowing metrics.
func NormalizeForShingling(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultShingleMaxChars
	}
	text = Truncate(text, maxChars)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || isCJK(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Tokenize lower-cases the text and extracts maximal [a-z0-9] runs plus
// single CJK ideographs as individual tokens. Mixed scripts tokenize
// independently: "api网关" yields "api", "网", "关".
func Tokenize(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultTokenMaxChars
	}
	text = Truncate(text, maxChars)

	var tokens []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		switch {
		case (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z'):
			run.WriteRune(r)
		case isCJK(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// SplitSentences splits on any run of terminal punctuation (。！？!?；;) or
// two-or-more consecutive newlines, dropping empty segments after trimming.
func SplitSentences(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultSentenceMaxChars
	}
	text = Truncate(text, maxChars)

	var sentences []string
	for _, part := range sentenceSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
