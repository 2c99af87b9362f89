package airate

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Discourse markers often overused in templated model output. The detector
// targets Chinese prose, so the table stays Chinese.
var connectors = []string{
	"首先",
	"其次",
	"再次",
	"最后",
	"此外",
	"另外",
	"总之",
	"综上",
	"需要指出",
	"值得注意",
	"因此",
	"与此同时",
	"一方面",
	"另一方面",
	"在此基础上",
}

var (
	terminalPunctRe = regexp.MustCompile(`[。！？!?；;]`)
	headingLineRe   = regexp.MustCompile(`^(#+\s+|\d+[.)、]\s*|[一二三四五六七八九十]+、)`)
)

// entropyNormalized is the Shannon entropy of the token frequency
// distribution normalized by log2 of the distinct token count. A stream with
// at most one distinct token carries no information and scores 0.
func entropyNormalized(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	freq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freq[token]++
	}
	if len(freq) <= 1 {
		return 0
	}
	total := float64(len(tokens))
	h := 0.0
	for _, count := range freq {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	hMax := math.Log2(float64(len(freq)))
	if hMax <= 0 {
		return 0
	}
	return clamp(h / hMax)
}

// sentenceLengthCV is the coefficient of variation (population std / mean)
// of per-sentence token counts. A single sentence has no variation.
func sentenceLengthCV(sentenceTokenCounts []int) float64 {
	if len(sentenceTokenCounts) <= 1 {
		return 0
	}
	sum := 0
	for _, n := range sentenceTokenCounts {
		sum += n
	}
	mean := float64(sum) / float64(len(sentenceTokenCounts))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, n := range sentenceTokenCounts {
		d := float64(n) - mean
		variance += d * d
	}
	variance /= float64(len(sentenceTokenCounts))
	return math.Sqrt(variance) / mean
}

// repeatedNgramRatio sums the surplus occurrences of every distinct n-token
// gram and normalizes by the total gram positions.
func repeatedNgramRatio(tokens []string, n int) float64 {
	if n < 2 {
		n = 2
	}
	if n > 6 {
		n = 6
	}
	if len(tokens) < n {
		return 0
	}
	counts := make(map[string]int)
	grams := 0
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
		grams++
	}
	repeated := 0
	for _, c := range counts {
		if c > 1 {
			repeated += c - 1
		}
	}
	return float64(repeated) / float64(grams)
}

// dominantPunctuationRatio is the share of the most frequent sentence
// terminator among all terminators.
func dominantPunctuationRatio(text string) float64 {
	marks := terminalPunctRe.FindAllString(text, -1)
	if len(marks) == 0 {
		return 0
	}
	freq := make(map[string]int, 8)
	top := 0
	for _, mark := range marks {
		freq[mark]++
		if freq[mark] > top {
			top = freq[mark]
		}
	}
	return float64(top) / float64(len(marks))
}

// connectorDensityPer1k counts discourse-connector occurrences per thousand
// characters.
func connectorDensityPer1k(text string) float64 {
	if text == "" {
		return 0
	}
	hits := 0
	for _, connector := range connectors {
		hits += strings.Count(text, connector)
	}
	chars := utf8.RuneCountInString(text)
	if chars < 1 {
		chars = 1
	}
	return float64(hits) * 1000.0 / float64(chars)
}

// templateHeadingDensity is the fraction of non-blank lines that look like
// headings: markdown #, "1." / "1、" numbering, or CJK ordinals ("一、").
func templateHeadingDensity(text string) float64 {
	lines := 0
	hits := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines++
		if headingLineRe.MatchString(line) {
			hits++
		}
	}
	if lines == 0 {
		return 0
	}
	return float64(hits) / float64(lines)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
