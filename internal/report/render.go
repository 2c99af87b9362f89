// Package report renders a reference-corpus scan into short human-facing
// documents. The renderers are pure string producers; persisting the output
// is the caller's concern.
package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
)

const maxSnippetChars = 200

// Markdown renders the scan as a markdown summary with a ranked results
// table.
func Markdown(result domain.ReferenceCorpusResult) string {
	var sb strings.Builder
	sb.WriteString("# Reference Similarity Scan Report\n\n")
	fmt.Fprintf(&sb, "- Threshold: `%.4f`\n", result.Threshold)
	fmt.Fprintf(&sb, "- Max Score: `%.4f`\n", result.MaxScore)
	fmt.Fprintf(&sb, "- Flagged Count: `%d`\n", result.FlaggedCount)
	fmt.Fprintf(&sb, "- Total References: `%d`\n", result.TotalReferences)
	fmt.Fprintf(&sb, "- Source Chars: `%d`\n", result.SourceChars)
	sb.WriteString("\n## Top Results\n\n")
	sb.WriteString("| Reference | Score | Suspected | Containment | Jaccard | Winnowing | Longest Match |\n")
	sb.WriteString("|---|---:|:---:|---:|---:|---:|---:|\n")
	for _, row := range result.Results {
		name := row.ReferenceTitle
		if name == "" {
			name = row.ReferenceID
		}
		name = strings.ReplaceAll(name, "|", "/")
		if runes := []rune(name); len(runes) > 80 {
			name = string(runes[:80])
		}
		suspected := "N"
		if row.Suspected {
			suspected = "Y"
		}
		fmt.Fprintf(&sb, "| %s | %.4f | %s | %.4f | %.4f | %.4f | %d |\n",
			name,
			row.Score,
			suspected,
			row.Metrics.Containment,
			row.Metrics.JaccardResemblance,
			row.Metrics.WinnowingOverlap,
			row.Metrics.LongestMatchChars,
		)
	}
	return strings.TrimSpace(sb.String()) + "\n"
}

// CSV renders the scan as one row per reference, with the leading evidence
// snippet flattened onto a single line.
func CSV(result domain.ReferenceCorpusResult) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{
		"reference_id",
		"reference_title",
		"score",
		"suspected",
		"containment",
		"jaccard_resemblance",
		"winnowing_overlap",
		"simhash_similarity",
		"sequence_ratio",
		"longest_match_chars",
		"top_evidence_snippet",
	})
	for _, row := range result.Results {
		snippet := ""
		if len(row.Evidence) > 0 {
			snippet = row.Evidence[0].Snippet
			snippet = strings.ReplaceAll(snippet, "\r", " ")
			snippet = strings.ReplaceAll(snippet, "\n", " ")
			if runes := []rune(snippet); len(runes) > maxSnippetChars {
				snippet = string(runes[:maxSnippetChars])
			}
		}
		_ = w.Write([]string{
			row.ReferenceID,
			row.ReferenceTitle,
			formatFloat(row.Score),
			strconv.FormatBool(row.Suspected),
			formatFloat(row.Metrics.Containment),
			formatFloat(row.Metrics.JaccardResemblance),
			formatFloat(row.Metrics.WinnowingOverlap),
			formatFloat(row.Metrics.SimhashSimilarity),
			formatFloat(row.Metrics.SequenceRatio),
			strconv.Itoa(row.Metrics.LongestMatchChars),
			snippet,
		})
	}
	w.Flush()
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
