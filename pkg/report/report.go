// Package report renders reference-corpus scan results into human-facing
// markdown and CSV documents.
package report

import (
	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/report"
)

// Markdown renders the scan as a markdown summary with a ranked results table.
func Markdown(result domain.ReferenceCorpusResult) string {
	return report.Markdown(result)
}

// CSV renders the scan as one CSV row per reference.
func CSV(result domain.ReferenceCorpusResult) string {
	return report.CSV(result)
}
