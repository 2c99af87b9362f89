package corpus

import (
	"fmt"
	"strings"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
)

const (
	maxRecordIDChars    = 120
	maxRecordTitleChars = 200
)

// NormalizeRecords maps loosely shaped reference records into strict ones:
// ids default to ref_{index+1} and are capped at 120 characters, titles
// default to the id and are capped at 200, bodies are trimmed of surrounding
// whitespace. Records with blank bodies are dropped. maxCount <= 0 keeps
// every record.
func NormalizeRecords(records []domain.ReferenceRecord, maxCount int) []domain.ReferenceRecord {
	out := make([]domain.ReferenceRecord, 0, len(records))
	for idx, rec := range records {
		if maxCount > 0 && idx >= maxCount {
			break
		}
		text := strings.TrimSpace(rec.Text)
		if text == "" {
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
		out = append(out, domain.ReferenceRecord{ID: id, Title: title, Text: text})
	}
	return out
}

// DedupeRecords resolves duplicate ids by appending _2, _3, ... suffixes,
// keeping input order. Records with blank bodies are dropped.
func DedupeRecords(records []domain.ReferenceRecord) []domain.ReferenceRecord {
	out := make([]domain.ReferenceRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for idx, rec := range records {
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			id = fmt.Sprintf("ref_%d", idx+1)
		}
		if _, dup := seen[id]; dup {
			suffix := 2
			candidate := fmt.Sprintf("%s_%d", id, suffix)
			for {
				if _, dup := seen[candidate]; !dup {
					break
				}
				suffix++
				candidate = fmt.Sprintf("%s_%d", id, suffix)
			}
			id = candidate
		}
		seen[id] = struct{}{}
		title := capRunes(strings.TrimSpace(rec.Title), maxRecordTitleChars)
		if title == "" {
			title = id
		}
		out = append(out, domain.ReferenceRecord{
			ID:    capRunes(id, maxRecordIDChars),
			Title: title,
			Text:  rec.Text,
		})
	}
	return out
}

func capRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
