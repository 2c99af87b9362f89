package similarity

import (
	"sort"
	"strings"

	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/core/textprep"
)

const (
	maxEvidenceBlocks = 5
	maxSnippetChars   = 140
	minEvidenceFloor  = 12
)

// evidenceBlocks re-runs the block matcher on the original, non-normalized
// texts so offsets and snippets stay human-readable, punctuation included.
// Blocks below max(12, minMatchChars) are discarded; the survivors are
// ranked by size, deduplicated by offset pair, and capped at five.
func evidenceBlocks(source, reference string, minMatchChars int) []domain.EvidenceBlock {
	out := []domain.EvidenceBlock{}
	if source == "" || reference == "" {
		return out
	}
	src := []rune(textprep.Truncate(source, textprep.DefaultShingleMaxChars))
	ref := []rune(textprep.Truncate(reference, textprep.DefaultShingleMaxChars))

	floor := minMatchChars
	if floor < minEvidenceFloor {
		floor = minEvidenceFloor
	}
	blocks := matchingBlocks(src, ref)
	kept := blocks[:0]
	for _, b := range blocks {
		if b.Size >= floor {
			kept = append(kept, b)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Size > kept[j].Size })

	seen := make(map[[2]int]struct{}, maxEvidenceBlocks)
	for _, b := range kept {
		if len(out) == maxEvidenceBlocks {
			break
		}
		key := [2]int{b.A, b.B}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		n := b.Size
		if n > maxSnippetChars {
			n = maxSnippetChars
		}
		out = append(out, domain.EvidenceBlock{
			SourceStart:    b.A,
			ReferenceStart: b.B,
			MatchChars:     b.Size,
			Snippet:        strings.TrimSpace(string(src[b.A : b.A+n])),
		})
	}
	return out
}
