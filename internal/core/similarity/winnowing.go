package similarity

import "github.com/textintel/go_content_authenticity/internal/core/digest"

// fingerprint is one selected (hash, position) pair of a winnowed document.
type fingerprint struct {
	hash uint64
	pos  int
}

// winnowingFingerprints selects a representative subset of k-gram hashes via
// rightmost-minimum winnowing: hash every k-length substring, slide a window
// of w consecutive hashes, and keep the window minimum, breaking ties toward
// the rightmost position. Overlapping windows that re-select a position
// contribute only once.
func winnowingFingerprints(runes []rune, k, w int) []fingerprint {
	if len(runes) == 0 {
		return nil
	}
	if k < 3 {
		k = 3
	}
	if w < 1 {
		w = 1
	}
	if len(runes) < k {
		return []fingerprint{{hash: digest.Sum64(string(runes)), pos: 0}}
	}

	hashes := make([]uint64, 0, len(runes)-k+1)
	for i := 0; i+k <= len(runes); i++ {
		hashes = append(hashes, digest.Sum64(string(runes[i:i+k])))
	}

	// Fallback when the number of k-grams does not fill one window: the
	// single global minimum (rightmost on ties) is the only fingerprint.
	if len(hashes) <= w {
		minHash := hashes[0]
		pos := 0
		for i, h := range hashes {
			if h <= minHash {
				minHash = h
				pos = i
			}
		}
		return []fingerprint{{hash: minHash, pos: pos}}
	}

	out := make([]fingerprint, 0, len(hashes)/w+1)
	picked := make(map[int]struct{})
	for start := 0; start+w <= len(hashes); start++ {
		minHash := hashes[start]
		rel := 0
		for j := 1; j < w; j++ {
			if hashes[start+j] <= minHash {
				minHash = hashes[start+j]
				rel = j
			}
		}
		abs := start + rel
		if _, ok := picked[abs]; ok {
			continue
		}
		picked[abs] = struct{}{}
		out = append(out, fingerprint{hash: minHash, pos: abs})
	}
	return out
}

// fingerprintHashSet collapses fingerprints to their distinct hash values.
func fingerprintHashSet(fps []fingerprint) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(fps))
	for _, fp := range fps {
		out[fp.hash] = struct{}{}
	}
	return out
}
