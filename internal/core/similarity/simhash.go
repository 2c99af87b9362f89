package similarity

import (
	"math/bits"

	"github.com/textintel/go_content_authenticity/internal/core/digest"
)

// simhash64 builds a 64-bit bit-vote signature over the token stream: each
// bit position tallies +1 for every token whose hash has the bit set and -1
// otherwise, and the final bit is 1 when the tally is >= 0. An empty token
// stream yields the zero signature.
func simhash64(tokens []string) uint64 {
	if len(tokens) == 0 {
		return 0
	}
	var vec [64]int
	for _, token := range tokens {
		hv := digest.Sum64(token)
		for bit := 0; bit < 64; bit++ {
			if (hv>>uint(bit))&1 == 1 {
				vec[bit]++
			} else {
				vec[bit]--
			}
		}
	}
	var out uint64
	for bit := 0; bit < 64; bit++ {
		if vec[bit] >= 0 {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// hammingDistance64 counts differing bits between two signatures.
func hammingDistance64(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
