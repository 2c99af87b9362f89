// Package digest provides the stable 64-bit hash shared by the winnowing
// fingerprinter and the SimHash signature. Any fixed, well-distributed
// 64-bit hash works here; the engine contract is the algorithm shape, not a
// particular hash family.
package digest

import "github.com/cespare/xxhash/v2"

// Sum64 returns the stable 64-bit digest of s.
func Sum64(s string) uint64 {
	return xxhash.Sum64String(s)
}
