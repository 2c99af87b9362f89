package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnowingFingerprintsDeterministic(t *testing.T) {
	runes := []rune("thequickbrownfoxjumpsoverthelazydogandkeepsrunning")

	first := winnowingFingerprints(runes, 13, 17)
	second := winnowingFingerprints(runes, 13, 17)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestWinnowingFingerprintsShortText(t *testing.T) {
	// Shorter than k: the whole text hashes into one fingerprint.
	fps := winnowingFingerprints([]rune("short"), 13, 17)
	require.Len(t, fps, 1)
	assert.Equal(t, 0, fps[0].pos)
}

func TestWinnowingFingerprintsFewKgrams(t *testing.T) {
	// More than k characters but fewer k-grams than one window: the global
	// minimum is the only fingerprint.
	runes := []rune("thequickbrownfox")
	fps := winnowingFingerprints(runes, 13, 17)
	require.Len(t, fps, 1)
}

func TestWinnowingFingerprintsEmpty(t *testing.T) {
	assert.Nil(t, winnowingFingerprints(nil, 13, 17))
}

func TestWinnowingPositionsUnique(t *testing.T) {
	runes := []rune("abcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabc")
	fps := winnowingFingerprints(runes, 5, 4)

	seen := make(map[int]struct{})
	for _, fp := range fps {
		_, dup := seen[fp.pos]
		assert.False(t, dup, "position selected twice: %d", fp.pos)
		seen[fp.pos] = struct{}{}
	}
}

func TestSimhashIdenticalAndEmpty(t *testing.T) {
	tokens := []string{"the", "quick", "brown", "fox"}

	assert.Equal(t, simhash64(tokens), simhash64(tokens))
	assert.Equal(t, uint64(0), simhash64(nil))
	assert.Equal(t, 0, hammingDistance64(simhash64(tokens), simhash64(tokens)))
}

func TestHammingDistance64(t *testing.T) {
	assert.Equal(t, 0, hammingDistance64(0, 0))
	assert.Equal(t, 64, hammingDistance64(0, ^uint64(0)))
	assert.Equal(t, 1, hammingDistance64(0, 1))
}

func TestCharNgrams(t *testing.T) {
	t.Run("Overlapping grams", func(t *testing.T) {
		grams := charNgrams([]rune("abcd"), 3)
		assert.Len(t, grams, 2)
		assert.Contains(t, grams, "abc")
		assert.Contains(t, grams, "bcd")
	})

	t.Run("Short text yields itself", func(t *testing.T) {
		grams := charNgrams([]rune("ab"), 3)
		assert.Len(t, grams, 1)
		assert.Contains(t, grams, "ab")
	})

	t.Run("Unit grams degrade to character set", func(t *testing.T) {
		grams := charNgrams([]rune("aab"), 1)
		assert.Len(t, grams, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, charNgrams(nil, 3))
	})
}

func TestMatchingBlocks(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		blocks := matchingBlocks([]rune("abcdef"), []rune("abcdef"))
		require.Len(t, blocks, 1)
		assert.Equal(t, match{A: 0, B: 0, Size: 6}, blocks[0])
	})

	t.Run("Disjoint", func(t *testing.T) {
		blocks := matchingBlocks([]rune("aaaa"), []rune("bbbb"))
		assert.Empty(t, blocks)
	})

	t.Run("Split match", func(t *testing.T) {
		blocks := matchingBlocks([]rune("abcXdef"), []rune("abcYdef"))
		require.Len(t, blocks, 2)
		assert.Equal(t, match{A: 0, B: 0, Size: 3}, blocks[0])
		assert.Equal(t, match{A: 4, B: 4, Size: 3}, blocks[1])
	})
}

func TestSequenceStats(t *testing.T) {
	t.Run("Identical gives ratio one", func(t *testing.T) {
		ratio, longest := sequenceStats([]rune("abcdef"), []rune("abcdef"))
		assert.Equal(t, 1.0, ratio)
		assert.Equal(t, 6, longest)
	})

	t.Run("Empty gives zero", func(t *testing.T) {
		ratio, longest := sequenceStats(nil, nil)
		assert.Equal(t, 0.0, ratio)
		assert.Equal(t, 0, longest)
	})
}
