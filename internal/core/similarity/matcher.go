package similarity

import "sort"

// match is one contiguous block of identical characters between two texts:
// a[A:A+Size] == b[B:B+Size].
type match struct {
	A    int
	B    int
	Size int
}

// matchingBlocks finds the non-overlapping matching blocks between a and b
// by recursively locating the longest common contiguous block, then matching
// the regions to its left and right. Adjacent blocks are merged. Blocks are
// returned sorted by position.
func matchingBlocks(a, b []rune) []match {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type region struct {
		alo, ahi, blo, bhi int
	}
	queue := []region{{0, len(a), 0, len(b)}}
	var found []match
	for len(queue) > 0 {
		reg := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		m := longestMatch(a, b2j, reg.alo, reg.ahi, reg.blo, reg.bhi)
		if m.Size == 0 {
			continue
		}
		found = append(found, m)
		if reg.alo < m.A && reg.blo < m.B {
			queue = append(queue, region{reg.alo, m.A, reg.blo, m.B})
		}
		if m.A+m.Size < reg.ahi && m.B+m.Size < reg.bhi {
			queue = append(queue, region{m.A + m.Size, reg.ahi, m.B + m.Size, reg.bhi})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].A != found[j].A {
			return found[i].A < found[j].A
		}
		return found[i].B < found[j].B
	})

	// Merge blocks that ended up adjacent after the recursion.
	merged := found[:0]
	for _, m := range found {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.A+last.Size == m.A && last.B+last.Size == m.B {
				last.Size += m.Size
				continue
			}
		}
		merged = append(merged, m)
	}
	return merged
}

// longestMatch finds the longest contiguous matching block within
// a[alo:ahi] x b[blo:bhi], preferring the earliest on ties.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) match {
	best := match{A: alo, B: blo}
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.Size {
				best = match{A: i - k + 1, B: j - k + 1, Size: k}
			}
		}
		j2len = newJ2len
	}
	return best
}

// sequenceStats reduces the matching blocks to the standard 2M/T alignment
// ratio and the size of the single largest block.
func sequenceStats(a, b []rune) (ratio float64, longest int) {
	total := len(a) + len(b)
	if total == 0 {
		return 0, 0
	}
	matched := 0
	for _, m := range matchingBlocks(a, b) {
		matched += m.Size
		if m.Size > longest {
			longest = m.Size
		}
	}
	return 2.0 * float64(matched) / float64(total), longest
}
