package similarity

// charNgrams builds the set of all overlapping character n-grams of the
// normalized text. A text shorter than n contributes itself as the single
// shingle; n <= 1 degrades to the character set.
func charNgrams(runes []rune, n int) map[string]struct{} {
	out := make(map[string]struct{})
	if len(runes) == 0 {
		return out
	}
	if n <= 1 {
		for _, r := range runes {
			out[string(r)] = struct{}{}
		}
		return out
	}
	if len(runes) < n {
		out[string(runes)] = struct{}{}
		return out
	}
	for i := 0; i+n <= len(runes); i++ {
		out[string(runes[i:i+n])] = struct{}{}
	}
	return out
}

// intersectionSize counts the shingles present in both sets.
func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
