package util

// HasPrefixOrSuffix checks if s1 contains s2 as either a prefix or suffix.
// Returns false if s2 is empty or s1 is not longer than s2.
func HasPrefixOrSuffix(s1, s2 string) bool {
	if len(s2) == 0 || len(s1) <= len(s2) {
		return false
	}
	return s1[:len(s2)] == s2 || s1[len(s1)-len(s2):] == s2
}

// EditDistance returns the Levenshtein distance between a and b, in bytes.
func EditDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Similar returns the candidates within maxDistance edits of word, or that
// share a prefix/suffix with it, in candidate order.
func Similar(word string, candidates []string, maxDistance int) []string {
	var out []string
	for _, c := range candidates {
		if c == word {
			continue
		}
		if EditDistance(word, c) <= maxDistance || HasPrefixOrSuffix(c, word) || HasPrefixOrSuffix(word, c) {
			out = append(out, c)
		}
	}
	return out
}
