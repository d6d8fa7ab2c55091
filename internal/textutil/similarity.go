package textutil

import "strings"

// DefaultThreshold is the similarity score used by duplicate detection when a
// call site does not ask for anything stricter.
const DefaultThreshold = 0.85

// Distance returns the Levenshtein edit distance between s1 and s2 after
// lowercasing both. It keeps a single row of len(s2)+1 costs.
func Distance(s1, s2 string) int {
	a := []rune(strings.ToLower(s1))
	b := []rune(strings.ToLower(s2))

	costs := make([]int, len(b)+1)
	for j := range costs {
		costs[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := costs[0]
		costs[0] = i
		for j := 1; j <= len(b); j++ {
			above := costs[j]
			if a[i-1] == b[j-1] {
				costs[j] = diag
			} else {
				costs[j] = min(diag, above, costs[j-1]) + 1
			}
			diag = above
		}
	}
	return costs[len(b)]
}

// Similarity normalizes Distance by the longer input. Two empty strings score 1.0.
func Similarity(s1, s2 string) float64 {
	maxLen := max(runeLen(strings.ToLower(s1)), runeLen(strings.ToLower(s2)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Distance(s1, s2))/float64(maxLen)
}

// AreSimilar reports whether s1 and s2 score at least threshold. It returns
// false whenever either input is empty.
func AreSimilar(s1, s2 string, threshold float64) bool {
	if s1 == "" || s2 == "" {
		return false
	}
	return Similarity(s1, s2) >= threshold
}

func runeLen(s string) int {
	return len([]rune(s))
}
