package filetree

import "strings"

// FuzzyMatch reports whether query is a case-insensitive subsequence
// of candidate. An empty query matches everything.
func FuzzyMatch(query, candidate string) bool {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)
	i := 0
	for j := 0; j < len(c) && i < len(q); j++ {
		if c[j] == q[i] {
			i++
		}
	}
	return i == len(q)
}
