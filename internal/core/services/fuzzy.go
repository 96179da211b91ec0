package services

// fuzzySimilarity scores approximate string similarity between the query
// tokens and a fragment's tokens, in [0,1]. Each query token contributes
// its best per-token similarity; the fragment score is the average, so a
// one-token typo in a two-token query still scores around 0.9.
func fuzzySimilarity(queryTokens, fragmentTokens []string) float64 {
	if len(queryTokens) == 0 || len(fragmentTokens) == 0 {
		return 0
	}

	var total float64
	for _, qt := range queryTokens {
		best := 0.0
		for _, ft := range fragmentTokens {
			if sim := tokenSimilarity(qt, ft); sim > best {
				best = sim
				if best == 1 {
					break
				}
			}
		}
		total += best
	}
	return total / float64(len(queryTokens))
}

// tokenSimilarity is 1 - normalizedEditDistance, in [0,1].
func tokenSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(longest)
}

// levenshteinDistance computes the edit distance between two strings
// using the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
