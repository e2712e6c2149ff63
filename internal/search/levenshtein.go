package search

// DefaultFuzzyFloor is the similarity percentage below which a fuzzy
// comparison is rejected outright as noise rather than ranked low.
const DefaultFuzzyFloor = 60.0

// Levenshtein calculates the edit distance between two strings: the minimum
// number of single-character insertions, deletions, and substitutions needed
// to transform one into the other.
func Levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// FuzzyScore converts the edit distance between target and needle into a
// similarity percentage in [0,100]. Similarity below floor scores 0. Both
// strings empty also scores 0, which doubles as the division-by-zero guard.
func FuzzyScore(target, needle string, floor float64) float64 {
	maxLen := len([]rune(target))
	if n := len([]rune(needle)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}

	distance := Levenshtein(target, needle)
	similarity := float64(maxLen-distance) / float64(maxLen) * 100

	if similarity < floor {
		return 0
	}
	return similarity
}
