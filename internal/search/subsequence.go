package search

// Intra-tier scoring bonuses for exact subsequence matches
const (
	prefixBonus         = 1000.0 // first matched character sits at position 0
	consecutiveRunBonus = 10.0   // per character of each maximal consecutive run
	shortFieldFactor    = 2.0    // (100 - target length) * factor, not clamped
	densityFactor       = 100.0  // (needle length / target length) * factor
)

// FindMatches walks haystack left to right and reports the positions at which
// needle occurs as an in-order character subsequence. The full index list is
// returned only if every needle character matched; otherwise nil. There is no
// partial credit here, approximate matching belongs to the word-fuzzy path.
// Both sides must be pre-lowercased by the caller. Indices are rune positions.
func FindMatches(haystack, needle string) []int {
	if needle == "" {
		return nil
	}

	hay := []rune(haystack)
	indices := make([]int, 0, len(needle))
	cursor := 0

	for _, want := range needle {
		found := -1
		for i := cursor; i < len(hay); i++ {
			if hay[i] == want {
				found = i
				break
			}
		}
		if found < 0 {
			return nil
		}
		indices = append(indices, found)
		cursor = found + 1
	}

	return indices
}

// scoreExactMatch derives the fine-grained intra-tier score for an exact
// subsequence match. It rewards matches anchored at the start of the field,
// long consecutive runs of matched characters, short target fields (the short
// bonus deliberately goes negative for very long fields), and a high ratio of
// matched to total characters.
func scoreExactMatch(indices []int, needleLen, targetLen int) float64 {
	if len(indices) == 0 || targetLen == 0 {
		return 0
	}

	score := 0.0
	if indices[0] == 0 {
		score += prefixBonus
	}

	// Each maximal run of two or more consecutive matched positions earns the
	// run bonus per character; isolated matches earn nothing here.
	run := 1
	for i := 1; i <= len(indices); i++ {
		if i < len(indices) && indices[i] == indices[i-1]+1 {
			run++
			continue
		}
		if run >= 2 {
			score += float64(run) * consecutiveRunBonus
		}
		run = 1
	}

	score += (100 - float64(targetLen)) * shortFieldFactor
	score += float64(needleLen) / float64(targetLen) * densityFactor

	return score
}
