package search

import "strings"

// Word-level scoring constants
const (
	minFuzzyWordLen  = 2     // needle words shorter than this are too noisy to fuzzy-match
	exactWordScore   = 100.0 // needle word equals a target word
	prefixWordFactor = 90.0  // mutual prefix, scaled by the length ratio
)

// WordFuzzyScore compares needle against target word by word and aggregates
// into a phrase-level score. Each needle word of at least minFuzzyWordLen
// characters is scored against its single best target word, taking the
// maximum of exact equality, mutual-prefix, and edit-distance similarity.
// The sum is divided by the total needle word count, so unmatched extra
// query tokens drag the average down even when matched tokens score
// perfectly. A query whose words are all too short scores 0.
func WordFuzzyScore(target, needle string, floor float64) float64 {
	targetWords := NormalizedWords(target)
	needleWords := NormalizedWords(needle)
	if len(targetWords) == 0 || len(needleWords) == 0 {
		return 0
	}

	total := 0.0
	scoredAny := false

	for _, nw := range needleWords {
		if len([]rune(nw)) < minFuzzyWordLen {
			continue
		}
		scoredAny = true

		best := 0.0
		for _, tw := range targetWords {
			if s := wordScore(tw, nw, floor); s > best {
				best = s
			}
		}
		total += best
	}

	if !scoredAny {
		return 0
	}
	return total / float64(len(needleWords))
}

// wordScore compares a single needle word against a single target word,
// returning the best of the three match strategies.
func wordScore(target, needle string, floor float64) float64 {
	if target == needle {
		return exactWordScore
	}

	best := 0.0
	if strings.HasPrefix(target, needle) || strings.HasPrefix(needle, target) {
		shorter := len([]rune(needle))
		longer := len([]rune(target))
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		best = float64(shorter) / float64(longer) * prefixWordFactor
	}

	if s := FuzzyScore(target, needle, floor); s > best {
		best = s
	}
	return best
}
