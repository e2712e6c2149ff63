package search

import (
	"strings"
	"unicode"

	"github.com/lanepos/register/internal/domain"
)

// HighlightExact splits text into display segments, wrapping each matched
// character individually and passing every other character through verbatim
// and in order. indices are rune positions as returned by FindMatches.
func HighlightExact(text string, indices []int) []domain.Segment {
	runes := []rune(text)
	matched := make(map[int]bool, len(indices))
	for _, i := range indices {
		matched[i] = true
	}

	var segments []domain.Segment
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, domain.Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	for i, r := range runes {
		if matched[i] {
			flush()
			segments = append(segments, domain.Segment{
				Text:  string(r),
				Match: true,
				Kind:  domain.MatchKindExact,
			})
			continue
		}
		plain.WriteRune(r)
	}
	flush()

	return segments
}

// HighlightFuzzy re-tokenizes text, keeping its original punctuation and
// whitespace as passthrough segments, and marks each word-like segment whose
// best per-word score against the query's words exceeds highlightFloor. The
// highlight floor is stricter than the match floor because highlighting is
// cosmetic and should not over-mark marginal matches.
func HighlightFuzzy(text, query string, fuzzyFloor, highlightFloor float64) []domain.Segment {
	queryWords := NormalizedWords(query)

	var segments []domain.Segment
	runes := []rune(text)

	for i := 0; i < len(runes); {
		wordLike := isWordRune(runes[i])
		j := i
		for j < len(runes) && isWordRune(runes[j]) == wordLike {
			j++
		}
		segment := string(runes[i:j])

		if wordLike && bestQueryWordScore(segment, queryWords, fuzzyFloor) > highlightFloor {
			segments = append(segments, domain.Segment{
				Text:  segment,
				Match: true,
				Kind:  domain.MatchKindFuzzy,
			})
		} else {
			segments = append(segments, domain.Segment{Text: segment})
		}
		i = j
	}

	return segments
}

// bestQueryWordScore scores one word of the highlighted text against every
// query word and returns the best score.
func bestQueryWordScore(word string, queryWords []string, floor float64) float64 {
	target := strings.ToLower(word)

	best := 0.0
	for _, qw := range queryWords {
		if len([]rune(qw)) < minFuzzyWordLen {
			continue
		}
		if s := wordScore(target, qw, floor); s > best {
			best = s
		}
	}
	return best
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
