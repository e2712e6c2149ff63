package search

import (
	"log"
	"sort"
	"strings"

	"github.com/lanepos/register/internal/domain"
)

// Default ranking constants. The tier offsets guarantee that any hit in a
// higher tier outranks every hit in a lower tier regardless of intra-tier
// score; the values are tuned for register use and overridable via Config.
const (
	DefaultNameExactOffset     = 2000.0
	DefaultCategoryExactOffset = 1000.0
	DefaultBarcodeExactOffset  = 800.0
	DefaultNameFuzzyOffset     = 500.0
	DefaultCategoryFuzzyOffset = 300.0

	DefaultHighlightFloor   = 70.0
	DefaultMinFuzzyQueryLen = 3
	DefaultMaxResults       = 8
)

// Config holds the tunable ranking constants for the engine. Zero values fall
// back to the defaults above.
type Config struct {
	NameExactOffset     float64
	CategoryExactOffset float64
	BarcodeExactOffset  float64
	NameFuzzyOffset     float64
	CategoryFuzzyOffset float64
	FuzzyFloor          float64
	HighlightFloor      float64
	MinFuzzyQueryLen    int
	MaxResults          int
	EnableDebugLogging  bool
}

// Engine ranks an in-memory product snapshot against a typed query. A search
// call is synchronous, reads only its inputs, and retains no state between
// calls, so identical inputs always produce identical results.
type Engine struct {
	nameExactOffset     float64
	categoryExactOffset float64
	barcodeExactOffset  float64
	nameFuzzyOffset     float64
	categoryFuzzyOffset float64
	fuzzyFloor          float64
	highlightFloor      float64
	minFuzzyQueryLen    int
	maxResults          int
	enableDebugLogging  bool
}

// NewEngine creates a ranking engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		nameExactOffset:     cfg.NameExactOffset,
		categoryExactOffset: cfg.CategoryExactOffset,
		barcodeExactOffset:  cfg.BarcodeExactOffset,
		nameFuzzyOffset:     cfg.NameFuzzyOffset,
		categoryFuzzyOffset: cfg.CategoryFuzzyOffset,
		fuzzyFloor:          cfg.FuzzyFloor,
		highlightFloor:      cfg.HighlightFloor,
		minFuzzyQueryLen:    cfg.MinFuzzyQueryLen,
		maxResults:          cfg.MaxResults,
		enableDebugLogging:  cfg.EnableDebugLogging,
	}

	if e.nameExactOffset <= 0 {
		e.nameExactOffset = DefaultNameExactOffset
	}
	if e.categoryExactOffset <= 0 {
		e.categoryExactOffset = DefaultCategoryExactOffset
	}
	if e.barcodeExactOffset <= 0 {
		e.barcodeExactOffset = DefaultBarcodeExactOffset
	}
	if e.nameFuzzyOffset <= 0 {
		e.nameFuzzyOffset = DefaultNameFuzzyOffset
	}
	if e.categoryFuzzyOffset <= 0 {
		e.categoryFuzzyOffset = DefaultCategoryFuzzyOffset
	}
	if e.fuzzyFloor <= 0 {
		e.fuzzyFloor = DefaultFuzzyFloor
	}
	if e.highlightFloor <= 0 {
		e.highlightFloor = DefaultHighlightFloor
	}
	if e.minFuzzyQueryLen <= 0 {
		e.minFuzzyQueryLen = DefaultMinFuzzyQueryLen
	}
	if e.maxResults <= 0 {
		e.maxResults = DefaultMaxResults
	}

	return e
}

// candidate pairs a match with the data needed to highlight it after ranking.
type candidate struct {
	match     domain.Match
	fieldText string
	indices   []int
}

// Search ranks products against query and returns at most maxResults matches,
// highest score first, ties keeping original product-list order. maxResults
// of zero or below uses the configured default. An empty query, or a query
// matching nothing, yields an empty result; there are no failure semantics.
func (e *Engine) Search(query string, products []domain.Product, maxResults int) []domain.Match {
	if maxResults <= 0 {
		maxResults = e.maxResults
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	fuzzyEligible := len([]rune(Normalize(query))) >= e.minFuzzyQueryLen

	candidates := make([]candidate, 0, len(products))
	for _, p := range products {
		if c, ok := e.matchProduct(p, query, needle, fuzzyEligible); ok {
			candidates = append(candidates, c)
		}
	}

	if e.enableDebugLogging {
		log.Printf("[SEARCH] query=%q candidates=%d/%d fuzzyEligible=%v",
			query, len(candidates), len(products), fuzzyEligible)
	}

	// Stable sort keeps catalog order between equal scores, which makes
	// results deterministic for a fixed (query, snapshot) pair.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].match.Score > candidates[j].match.Score
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	matches := make([]domain.Match, 0, len(candidates))
	for _, c := range candidates {
		// Highlighting is cosmetic, so it runs only on the results that
		// survived ranking and truncation.
		if c.match.Kind == domain.MatchKindExact {
			c.match.Highlight = HighlightExact(c.fieldText, c.indices)
		} else {
			c.match.Highlight = HighlightFuzzy(c.fieldText, query, e.fuzzyFloor, e.highlightFloor)
		}
		matches = append(matches, c.match)
	}

	return matches
}

// matchProduct attempts the match tiers in strict priority order and stops at
// the first tier that produces a hit. Products matching no tier are omitted
// from results entirely rather than scored zero.
func (e *Engine) matchProduct(p domain.Product, query, needle string, fuzzyEligible bool) (candidate, bool) {
	needleLen := len([]rune(needle))

	nameLower := strings.ToLower(p.Name)
	if indices := FindMatches(nameLower, needle); indices != nil {
		score := scoreExactMatch(indices, needleLen, len([]rune(nameLower))) + e.nameExactOffset
		return e.exactCandidate(p, domain.MatchFieldName, p.Name, score, indices), true
	}

	if p.Category != "" {
		categoryLower := strings.ToLower(p.Category)
		if indices := FindMatches(categoryLower, needle); indices != nil {
			score := scoreExactMatch(indices, needleLen, len([]rune(categoryLower))) + e.categoryExactOffset
			return e.exactCandidate(p, domain.MatchFieldCategory, p.Category, score, indices), true
		}
	}

	if p.Barcode != "" {
		barcodeLower := strings.ToLower(p.Barcode)
		if indices := FindMatches(barcodeLower, needle); indices != nil {
			score := scoreExactMatch(indices, needleLen, len([]rune(barcodeLower))) + e.barcodeExactOffset
			return e.exactCandidate(p, domain.MatchFieldBarcode, p.Barcode, score, indices), true
		}
	}

	if !fuzzyEligible {
		return candidate{}, false
	}

	if s := WordFuzzyScore(p.Name, query, e.fuzzyFloor); s > 0 {
		return e.fuzzyCandidate(p, domain.MatchFieldName, p.Name, s+e.nameFuzzyOffset), true
	}

	if p.Category != "" {
		if s := WordFuzzyScore(p.Category, query, e.fuzzyFloor); s > 0 {
			return e.fuzzyCandidate(p, domain.MatchFieldCategory, p.Category, s+e.categoryFuzzyOffset), true
		}
	}

	return candidate{}, false
}

func (e *Engine) exactCandidate(p domain.Product, field domain.MatchField, text string, score float64, indices []int) candidate {
	return candidate{
		match: domain.Match{
			Product: p,
			Score:   score,
			Field:   field,
			Kind:    domain.MatchKindExact,
		},
		fieldText: text,
		indices:   indices,
	}
}

func (e *Engine) fuzzyCandidate(p domain.Product, field domain.MatchField, text string, score float64) candidate {
	return candidate{
		match: domain.Match{
			Product: p,
			Score:   score,
			Field:   field,
			Kind:    domain.MatchKindFuzzy,
		},
		fieldText: text,
	}
}
