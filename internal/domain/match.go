package domain

// MatchField identifies which product field a search hit landed on.
type MatchField string

const (
	MatchFieldName     MatchField = "name"
	MatchFieldCategory MatchField = "category"
	MatchFieldBarcode  MatchField = "barcode"
)

// MatchKind distinguishes exact subsequence hits from word-level fuzzy hits.
type MatchKind string

const (
	MatchKindExact MatchKind = "exact"
	MatchKindFuzzy MatchKind = "fuzzy"
)

// Segment is one run of characters in a highlighted field. Non-match segments
// carry the text verbatim; match segments additionally carry the kind so the
// rendering layer can style exact and fuzzy hits differently. Segments never
// alter character content, only add boundaries.
type Segment struct {
	Text  string    `json:"text"`
	Match bool      `json:"match"`
	Kind  MatchKind `json:"kind,omitempty"`
}

// Match is one ranked search result. Matches are created fresh inside a single
// search call and discarded after rendering; they are never cached across calls.
type Match struct {
	Product   Product    `json:"product"`
	Score     float64    `json:"score"`
	Field     MatchField `json:"field"`
	Kind      MatchKind  `json:"kind"`
	Highlight []Segment  `json:"highlight,omitempty"`
	Addable   bool       `json:"addable"`
}
