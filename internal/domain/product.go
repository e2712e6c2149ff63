package domain

// Product represents one sellable item from the backend catalog.
// The search core treats products as a read-only snapshot and never mutates them.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// InStock reports whether the product has remaining stock.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// AddablePredicate is a caller-supplied eligibility check used to annotate
// search results (e.g. stock or age-restriction rules). It never filters
// results out; ineligible products still appear, marked not addable.
type AddablePredicate func(p Product) bool
