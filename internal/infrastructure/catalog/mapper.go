package catalog

import "github.com/lanepos/register/internal/domain"

// productJSON is the wire shape of a catalog product. Older backend versions
// send the category under "category"; newer ones under "category_name". Both
// are accepted and resolved once here, so Product carries a single field and
// no call site re-checks the fallback.
type productJSON struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CategoryName  string  `json:"category_name"`
	Category      string  `json:"category"`
	Barcode       string  `json:"barcode"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// productListResponse is the backend's product list envelope
type productListResponse struct {
	Products []productJSON `json:"products"`
	Total    int           `json:"total"`
}

// cartAddRequest is the backend's add-to-cart payload
type cartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// resolveCategory applies the documented precedence: category_name preferred,
// category kept as a legacy alias.
func resolveCategory(p productJSON) string {
	if p.CategoryName != "" {
		return p.CategoryName
	}
	return p.Category
}

// mapProduct converts a wire product to the domain representation
func mapProduct(p productJSON) domain.Product {
	return domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Category:      resolveCategory(p),
		Barcode:       p.Barcode,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
	}
}

// mapProducts converts a wire product list, dropping records without the
// required fields. Malformed records are a backend data-quality concern; the
// register simply refuses to surface them.
func mapProducts(list []productJSON) []domain.Product {
	products := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.ID == 0 || p.Name == "" {
			continue
		}
		products = append(products, mapProduct(p))
	}
	return products
}
