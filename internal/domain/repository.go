package domain

import "context"

// CatalogClient defines the interface for fetching the product list from the
// POS backend. Implementations return a fresh snapshot; callers own caching.
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// CartClient defines the delegated add-to-cart side effect. The register never
// mutates cart state itself; the backend owns the cart state machine.
type CartClient interface {
	AddToCart(ctx context.Context, productID int64, quantity int) error
}

// CatalogStore defines local persistence for catalog snapshots, used as an
// offline fallback when the backend is unreachable.
type CatalogStore interface {
	SaveSnapshot(ctx context.Context, products []Product) error
	LoadSnapshot(ctx context.Context) ([]Product, error)
}
