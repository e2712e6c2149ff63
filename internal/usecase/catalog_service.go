package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/lanepos/register/internal/domain"
	"github.com/lanepos/register/internal/infrastructure/cache"
	"github.com/lanepos/register/internal/search"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	Search             search.Config
	EnableCartAdd      bool
	Addable            domain.AddablePredicate
	EnableDebugLogging bool
}

// CatalogService owns the product snapshot and the search pipeline around it.
// Flow per search: snapshot (cache -> backend -> local store) -> ranking
// engine -> addability annotation. The snapshot a search reads is immutable
// for the duration of the call.
type CatalogService struct {
	client        domain.CatalogClient
	cart          domain.CartClient
	store         domain.CatalogStore
	cache         *cache.SnapshotCache
	engine        *search.Engine
	addable       domain.AddablePredicate
	enableCartAdd bool
	debug         bool
}

// NewCatalogService creates a catalog service with dependencies. store and
// cart may be nil; offline fallback and cart dispatch are then disabled.
func NewCatalogService(
	client domain.CatalogClient,
	cart domain.CartClient,
	store domain.CatalogStore,
	snapshotCache *cache.SnapshotCache,
	config CatalogServiceConfig,
) *CatalogService {
	addable := config.Addable
	if addable == nil {
		addable = func(p domain.Product) bool { return p.InStock() }
	}

	return &CatalogService{
		client:        client,
		cart:          cart,
		store:         store,
		cache:         snapshotCache,
		engine:        search.NewEngine(config.Search),
		addable:       addable,
		enableCartAdd: config.EnableCartAdd,
		debug:         config.EnableDebugLogging,
	}
}

// Products returns the current catalog snapshot. Order of preference: cached
// snapshot, fresh fetch from the backend, last persisted local snapshot. A
// fresh fetch is persisted for offline use; a fallback load is cached so an
// unreachable backend is not re-tried on every keystroke burst.
func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	if products, ok := s.cache.Get(); ok {
		return products, nil
	}

	products, fetchErr := s.client.FetchProducts(ctx)
	if fetchErr == nil {
		s.cache.Set(products)
		if s.store != nil {
			if err := s.store.SaveSnapshot(ctx, products); err != nil {
				// Offline copy is best-effort; searching continues regardless.
				log.Printf("[CATALOG] failed to persist snapshot: %v", err)
			}
		}
		return products, nil
	}

	if s.store != nil {
		stored, err := s.store.LoadSnapshot(ctx)
		if err == nil {
			if s.debug {
				log.Printf("[CATALOG] backend unavailable, using local snapshot (%d products)", len(stored))
			}
			s.cache.Set(stored)
			return stored, nil
		}
	}

	return nil, fmt.Errorf("no catalog available: %w", fetchErr)
}

// Search ranks the current snapshot against query and annotates each match
// with the caller-supplied addability check. The predicate annotates only;
// ineligible products are never filtered out.
func (s *CatalogService) Search(ctx context.Context, query string, maxResults int) ([]domain.Match, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	matches := s.engine.Search(query, products, maxResults)
	for i := range matches {
		matches[i].Addable = s.addable(matches[i].Product)
	}
	return matches, nil
}

// Select handles a confirmed result selection. When cart add is enabled and
// the product passes the eligibility check, the add-to-cart side effect is
// delegated to the backend; the register never mutates cart state itself.
func (s *CatalogService) Select(ctx context.Context, p domain.Product) error {
	if !s.enableCartAdd || s.cart == nil {
		return nil
	}

	if !s.addable(p) {
		return domain.ErrNotAddable
	}

	if err := s.cart.AddToCart(ctx, p.ID, 1); err != nil {
		return fmt.Errorf("cart add for product %d: %w", p.ID, err)
	}

	if s.debug {
		log.Printf("[CATALOG] added product %d (%s) to cart", p.ID, p.Name)
	}
	return nil
}

// LookupBarcode returns the product whose barcode equals code exactly. This
// is the scanner path; scanned codes are complete, so no ranking is involved.
func (s *CatalogService) LookupBarcode(ctx context.Context, code string) (domain.Product, error) {
	if code == "" {
		return domain.Product{}, domain.ErrInvalidRequest
	}

	products, err := s.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range products {
		if p.Barcode != "" && p.Barcode == code {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// SelectByID resolves a product by id and dispatches the selection.
func (s *CatalogService) SelectByID(ctx context.Context, id int64) error {
	products, err := s.Products(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		if p.ID == id {
			return s.Select(ctx, p)
		}
	}
	return domain.ErrProductNotFound
}

// Refresh drops the cached snapshot so the next search fetches a fresh one.
func (s *CatalogService) Refresh() {
	s.cache.Invalidate()
}
