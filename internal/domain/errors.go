package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product cannot be found in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable is returned when the backend catalog request fails
	ErrCatalogUnavailable = errors.New("catalog backend request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSnapshotEmpty is returned when no local catalog snapshot has been saved yet
	ErrSnapshotEmpty = errors.New("no catalog snapshot available")

	// ErrCartRejected is returned when the backend refuses an add-to-cart request
	ErrCartRejected = errors.New("cart add rejected by backend")

	// ErrNotAddable is returned when a selected product fails the eligibility check
	ErrNotAddable = errors.New("product is not currently addable")
)
