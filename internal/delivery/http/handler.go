package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lanepos/register/internal/domain"
	"github.com/lanepos/register/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the lane API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lanepos-register",
		"version": "1.0.0",
	})
}

// SearchProducts ranks the catalog against the q parameter and returns the
// highlighted result list. An empty query or a query matching nothing is a
// 200 with an empty list; search has no failure semantics of its own.
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	matches, err := h.catalog.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": matches,
	})
}

// LookupBarcode resolves a complete scanned barcode to a single product
func (h *Handler) LookupBarcode(c *gin.Context) {
	code := c.Param("code")

	product, err := h.catalog.LookupBarcode(c.Request.Context(), code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, product)
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no product with that barcode"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	}
}

// selectionRequest is the body for confirmed result selections
type selectionRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// SelectProduct dispatches a confirmed selection, delegating any add-to-cart
// side effect to the backend
func (h *Handler) SelectProduct(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	err := h.catalog.SelectByID(c.Request.Context(), req.ProductID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "selected"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrNotAddable):
		c.JSON(http.StatusConflict, gin.H{"error": "product is not currently addable"})
	case errors.Is(err, domain.ErrCartRejected):
		c.JSON(http.StatusConflict, gin.H{"error": "cart add rejected by backend"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	}
}
