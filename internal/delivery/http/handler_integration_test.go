package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lanepos/register/config"
	"github.com/lanepos/register/internal/domain"
	"github.com/lanepos/register/internal/infrastructure/cache"
	"github.com/lanepos/register/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	os.Exit(exitCode)
}

// --- Stub backend clients for wiring a real CatalogService ---

type stubCatalogClient struct {
	products []domain.Product
	err      error
}

func (s *stubCatalogClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type stubCartClient struct {
	added []int64
	err   error
}

func (s *stubCartClient) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, productID)
	return nil
}

func laneProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Coca-Cola", Category: "Beverages", Barcode: "5449000000996", Price: 1.99, StockQuantity: 24},
		{ID: 2, Name: "Whole Milk", Category: "Dairy", Barcode: "1234567890128", Price: 3.49, StockQuantity: 6},
		{ID: 3, Name: "Oat Drink", Category: "Milk Alternatives", Barcode: "7310865004703", Price: 2.79, StockQuantity: 0},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8090",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
	}
}

// setupTestRouter creates a router over a service backed by stub clients
func setupTestRouter(client domain.CatalogClient, cart domain.CartClient) *gin.Engine {
	service := usecase.NewCatalogService(
		client,
		cart,
		nil,
		cache.NewSnapshotCache(time.Minute),
		usecase.CatalogServiceConfig{EnableCartAdd: cart != nil},
	)

	handler := NewHandler(service)
	return SetupRouter(testConfig(), handler)
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{}, nil)

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "lanepos-register" {
			t.Errorf("service = %v, want lanepos-register", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{}, nil)

		methods := []string{"POST", "PUT", "DELETE", "PATCH"}

		for _, method := range methods {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

// TestSearchEndpoint tests the product search endpoint end-to-end
func TestSearchEndpoint(t *testing.T) {
	t.Run("ranks and highlights matching products", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/search?q=co", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response struct {
			Query   string         `json:"query"`
			Results []domain.Match `json:"results"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response.Query != "co" {
			t.Errorf("query = %q, want %q", response.Query, "co")
		}
		if len(response.Results) == 0 {
			t.Fatal("expected at least one result")
		}
		if response.Results[0].Product.Name != "Coca-Cola" {
			t.Errorf("top result = %q, want Coca-Cola", response.Results[0].Product.Name)
		}
		if len(response.Results[0].Highlight) == 0 {
			t.Error("top result has no highlight segments")
		}
		if !response.Results[0].Addable {
			t.Error("in-stock top result should be addable")
		}
	})

	t.Run("empty query returns empty result list", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/search?q=", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response struct {
			Results []domain.Match `json:"results"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(response.Results) != 0 {
			t.Errorf("got %d results, want 0", len(response.Results))
		}
	})

	t.Run("respects limit parameter", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/search?q=o&limit=1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response struct {
			Results []domain.Match `json:"results"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(response.Results) > 1 {
			t.Errorf("got %d results, want at most 1", len(response.Results))
		}
	})

	t.Run("rejects malformed limit", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/search?q=co&limit=abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 503 when no catalog is available", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{err: domain.ErrCatalogUnavailable}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/search?q=co", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

// TestBarcodeLookupEndpoint tests scanned barcode resolution
func TestBarcodeLookupEndpoint(t *testing.T) {
	t.Run("resolves a known barcode", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/barcode/5449000000996", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var product domain.Product
		if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if product.Name != "Coca-Cola" {
			t.Errorf("product = %q, want Coca-Cola", product.Name)
		}
	})

	t.Run("returns 404 for unknown barcode", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/products/barcode/0000000000000", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestSelectionEndpoint tests confirmed selections and their cart delegation
func TestSelectionEndpoint(t *testing.T) {
	t.Run("selects an addable product and delegates to the cart", func(t *testing.T) {
		cart := &stubCartClient{}
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, cart)

		payload := `{"product_id":1}`
		req, _ := http.NewRequest("POST", "/api/v1/selection", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if len(cart.added) != 1 || cart.added[0] != 1 {
			t.Errorf("cart adds = %v, want [1]", cart.added)
		}
	})

	t.Run("returns 409 for an out-of-stock product", func(t *testing.T) {
		cart := &stubCartClient{}
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, cart)

		payload := `{"product_id":3}`
		req, _ := http.NewRequest("POST", "/api/v1/selection", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusConflict)
		}
		if len(cart.added) != 0 {
			t.Errorf("cart adds = %v, want none", cart.added)
		}
	})

	t.Run("returns 404 for an unknown product id", func(t *testing.T) {
		cart := &stubCartClient{}
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, cart)

		payload := `{"product_id":999}`
		req, _ := http.NewRequest("POST", "/api/v1/selection", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("returns 409 when the backend rejects the cart add", func(t *testing.T) {
		cart := &stubCartClient{err: domain.ErrCartRejected}
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, cart)

		payload := `{"product_id":1}`
		req, _ := http.NewRequest("POST", "/api/v1/selection", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusConflict)
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, &stubCartClient{})

		payload := `{invalid json}`
		req, _ := http.NewRequest("POST", "/api/v1/selection", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for lane sibling origins", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{}, nil)

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		gotOrigin := w.Header().Get("Access-Control-Allow-Origin")
		if gotOrigin != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", gotOrigin, "http://localhost:3000")
		}
	})
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic without crashing server", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{}, nil)

		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		req, _ := http.NewRequest("GET", "/panic", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		// Gin's default recovery returns 500
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

// TestAPIVersioning tests that API v1 routes are correctly versioned
func TestAPIVersioning(t *testing.T) {
	t.Run("non-versioned routes return 404", func(t *testing.T) {
		router := setupTestRouter(&stubCatalogClient{products: laneProducts()}, nil)

		req, _ := http.NewRequest("GET", "/products/search?q=co", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
