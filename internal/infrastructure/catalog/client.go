package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/lanepos/register/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the POS backend API. It implements both
// domain.CatalogClient and domain.CartClient.
type Client struct {
	httpClient  *http.Client
	token       string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new POS backend client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The backend serves every lane in the store; keep one register well
	// below its per-client ceiling.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token:       token,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retry number attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<attempt)) * time.Millisecond
}

// doRequest executes an HTTP request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "lanepos-register/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// FetchProducts retrieves the full product list from the backend. The result
// is a fresh snapshot; the usecase layer owns caching and offline fallback.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v1/products", c.baseURL)

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if !sleepCtx(ctx, exponentialBackoff(attempt)) {
				return nil, ctx.Err()
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if !sleepCtx(ctx, exponentialBackoff(attempt)) {
				return nil, ctx.Err()
			}
			continue
		}

		var listResp productListResponse
		if err := json.Unmarshal(body, &listResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		products := mapProducts(listResp.Products)
		if c.debug {
			log.Printf("[CATALOG] Fetched %d products", len(products))
		}
		return products, nil
	}

	return nil, lastErr
}

// AddToCart delegates the add-to-cart side effect to the backend. The cart
// state machine lives entirely on the backend; the register never mutates
// cart state itself.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	payload, err := json.Marshal(cartAddRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return fmt.Errorf("failed to encode cart request: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v1/cart/items", c.baseURL)
	resp, err := c.doRequest(ctx, http.MethodPost, reqURL, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return domain.ErrProductNotFound
	case http.StatusConflict:
		return domain.ErrCartRejected
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}
}

// sleepCtx waits for d or until ctx is done, reporting whether the full wait
// elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
