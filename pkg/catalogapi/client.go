// Package catalogapi is a minimal HTTP client for an upstream catalog API.
// Read calls degrade to a static mock dataset when the upstream is
// unreachable and mock fallback is enabled; this is an explicit
// availability-over-consistency choice for demo and development setups.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/mirastore/catalog_api/internal/models"
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds each request on top of the caller's context. Zero
	// means no client-side timeout (the admin/sync variant).
	Timeout time.Duration
	// MockFallback makes read failures return the static mock dataset
	// instead of an error.
	MockFallback bool
}

// Client talks to the upstream catalog API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	mockFallback bool
	breaker      *gobreaker.CircuitBreaker[[]byte]
}

// NewClient constructs a new catalog API client with sane defaults.
func NewClient(cfg Config) *Client {
	var st gobreaker.Settings
	st.Name = "catalog-upstream"
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		token:        cfg.Token,
		mockFallback: cfg.MockFallback,
		breaker:      gobreaker.NewCircuitBreaker[[]byte](st),
	}
}

// NewSyncClient constructs the client variant used by the background sync
// worker and health probes. Failures must surface as errors there, never as
// mock data, so the fallback is forced off; requests are bounded by the
// caller's context instead of a client-side timeout.
func NewSyncClient(cfg Config) *Client {
	cfg.MockFallback = false
	cfg.Timeout = 0
	return NewClient(cfg)
}

// Available reports whether an upstream base URL is configured.
func (c *Client) Available() bool {
	return c.baseURL != ""
}

// GetProducts fetches all products, falling back to mock data on failure.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		if c.mockFallback {
			log.Warn().Err(err).Msg("Upstream products fetch failed, serving mock data")
			return MockProducts(), nil
		}
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by id, falling back to mock data on
// failure.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil)
	if err != nil {
		if c.mockFallback {
			log.Warn().Err(err).Int("id", id).Msg("Upstream product fetch failed, serving mock data")
			return MockProduct(id)
		}
		return nil, err
	}
	var product models.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

// GetCategories fetches all categories, falling back to mock data on failure.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		if c.mockFallback {
			log.Warn().Err(err).Msg("Upstream categories fetch failed, serving mock data")
			return MockCategories(), nil
		}
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// CreateProduct pushes a new product upstream.
func (c *Client) CreateProduct(ctx context.Context, product *models.Product) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/products", product)
	return err
}

// UpdateProduct pushes a product update upstream.
func (c *Client) UpdateProduct(ctx context.Context, product *models.Product) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/products/"+strconv.Itoa(product.ID), product)
	return err
}

// DeleteProduct deletes a product upstream.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil)
	return err
}

// doRequest performs one HTTP call through the circuit breaker. Any network
// error, timeout, or non-2xx status is total failure.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}
		return respBody, nil
	})
}
