package catalogapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirastore/catalog_api/internal/models"
)

func TestGetProductsFromUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Product{
			{ID: 1, Name: "Diamond Ring", Category: "Rings"},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "secret"})
	products, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Diamond Ring", products[0].Name)
}

func TestGetProductsFallsBackToMockData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MockFallback: true})
	products, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MockProducts(), products)
}

func TestGetProductsErrorWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.GetProducts(context.Background())
	assert.Error(t, err)
}

func TestSyncClientNeverServesMockData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Even when the config asks for the fallback, the sync variant must
	// surface the outage instead of handing callers the demo dataset.
	client := NewSyncClient(Config{BaseURL: srv.URL, MockFallback: true, Timeout: 3 * time.Second})

	products, err := client.GetProducts(context.Background())
	assert.Error(t, err)
	assert.Nil(t, products)

	categories, err := client.GetCategories(context.Background())
	assert.Error(t, err)
	assert.Nil(t, categories)
}

func TestTimeoutFallsBackToMockData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond, MockFallback: true})

	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, product.ID)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MockFallback: true})

	// Enough failures to trip the breaker, then one more call that must be
	// short-circuited without reaching the server.
	for i := 0; i < 4; i++ {
		_, err := client.GetProducts(context.Background())
		require.NoError(t, err, "fallback keeps reads successful")
	}
	served := hits.Load()

	_, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, served, hits.Load(), "open breaker must not hit the upstream")
}

func TestMockProductsSatisfyCatalogShape(t *testing.T) {
	products := MockProducts()
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotZero(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
	}

	// The per-id lookup agrees with the dataset.
	first, err := MockProduct(products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].Name, first.Name)
}
