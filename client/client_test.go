package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/client"
)

func apiStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"64a1f0c2e1b2c3d4e5f60718","name":"Classic Cotton Tee","description":"","image":"/uploads/tee.jpg","subImages":[],"price":499,"category":"t-shirts","sizes":["S","M"],"stock":"in stock"},
			{"_id":"64a1f0c2e1b2c3d4e5f60719","name":"Denim Jacket","description":"","image":"/uploads/jacket.jpg","subImages":[],"price":2499,"category":"jackets","sizes":["M"],"stock":"out of stock"}
		]`))
	})
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "tee" {
			w.Write([]byte(`[{"_id":"64a1f0c2e1b2c3d4e5f60718","name":"Classic Cotton Tee","description":"","image":"/uploads/tee.jpg","subImages":[],"price":499,"category":"t-shirts","sizes":["S","M"],"stock":"in stock"}]`))
			return
		}
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/broken/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Unable to fetch products"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestList(t *testing.T) {
	srv := apiStub(t)
	c := client.New(srv.URL)

	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Classic Cotton Tee", products[0].Name)
	assert.Equal(t, float64(2499), products[1].Price)
}

func TestSearch(t *testing.T) {
	srv := apiStub(t)
	c := client.New(srv.URL)

	products, err := c.Search(context.Background(), "tee")
	require.NoError(t, err)
	require.Len(t, products, 1)

	products, err = c.Search(context.Background(), "no such thing")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := apiStub(t)
	c := client.New(srv.URL)

	// Point the catalog path at the failing endpoint.
	c.BaseURL = srv.URL + "/broken"
	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to fetch products")
}

func TestContextCancellation(t *testing.T) {
	srv := apiStub(t)
	c := client.New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.Error(t, err)
}

func TestFilterByCategory(t *testing.T) {
	products := []models.Product{
		{Name: "Tee", Category: "t-shirts"},
		{Name: "Jacket", Category: "jackets"},
		{Name: "Tee 2", Category: "T-Shirts"},
	}

	assert.Len(t, client.FilterByCategory(products, "t-shirts"), 2)
	assert.Len(t, client.FilterByCategory(products, "jackets"), 1)
	assert.Empty(t, client.FilterByCategory(products, "shoes"))

	// Empty category means the "all" view.
	assert.Equal(t, products, client.FilterByCategory(products, ""))
}
