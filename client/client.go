// Package client is a small Go client for the storefront catalog API.
// It decodes the API's bare-array wire shape and surfaces the server's
// {"error": "..."} bodies as Go errors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/novastreet/storefront/app/models"
)

// Client talks to a storefront API server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a sane default timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches the full catalog.
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	return c.getProducts(ctx, "/products")
}

// Search fetches the products matching query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Product, error) {
	return c.getProducts(ctx, "/products/search?q="+url.QueryEscape(query))
}

func (c *Client) getProducts(ctx context.Context, path string) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	products := []models.Product{}
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("client: decode %s: %w", path, err)
	}
	return products, nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("client: %s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Errorf("client: unexpected status %d", resp.StatusCode)
}

// FilterByCategory narrows products to one category, client-side. An empty
// category returns the input unchanged, mirroring the storefront's "all"
// collection view.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}

	filtered := []models.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
