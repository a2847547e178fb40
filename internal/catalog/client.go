// =============================================================================
// Sales Analytics - Catalog Fetch Client
// =============================================================================
//
// This module performs the single catalog fetch: one HTTP GET against the
// product-listing endpoint, bounded by the configured timeout. The catalog
// is best-effort by contract: any network, HTTP or decode failure degrades
// to an empty product list so the pipeline keeps running unenriched.
//
// RESPONSE SHAPE:
//   { "products": [ { "id": 1, "title": "...", "category": "...",
//                     "brand": "...", "rating": 4.5 }, ... ] }
//
// Missing optional fields stay nil; a missing title falls back to the
// documented "Unknown Product" placeholder.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// defaultTitle is used when a catalog product arrives without a title.
const defaultTitle = "Unknown Product"

// Product is one catalog entry.
type Product struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category *string  `json:"category"`
	Brand    *string  `json:"brand"`
	Rating   *float64 `json:"rating"`
}

// listResponse is the wire shape of the product-listing endpoint.
type listResponse struct {
	Products []Product `json:"products"`
}

// Fetcher fetches the product catalog. The pipeline depends on this
// interface, not on the HTTP client, so tests can substitute a fixed
// catalog.
type Fetcher interface {
	FetchProducts(ctx context.Context) []Product
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// Client is the HTTP Fetcher implementation.
type Client struct {
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a catalog client for the given endpoint and timeout.
func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// FetchProducts performs the catalog fetch.
//
// Failure is not propagated: the method logs a warning and returns an empty
// slice, and the run continues with no enrichment. An empty catalog is a
// valid catalog.
func (c *Client) FetchProducts(ctx context.Context) []Product {
	products, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("url", c.url).
			Msg("catalog fetch failed, continuing with empty catalog")
		return nil
	}

	c.log.Info().Int("products", len(products)).Msg("catalog fetched")
	return products
}

func (c *Client) fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	for i := range body.Products {
		if body.Products[i].Title == "" {
			body.Products[i].Title = defaultTitle
		}
	}

	return body.Products, nil
}
