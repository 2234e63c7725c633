// Package marketplace implements the upstream product catalog client. The
// marketplace API is authenticated with OAuth2 client credentials.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/clientcredentials"
)

// Config carries the marketplace endpoint and OAuth2 client credentials.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// Client talks to the marketplace product API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a marketplace client. When the token URL is configured
// the underlying http client refreshes OAuth2 tokens transparently; without
// it requests go out unauthenticated (useful against local fixtures).
func NewClient(ctx context.Context, cfg Config) *Client {
	httpClient := http.DefaultClient
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(ctx)
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

var _ portssvc.ProductProvider = (*Client)(nil)

type productPayload struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Price    decimal.Decimal  `json:"price"`
	ImageURL string           `json:"imageUrl"`
	Skus     []variantPayload `json:"skus"`
}

type variantPayload struct {
	SkuID string          `json:"skuId"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func toDomainProduct(p productPayload) domain.Product {
	variants := make([]domain.ProductVariant, len(p.Skus))
	for i, s := range p.Skus {
		variants[i] = domain.ProductVariant{
			VariantID: s.SkuID,
			Name:      s.Name,
			Price:     s.Price,
		}
	}
	return domain.Product{
		ProductID: p.ID,
		Title:     p.Title,
		BasePrice: p.Price,
		ImageURL:  p.ImageURL,
		Variants:  variants,
	}
}

// GetProduct retrieves one product with its variants.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("marketplace base URL is not configured")
	}

	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build marketplace request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %s not found in marketplace", productID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("marketplace returned status %d", resp.StatusCode)
	}

	var body productPayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode marketplace product: %w", err)
	}

	product := toDomainProduct(body)
	return &product, nil
}

// Search retrieves products matching a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("marketplace base URL is not configured")
	}

	endpoint := fmt.Sprintf("%s/api/products?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build marketplace request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketplace search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("marketplace returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []productPayload `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode marketplace search results: %w", err)
	}

	products := make([]domain.Product, len(payload.Items))
	for i, item := range payload.Items {
		products[i] = toDomainProduct(item)
	}
	return products, nil
}
