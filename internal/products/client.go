// Package products fetches the public product catalog the storefront
// browses. The cart does not depend on this package; it only consumes the
// Product values handed to it.
package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikolayk812/cartsync/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{baseURL: u, http: httpClient, logger: logger}, nil
}

// apiProduct tolerates the two payload shapes seen in public catalog APIs:
// numeric or string ids, thumbnail or image fields.
type apiProduct struct {
	ID        json.Number     `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
}

func (p apiProduct) toDomain() domain.Product {
	image := p.Thumbnail
	if image == "" {
		image = p.Image
	}

	return domain.Product{
		ID:       p.ID.String(),
		Title:    p.Title,
		Price:    p.Price,
		Image:    image,
		Category: p.Category,
	}
}

// Products lists the catalog. Both a bare array and a {"products": [...]}
// wrapper are accepted.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, fmt.Errorf("c.get: %w", err)
	}

	var list []apiProduct
	if err := json.Unmarshal(body, &list); err != nil {
		var wrapper struct {
			Products []apiProduct `json:"products"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}
		list = wrapper.Products
	}

	return lo.Map(list, func(p apiProduct, _ int) domain.Product {
		return p.toDomain()
	}), nil
}

func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	body, err := c.get(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return domain.Product{}, fmt.Errorf("c.get: %w", err)
	}

	var p apiProduct
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Product{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return p.toDomain(), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u.String())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return body, nil
}
