// Package client is a typed HTTP client for the catalog REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "http://localhost:3001/api"
	DefaultTimeout = 10 * time.Second
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client calls the catalog API. Requests are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body v1.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

func (c *Client) Health(ctx context.Context) (*v1.HealthResponse, error) {
	var out v1.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product types

func (c *Client) ListProductTypes(ctx context.Context) ([]v1.ProductTypeWithCount, error) {
	var out []v1.ProductTypeWithCount
	if err := c.do(ctx, http.MethodGet, "/product-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProductType(ctx context.Context, id string) (*v1.ProductTypeDetail, error) {
	var out v1.ProductTypeDetail
	if err := c.do(ctx, http.MethodGet, "/product-types/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProductType(ctx context.Context, req *v1.CreateProductTypeRequest) (*v1.ProductType, error) {
	var out v1.ProductType
	if err := c.do(ctx, http.MethodPost, "/product-types", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProductType(ctx context.Context, id string, req *v1.UpdateProductTypeRequest) (*v1.ProductType, error) {
	var out v1.ProductType
	if err := c.do(ctx, http.MethodPut, "/product-types/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProductType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/product-types/"+url.PathEscape(id), nil, nil)
}

// Products

func (c *Client) ListProducts(ctx context.Context) ([]v1.Product, error) {
	return c.listProducts(ctx, "/products")
}

// FilterProducts lists products through the ?type= query filter.
func (c *Client) FilterProducts(ctx context.Context, typeName string) ([]v1.Product, error) {
	return c.listProducts(ctx, "/products?"+url.Values{"type": {typeName}}.Encode())
}

func (c *Client) ListProductsByType(ctx context.Context, typeName string) ([]v1.Product, error) {
	return c.listProducts(ctx, "/products/by-type/"+url.PathEscape(typeName))
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]v1.Product, error) {
	return c.listProducts(ctx, "/products/search?"+url.Values{"q": {query}}.Encode())
}

func (c *Client) listProducts(ctx context.Context, path string) ([]v1.Product, error) {
	var out []v1.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*v1.Product, error) {
	var out v1.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *v1.CreateProductRequest) (*v1.Product, error) {
	var out v1.Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req *v1.UpdateProductRequest) (*v1.Product, error) {
	var out v1.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// Variants

func (c *Client) ListVariants(ctx context.Context, productID string) ([]v1.Variant, error) {
	var out []v1.Variant
	if err := c.do(ctx, http.MethodGet, "/variants/product/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetVariant(ctx context.Context, id string) (*v1.Variant, error) {
	var out v1.Variant
	if err := c.do(ctx, http.MethodGet, "/variants/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateVariant(ctx context.Context, req *v1.CreateVariantRequest) (*v1.Variant, error) {
	var out v1.Variant
	if err := c.do(ctx, http.MethodPost, "/variants", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVariant(ctx context.Context, id string, req *v1.UpdateVariantRequest) (*v1.Variant, error) {
	var out v1.Variant
	if err := c.do(ctx, http.MethodPut, "/variants/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVariant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/variants/"+url.PathEscape(id), nil, nil)
}

// Add-ons

func (c *Client) ListAddOns(ctx context.Context, productID string) ([]v1.AddOn, error) {
	var out []v1.AddOn
	if err := c.do(ctx, http.MethodGet, "/add-ons/product/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAddOn(ctx context.Context, id string) (*v1.AddOn, error) {
	var out v1.AddOn
	if err := c.do(ctx, http.MethodGet, "/add-ons/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAddOn(ctx context.Context, req *v1.CreateAddOnRequest) (*v1.AddOn, error) {
	var out v1.AddOn
	if err := c.do(ctx, http.MethodPost, "/add-ons", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAddOn(ctx context.Context, id string, req *v1.UpdateAddOnRequest) (*v1.AddOn, error) {
	var out v1.AddOn
	if err := c.do(ctx, http.MethodPut, "/add-ons/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddOn(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/add-ons/"+url.PathEscape(id), nil, nil)
}
