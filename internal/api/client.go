// Package api is the HTTP client for the json-server style /products backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/google/uuid"
)

// DefaultBaseURL is where json-server listens by default.
const DefaultBaseURL = "http://localhost:3001"

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("product not found")

// StatusError is returned for any other non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// Products is the subset of the client the UI depends on.
type Products interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id int) (catalog.Product, error)
	CreateProduct(ctx context.Context, draft catalog.Draft) (catalog.Product, error)
}

// Client talks to the products backend.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the backend at baseURL. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProducts fetches the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// GetProduct fetches one product. It returns ErrNotFound for unknown IDs.
func (c *Client) GetProduct(ctx context.Context, id int) (catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// CreateProduct validates the draft and posts it. The backend assigns the ID.
func (c *Client) CreateProduct(ctx context.Context, draft catalog.Draft) (catalog.Product, error) {
	if err := draft.Validate(); err != nil {
		return catalog.Product{}, err
	}
	var p catalog.Product
	if err := c.do(ctx, http.MethodPost, "/products", draft, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// UpdateProduct replaces a product.
func (c *Client) UpdateProduct(ctx context.Context, id int, draft catalog.Draft) (catalog.Product, error) {
	if err := draft.Validate(); err != nil {
		return catalog.Product{}, err
	}
	var p catalog.Product
	if err := c.do(ctx, http.MethodPut, productPath(id), draft, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, productPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return fmt.Errorf("status %d but failed to read body: %w", resp.StatusCode, err)
		}
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
