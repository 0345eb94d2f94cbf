package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ordersync/internal/logger"
)

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, apiVersion, accessToken string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:     fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", shopDomain, apiVersion),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL builds a client against an explicit base URL.
// Used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL, accessToken string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetOrders fetches the full unfiltered order list.
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	var ordersResp OrdersResponse
	if err := c.get(ctx, "/orders.json", nil, &ordersResp); err != nil {
		return nil, err
	}
	return ordersResp.Orders, nil
}

// GetOrdersSince fetches orders created at or after the given time.
// The timestamp is sent as an ISO-8601 value with a numeric UTC offset.
func (c *Client) GetOrdersSince(ctx context.Context, createdAtMin time.Time) ([]Order, error) {
	params := map[string]string{
		"created_at_min": createdAtMin.UTC().Format("2006-01-02T15:04:05-07:00"),
	}
	var ordersResp OrdersResponse
	if err := c.get(ctx, "/orders.json", params, &ordersResp); err != nil {
		return nil, err
	}
	return ordersResp.Orders, nil
}

// GetCollects fetches every (product, collection) membership record.
func (c *Client) GetCollects(ctx context.Context) ([]Collect, error) {
	var collectsResp CollectsResponse
	if err := c.get(ctx, "/collects.json", nil, &collectsResp); err != nil {
		return nil, err
	}
	return collectsResp.Collects, nil
}

// GetCollection fetches a single collection by ID. An unknown ID is not an
// error; it returns the zero Collection.
func (c *Client) GetCollection(ctx context.Context, collectionID int64) (Collection, error) {
	var collectionResp struct {
		Collection Collection `json:"collection"`
	}
	err := c.get(ctx, fmt.Sprintf("/collections/%d.json", collectionID), nil, &collectionResp)
	if err == errNotFound {
		return Collection{}, nil
	}
	if err != nil {
		return Collection{}, err
	}
	return collectionResp.Collection, nil
}

// GetProduct fetches a single product by ID. An unknown ID is not an error;
// it returns the zero Product.
func (c *Client) GetProduct(ctx context.Context, productID int64) (Product, error) {
	var productResp struct {
		Product Product `json:"product"`
	}
	err := c.get(ctx, fmt.Sprintf("/products/%d.json", productID), nil, &productResp)
	if err == errNotFound {
		return Product{}, nil
	}
	if err != nil {
		return Product{}, err
	}
	return productResp.Product, nil
}

var errNotFound = fmt.Errorf("not found")

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Add authentication header
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	// Add query parameters
	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
