package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordersync/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClientWithBaseURL(server.URL, "token", logger.New("error"))
}

func TestGetOrders(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders.json", r.URL.Path)
		assert.Equal(t, "token", r.Header.Get("X-Shopify-Access-Token"))
		w.Write([]byte(`{"orders":[{"id":1,"total_price":"10.00","line_items":[{"id":11,"product_id":100}]}]}`))
	})

	orders, err := client.GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, "10.00", orders[0].TotalPrice)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, int64(100), orders[0].LineItems[0].ProductID)
}

func TestGetOrdersSinceSendsWindowParameter(t *testing.T) {
	var createdAtMin string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		createdAtMin = r.URL.Query().Get("created_at_min")
		w.Write([]byte(`{"orders":[]}`))
	})

	since := time.Date(2020, 1, 1, 11, 30, 0, 0, time.UTC)
	_, err := client.GetOrdersSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T11:30:00+00:00", createdAtMin)
}

func TestGetCollects(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collects.json", r.URL.Path)
		w.Write([]byte(`{"collects":[{"product_id":100,"collection_id":7}]}`))
	})

	collects, err := client.GetCollects(context.Background())
	require.NoError(t, err)
	require.Len(t, collects, 1)
	assert.Equal(t, int64(7), collects[0].CollectionID)
}

func TestGetCollectionNotFoundIsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	collection, err := client.GetCollection(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, Collection{}, collection)
}

func TestGetProduct(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/100.json", r.URL.Path)
		w.Write([]byte(`{"product":{"id":100,"handle":"widget","images":[{"id":1,"src":"https://cdn.example.com/w.png"}]}}`))
	})

	product, err := client.GetProduct(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "widget", product.Handle)
	require.Len(t, product.Images, 1)
	assert.Equal(t, "https://cdn.example.com/w.png", product.Images[0].Src)
}

func TestGetProductNotFoundIsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	product, err := client.GetProduct(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, Product{}, product)
}

func TestServerErrorPropagates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.GetOrders(context.Background())
	assert.Error(t, err)
}
