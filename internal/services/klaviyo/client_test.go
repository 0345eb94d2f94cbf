package klaviyo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ordersync/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *Event {
	return &Event{
		Token: "tok",
		Event: EventOrderedProduct,
		CustomerProperties: CustomerProperties{
			Email: "a@b.com",
		},
		Properties: ProductProperties{
			EventID:           11,
			Value:             "10.00",
			ProductCategories: []string{"Shoes"},
		},
		Time: 1577836800,
	}
}

func TestTrackEncodesPayload(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The mux has already URL-unescaped the query parameter.
		received = r.URL.Query().Get("data")
		w.Write([]byte("1"))
	}))
	defer server.Close()

	client := NewClientWithTrackURL(server.URL, logger.New("error"))
	require.NoError(t, client.Track(context.Background(), sampleEvent()))

	decoded, err := base64.StdEncoding.DecodeString(received)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded, &payload))
	assert.Equal(t, "tok", payload["token"])
	assert.Equal(t, "Ordered Product", payload["event"])
	assert.Equal(t, float64(1577836800), payload["time"])

	customer := payload["customer_properties"].(map[string]interface{})
	assert.Equal(t, "a@b.com", customer["$email"])
	assert.Nil(t, customer["$first_name"])
}

func TestTrackFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithTrackURL(server.URL, logger.New("error"))
	assert.Error(t, client.Track(context.Background(), sampleEvent()))
}

func TestEncodePayloadIsURLSafe(t *testing.T) {
	encoded, err := EncodePayload(sampleEvent())
	require.NoError(t, err)

	// base64 padding must be escaped for the query string.
	assert.NotContains(t, encoded, "=")
	assert.NotContains(t, encoded, "+")
}
