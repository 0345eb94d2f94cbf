package klaviyo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ordersync/internal/logger"
)

const defaultTrackURL = "https://a.klaviyo.com/api/track"

type Client struct {
	trackURL   string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(logger *logger.Logger) *Client {
	return &Client{
		trackURL: defaultTrackURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithTrackURL builds a client against an explicit track endpoint.
// Used by tests to point the client at a local server.
func NewClientWithTrackURL(trackURL string, logger *logger.Logger) *Client {
	return &Client{
		trackURL: trackURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Track records one event. The payload travels base64-encoded and
// URL-escaped in the data query parameter of a GET request.
func (c *Client) Track(ctx context.Context, event *Event) error {
	encoded, err := EncodePayload(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.trackURL+"?data="+encoded, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("track request failed: %d - %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Tracked %s event %v", event.Event, event.Time)

	return nil
}

// EncodePayload serializes an event the way the track endpoint expects:
// JSON, then base64, then URL-escaped.
func EncodePayload(event *Event) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(data)), nil
}
