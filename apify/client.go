package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/esiebomaj/Warmer-Pro/config"
)

// Client talks to the Apify actor-run API. Each search runs an actor
// synchronously and returns its default dataset items.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *retryablehttp.Client
}

// New builds a client from application config. The API token comes from the
// APIFY_API_TOKEN environment variable.
func New(cfg config.ApifyConfig) *Client {
	hc := retryablehttp.NewClient()
	hc.Logger = nil
	hc.RetryMax = 2

	return &Client{
		baseURL: cfg.BaseURL,
		token:   os.Getenv("APIFY_API_TOKEN"),
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		http:    hc,
	}
}

// runActor runs an actor with the given input and decodes the dataset items
// into out. The call is bounded by the configured timeout.
func (c *Client) runActor(ctx context.Context, actorID string, input any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf(
		"%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, actorID, url.QueryEscape(c.token),
	)

	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("apify actor %s failed: status %d: %s", actorID, resp.StatusCode, bytes.TrimSpace(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
