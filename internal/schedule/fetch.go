package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appLog "confview/internal/log"
	"confview/internal/model"
)

// Client fetches the talk feed. One read-only GET per call, no
// conditional headers, no retries; a failure is terminal for that
// request and it is up to the controller to issue another.
type Client struct {
	client   *http.Client
	endpoint string
}

// NewClient creates a feed client for the given endpoint. timeout
// bounds the whole request including body read; zero means 15 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		endpoint: endpoint,
	}
}

// Fetch issues the GET against the feed endpoint and decodes the
// response body. Transport errors, non-2xx statuses, and decode
// failures all surface as a single error; the caller does not
// distinguish them beyond "the fetch did not succeed".
func (c *Client) Fetch(ctx context.Context) ([]model.Talk, error) {
	if c.endpoint == "" {
		return nil, errors.New("schedule: endpoint is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	appLog.Info("schedule fetch start", "url", redactURL(c.endpoint))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("schedule: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	talks, err := DecodeTalks(body)
	if err != nil {
		appLog.Error("schedule decode failed", err, "url", redactURL(c.endpoint))
		return nil, err
	}

	appLog.Info("schedule fetch success", "url", redactURL(c.endpoint), "talk_count", len(talks))
	return talks, nil
}

// redactURL hides the path and query of a feed URL for logging
// purposes, keeping only the scheme and host.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	// Find scheme separator.
	i := -1
	for idx := 0; idx+2 < len(u); idx++ {
		if u[idx:idx+3] == "://" {
			i = idx + 3
			break
		}
	}
	if i == -1 {
		return "feed://...(redacted)"
	}

	// Find next slash after host.
	j := i
	for j < len(u) && u[j] != '/' {
		j++
	}

	return u[:j] + redactedSuffix
}
