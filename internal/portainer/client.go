// Package portainer is a minimal client for the Portainer stacks API.
package portainer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minicloud/portal/internal/model"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 10 * time.Second

// APIKeyHeader carries the Portainer access token.
const APIKeyHeader = "X-API-Key"

// StatusError is returned when Portainer answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("portainer API error %d: %s", e.StatusCode, e.Body)
}

// Client talks to a single Portainer instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client. A non-positive timeout means DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return "portainer" }

// ListStacks fetches GET /api/stacks. Only Name, Id and EndpointId are kept.
func (c *Client) ListStacks(ctx context.Context) ([]model.Stack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stacks", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var stacks []model.Stack
	if err := json.NewDecoder(resp.Body).Decode(&stacks); err != nil {
		return nil, fmt.Errorf("decode stacks: %w", err)
	}
	if stacks == nil {
		stacks = []model.Stack{}
	}
	return stacks, nil
}
