package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at a locally running service.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client talks to the optimization service. A zero timeout means the client
// waits indefinitely for the service to answer; optimize calls are
// single-shot with no retry, so a long-running optimization is allowed to
// finish rather than being re-issued.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client for the given base URL. timeout <= 0 disables
// the HTTP timeout entirely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Counties fetches the available region filter values.
func (c *Client) Counties(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/api/counties"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UnreachableError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyAPIError(decodeAPIError(resp))
	}
	var counties []string
	if err := json.NewDecoder(resp.Body).Decode(&counties); err != nil {
		return nil, fmt.Errorf("decode counties: %w", err)
	}
	return counties, nil
}

// Optimize posts the request and decodes the ranked response. Any
// non-success status or transport failure is returned as a single error;
// there is no retry and no partial result.
func (c *Client) Optimize(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/api/optimize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UnreachableError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyAPIError(decodeAPIError(resp))
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// decodeAPIError reads the service's {"detail": ...} error body. Bodies that
// are not JSON, or detail values that are not strings, degrade to a
// status-only error.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	if detail, ok := raw["detail"].(string); ok {
		apiErr.Detail = detail
	}
	return apiErr
}
