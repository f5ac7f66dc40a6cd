package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DispatchClient invokes the dispatch worker's own HTTP endpoint with the
// internal shared secret. The payment finalization trigger uses it to flush
// freshly enqueued notifications. Best effort, never a hard dependency.
type DispatchClient struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

func NewDispatchClient(baseURL, secret string) *DispatchClient {
	return &DispatchClient{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Flush POSTs a scan_pending request and returns the worker's raw JSON
// response. Any transport or non-2xx error is returned for the caller to
// report alongside its primary result.
func (c *DispatchClient) Flush(ctx context.Context) (json.RawMessage, error) {
	body, _ := json.Marshal(map[string]string{"mode": "scan_pending"})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/emails-sortants/process", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dispatch: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-internal-secret", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatch: endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dispatch: endpoint returned %d: %s", resp.StatusCode, string(raw))
	}
	return json.RawMessage(raw), nil
}
