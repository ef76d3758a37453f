// Package notify delivers the best-effort secondary notification fired after
// a successful inquiry write: a JSON POST of the submitted fields to an
// external workflow endpoint. The response body is ignored and failures are
// for the caller to log, never to surface.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autonexgen/site/internal/submission"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// ErrMissingEndpoint indicates the webhook client was built without a URL.
var ErrMissingEndpoint = errors.New("notify: endpoint is required")

// Config describes the webhook destination.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client posts submission payloads to a single webhook endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a webhook client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{endpoint: endpoint, httpClient: httpClient, logger: logger}, nil
}

// Notify posts the fields as a JSON body. The response payload is drained
// and discarded; a non-2xx status is reported as an error so the flow can
// log it.
func (c *Client) Notify(ctx context.Context, fields submission.Fields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("notify: encode payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("notify: post: %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 1<<20))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("notify: endpoint returned status %d", response.StatusCode)
	}

	c.logger.Debug("notification delivered", zap.String("endpoint", c.endpoint))
	return nil
}
