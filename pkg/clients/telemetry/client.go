package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/inumeshi/internal/config"
	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// ErrNoEndpoint is returned when the client was built without an endpoint.
var ErrNoEndpoint = errors.New("telemetry endpoint not configured")

// Client posts calculation logs to a remote collector such as a Google Apps
// Script web app.
type Client interface {
	PostCalculation(ctx context.Context, record models.CalculationLog) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	endpoint   string
}

// NewClient builds a collector client using the provided configuration values.
func NewClient(cfg config.TelemetryConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &APIClient{
		httpClient: restyClient,
		endpoint:   strings.TrimSpace(cfg.Endpoint),
	}
}

// PostCalculation sends the record as JSON. Any status of 400 or above is an
// error.
func (c *APIClient) PostCalculation(ctx context.Context, record models.CalculationLog) error {
	if c.endpoint == "" {
		return ErrNoEndpoint
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(record).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("post calculation log: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("telemetry collector error: status=%d body=%s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	return nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
