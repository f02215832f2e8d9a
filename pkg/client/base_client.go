package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ridgecast/internal/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProviderError reports a non-success HTTP status from a forecast provider.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.Status, e.Body)
}

// BaseClient wraps an HTTP client with a circuit breaker and metrics.
// Each call is a single attempt: a failed fetch aborts the report run, so
// there is no retry loop, but the breaker keeps a flapping provider from
// being hammered across scheduled runs.
type BaseClient struct {
	name           string
	client         HTTPClient
	logger         *zap.Logger
	metrics        *observability.Metrics
	circuitBreaker *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Timeout        time.Duration
	BreakerTimeout time.Duration
}

func NewBaseClient(name string, config ClientConfig, logger *zap.Logger, metrics *observability.Metrics) *BaseClient {
	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BaseClient{
		name:           name,
		client:         httpClient,
		logger:         logger,
		metrics:        metrics,
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
	}
}

// GetJSON performs a single GET through the circuit breaker and decodes the
// JSON response into out.
func (c *BaseClient) GetJSON(ctx context.Context, url string, out interface{}) error {
	start := time.Now()

	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, c.doGet(ctx, url, out)
	})

	if c.metrics != nil {
		c.metrics.ProviderRequestDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.metrics.ProviderRequests.WithLabelValues(c.name, outcome).Inc()
	}

	return err
}

func (c *BaseClient) doGet(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Provider returned non-success status",
			zap.String("client", c.name),
			zap.Int("status", resp.StatusCode))
		return &ProviderError{Provider: c.name, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", c.name, err)
	}

	c.logger.Debug("Request successful",
		zap.String("client", c.name),
		zap.Int("status", resp.StatusCode))

	return nil
}
