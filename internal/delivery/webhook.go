package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ridgecast/internal/observability"

	"go.uber.org/zap"
)

// Webhook posts a finished report to a messaging webhook. Delivery is a
// single attempt with no partial-delivery semantics.
type Webhook struct {
	client  *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

type payload struct {
	Text string `json:"text"`
}

func NewWebhook(timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Webhook {
	return &Webhook{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// Send posts text to the destination URL as a {"text": ...} JSON body.
func (w *Webhook) Send(ctx context.Context, url, text string) error {
	err := w.send(ctx, url, text)

	if w.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		w.metrics.Deliveries.WithLabelValues(outcome).Inc()
	}

	return err
}

func (w *Webhook) send(ctx context.Context, url, text string) error {
	body, err := json.Marshal(payload{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		w.logger.Warn("Webhook rejected delivery",
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("webhook returned HTTP %d: %s", resp.StatusCode, respBody)
	}

	w.logger.Info("Report delivered", zap.Int("bytes", len(body)))
	return nil
}
