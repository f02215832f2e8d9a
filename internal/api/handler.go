package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Signature headers on inbound command callbacks.
const (
	headerTimestamp = "X-Slack-Request-Timestamp"
	headerSignature = "X-Slack-Signature"
)

// generateTimeout bounds a single on-demand report run.
const generateTimeout = 60 * time.Second

// ReportGenerator produces the report text for tomorrow at the given hour.
type ReportGenerator interface {
	Generate(ctx context.Context, hour int) (string, error)
}

// Deliverer posts a text message to a destination URL.
type Deliverer interface {
	Send(ctx context.Context, url, text string) error
}

type Handler struct {
	pipeline    ReportGenerator
	deliverer   Deliverer
	verifier    *SignatureVerifier
	defaultHour int
	logger      *zap.Logger
}

func NewHandler(pipeline ReportGenerator, deliverer Deliverer, verifier *SignatureVerifier, defaultHour int, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline:    pipeline,
		deliverer:   deliverer,
		verifier:    verifier,
		defaultHour: defaultHour,
		logger:      logger,
	}
}

// HandleCommand handles POST /api/v1/report, a signed slash-command callback.
// The command text may carry an hour-of-day override (0-23). The handler acks
// immediately and posts the finished report (or the error) to the callback's
// response_url.
func (h *Handler) HandleCommand(c *fiber.Ctx) error {
	body := c.Body()
	if err := h.verifier.Verify(c.Get(headerTimestamp), body, c.Get(headerSignature)); err != nil {
		h.logger.Warn("Rejected command callback", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid request signature",
		})
	}

	responseURL := c.FormValue("response_url")
	if responseURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "response_url is required",
		})
	}

	hour, err := h.parseHour(c.FormValue("text"))
	if err != nil {
		return c.JSON(fiber.Map{
			"response_type": "ephemeral",
			"text":          "Usage: an optional hour of day from 0 to 23, e.g. `7`",
		})
	}

	h.logger.Info("On-demand report requested", zap.Int("hour", hour))

	// Ack within the callback deadline; the report follows on response_url.
	go h.generateAndDeliver(responseURL, hour)

	return c.JSON(fiber.Map{
		"response_type": "ephemeral",
		"text":          "Generating tomorrow's trail report...",
	})
}

func (h *Handler) generateAndDeliver(responseURL string, hour int) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	text, err := h.pipeline.Generate(ctx, hour)
	if err != nil {
		text = "Trail report failed: " + err.Error()
	}

	if err := h.deliverer.Send(ctx, responseURL, text); err != nil {
		h.logger.Error("Failed to deliver command response", zap.Error(err))
	}
}

func (h *Handler) parseHour(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return h.defaultHour, nil
	}
	hour, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, strconv.ErrRange
	}
	return hour, nil
}

// GetHealth handles GET /api/v1/health.
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"uptime": time.Since(startTime).String(),
	})
}

var startTime = time.Now()
