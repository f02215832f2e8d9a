package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds one scheduled report run end to end.
const runTimeout = 60 * time.Second

// ReportGenerator produces the report text for tomorrow at the given hour.
type ReportGenerator interface {
	Generate(ctx context.Context, hour int) (string, error)
}

// Deliverer posts a text message to a destination URL.
type Deliverer interface {
	Send(ctx context.Context, url, text string) error
}

// Scheduler runs the report pipeline on a daily cron schedule and delivers
// the result to the configured webhook. Overlapping runs are independent.
type Scheduler struct {
	cron       *cron.Cron
	pipeline   ReportGenerator
	deliverer  Deliverer
	webhookURL string
	spec       string
	hour       int
	logger     *zap.Logger
}

func New(pipeline ReportGenerator, deliverer Deliverer, webhookURL, spec string, hour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		pipeline:   pipeline,
		deliverer:  deliverer,
		webhookURL: webhookURL,
		spec:       spec,
		hour:       hour,
		logger:     logger,
	}
}

// Start registers the cron entry and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()

	s.logger.Info("Scheduler started",
		zap.String("cron", s.spec),
		zap.Int("hour", s.hour))
	return nil
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	start := time.Now()
	s.logger.Info("Starting scheduled report run")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	text, err := s.pipeline.Generate(ctx, s.hour)
	if err != nil {
		s.logger.Error("Scheduled report run failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if err := s.deliverer.Send(ctx, s.webhookURL, text); err != nil {
		s.logger.Error("Scheduled report delivery failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled report delivered",
		zap.Duration("duration", time.Since(start)))
}
