package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/room-booking-service/internal/config"
	"github.com/spec-kit/room-booking-service/internal/observability"
	"github.com/spec-kit/room-booking-service/internal/service"
)

// Sweeper drives the periodic pass that marks confirmed reservations whose
// end time has passed as completed. Each run is independent, so a failed run
// is simply retried on the next tick.
type Sweeper struct {
	reservations *service.ReservationService
	metrics      *observability.Metrics
	logger       *zap.Logger
	interval     time.Duration
	cron         *cron.Cron
}

// NewSweeper constructs the sweeper.
func NewSweeper(reservationService *service.ReservationService, metrics *observability.Metrics, logger *zap.Logger, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{
		reservations: reservationService,
		metrics:      metrics,
		logger:       logger,
		interval:     cfg.Interval(),
	}
}

// Start schedules sweep runs at the configured cadence. It returns an error
// only when the schedule spec cannot be registered.
func (s *Sweeper) Start(ctx context.Context) error {
	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("reservation sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("reservation sweeper stopped")
}

func (s *Sweeper) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	completed, err := s.reservations.RunSweep(runCtx, time.Now())
	if err != nil {
		s.logger.Error("reservation sweep failed", zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.RecordSweep(completed)
	}
	if completed > 0 {
		s.logger.Info("reservation sweep completed", zap.Int64("reservations_completed", completed))
	}
}
