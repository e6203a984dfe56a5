package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultReminderSpec = "0 9 * * *"

type ReminderChecker interface {
	Check(ctx context.Context) (bool, error)
}

// ReminderScheduler runs the reminder check on a cron schedule.
type ReminderScheduler struct {
	engine  *cron.Cron
	checker ReminderChecker
	spec    string
	timeout time.Duration
	logger  *zap.Logger
}

func NewReminderScheduler(checker ReminderChecker, spec string, location *time.Location, logger *zap.Logger) *ReminderScheduler {
	if spec == "" {
		spec = DefaultReminderSpec
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{
		engine:  cron.New(cron.WithLocation(location)),
		checker: checker,
		spec:    spec,
		timeout: time.Minute,
		logger:  logger.Named("scheduler"),
	}
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.engine.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("schedule reminder check %q: %w", s.spec, err)
	}
	s.engine.Start()
	s.logger.Info("reminder scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running check to finish.
func (s *ReminderScheduler) Stop() {
	<-s.engine.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.checker.Check(ctx)
	if err != nil {
		s.logger.Error("reminder check failed", zap.Error(err))
		return
	}
	s.logger.Debug("reminder check finished", zap.Bool("sent", sent))
}
