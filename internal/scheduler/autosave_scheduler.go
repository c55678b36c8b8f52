// Package scheduler drives the periodic autosave of open editing sessions
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionTicker runs one autosave cycle over every open session
type SessionTicker interface {
	// TickAll saves every dirty session once
	//
	// "ctx" is the context for the saves.
	//
	// Returns the number of saves attempted.
	TickAll(ctx context.Context) int
}

// AutosaveScheduler ticks the open sessions at a fixed interval
//
// A tick that is still running when the next one is due is skipped, so a slow store never
// leads to overlapping sweeps.
type AutosaveScheduler struct {
	cron     *cron.Cron
	sessions SessionTicker
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewAutosaveScheduler creates a new scheduler
func NewAutosaveScheduler(sessions SessionTicker, interval time.Duration, logger *zap.Logger) *AutosaveScheduler {
	s := &AutosaveScheduler{
		sessions: sessions,
		interval: interval,
		timeout:  interval,
		logger:   logger,
	}
	cronLogger := &cronLogger{logger: logger.Sugar()}
	s.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(s.runTick))
	return s
}

// Start starts the scheduler
func (s *AutosaveScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Autosave scheduler started", zap.Duration("interval", s.interval))
}

// Stop stops the scheduler and waits for a running tick to finish
func (s *AutosaveScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Autosave scheduler stopped")
}

// runTick executes one sweep with a deadline of one interval
func (s *AutosaveScheduler) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if attempted := s.sessions.TickAll(ctx); attempted > 0 {
		s.logger.Debug("Autosave sweep finished", zap.Int("saves", attempted))
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
