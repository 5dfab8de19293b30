package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/githerd/githerd/internal/updates"
	"go.uber.org/zap"
)

type Config struct {
	Interval  time.Duration // sleep between update cycles
	AutoStart bool          // launch the monitored process on daemon start
}

// Updater is the slice of the update service the loop depends on.
type Updater interface {
	Run(ctx context.Context, upstream string) (*updates.Cycle, error)
}

// Launcher starts the monitored process.
type Launcher interface {
	Start(ctx context.Context) error
}

// Supervisor drives the periodic update loop: cycle, sleep the full
// interval, repeat. There is no catch-up and no jitter; a long cycle just
// pushes the next one out. Cycle failures never stop the loop.
//
// Shutting the daemon down stops the loop but leaves the monitored process
// running: it is detached and owns its own session.
type Supervisor struct {
	config   Config
	updater  Updater
	launcher Launcher
	logger   *zap.Logger

	cancel  context.CancelFunc
	stopped chan struct{}
}

func New(config Config, updater Updater, launcher Launcher, logger *zap.Logger) *Supervisor {
	return &Supervisor{
		config:   config,
		updater:  updater,
		launcher: launcher,
		logger:   logger,
	}
}

// Start launches the monitored process (when configured to) and spawns the
// poll loop. A failed launch is logged, not fatal: the first behind-cycle
// will try again.
func (s *Supervisor) Start(ctx context.Context) error {
	if s.config.AutoStart {
		if err := s.launcher.Start(ctx); err != nil {
			s.logger.Error("failed to launch monitored process", zap.Error(err))
		}
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.stopped = make(chan struct{})

	go s.loop(loopCtx)

	s.logger.Info("supervisor started", zap.Duration("interval", s.config.Interval))

	return nil
}

// Stop cancels the poll loop and waits for it to drain.
func (s *Supervisor) Stop(ctx context.Context) error {
	s.cancel()

	select {
	case <-s.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("supervisor stopped")

	return nil
}

func (s *Supervisor) loop(ctx context.Context) {
	defer close(s.stopped)

	for {
		s.cycle(ctx)

		timer := time.NewTimer(s.config.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *Supervisor) cycle(ctx context.Context) {
	_, err := s.updater.Run(ctx, "")
	if err == nil {
		return
	}

	if errors.Is(err, updates.ErrCycleInProgress) {
		// A manual trigger beat us to it; the next tick retries.
		s.logger.Debug("skipping cycle, another is in progress")
		return
	}

	s.logger.Error("update cycle failed", zap.Error(err))
}
