package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner owns the monitored child process. Liveness is answered from the
// held handle, not from scanning the process table; the table scan in
// scan.go is only a pre-launch guard against strays.
type Runner struct {
	config Config
	logger *zap.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	done      chan struct{}
	startedAt time.Time
	restarts  int
	lastExit  string
}

// NewRunner creates a runner for the configured command.
func NewRunner(config Config, logger *zap.Logger) *Runner {
	return &Runner{
		config: config,
		logger: logger,
	}
}

// Start launches the process detached from the controlling terminal with
// combined output appended to the configured log file. Any unowned process
// matching the configured pattern is terminated first.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runningLocked() {
		return ErrAlreadyRunning
	}

	if err := r.terminateStale(ctx); err != nil {
		r.logger.Warn("failed to clear stale processes", zap.Error(err))
	}

	logFile, err := os.OpenFile(r.config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: failed to open log file: %w", ErrStartFailed, err)
	}
	defer logFile.Close()

	cmd := exec.Command(r.config.Command, r.config.Args...)
	cmd.Dir = r.config.Dir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = detachAttr()

	if err := cmd.Start(); err != nil {
		r.logger.Error("failed to start process",
			zap.String("command", r.config.Command), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStartFailed, err)
	}

	done := make(chan struct{})
	r.cmd = cmd
	r.done = done
	r.startedAt = time.Now()

	go r.wait(cmd, done)

	r.logger.Info("process started",
		zap.String("command", r.config.Command),
		zap.Strings("args", r.config.Args),
		zap.Int("pid", cmd.Process.Pid),
		zap.String("log_file", r.config.LogFile))

	return nil
}

// Stop signals the process group and waits for the process to exit,
// escalating to a kill after the grace period.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.runningLocked() {
		r.mu.Unlock()
		return ErrNotRunning
	}
	cmd, done := r.cmd, r.done
	r.mu.Unlock()

	pid := cmd.Process.Pid
	r.logger.Info("stopping process", zap.Int("pid", pid))

	if err := terminateGroup(cmd); err != nil {
		r.logger.Warn("failed to signal process group", zap.Int("pid", pid), zap.Error(err))
	}

	grace := r.config.GracePeriod
	if grace <= 0 {
		grace = 10 * time.Second
	}

	select {
	case <-done:
	case <-time.After(grace):
		r.logger.Warn("grace period elapsed, killing process", zap.Int("pid", pid))
		if err := killGroup(cmd); err != nil {
			r.logger.Warn("failed to kill process group", zap.Int("pid", pid), zap.Error(err))
		}
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for process to exit: %w", ctx.Err())
		}
	case <-ctx.Done():
		return fmt.Errorf("waiting for process to exit: %w", ctx.Err())
	}

	r.logger.Info("process stopped", zap.Int("pid", pid))

	return nil
}

// Restart stops the process if it is running and starts it again. The gap
// between stop and start is inherent: the restart is not atomic.
func (r *Runner) Restart(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil && !errors.Is(err, ErrNotRunning) {
		return err
	}

	if err := r.Start(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	r.restarts++
	r.mu.Unlock()

	return nil
}

// Running reports whether the owned process is currently alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runningLocked()
}

// Status returns a snapshot of the process state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := Status{
		Running:  r.runningLocked(),
		Restarts: r.restarts,
		LastExit: r.lastExit,
	}

	if status.Running {
		status.PID = r.cmd.Process.Pid
		startedAt := r.startedAt
		status.StartedAt = &startedAt
	}

	return status
}

func (r *Runner) runningLocked() bool {
	if r.cmd == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

func (r *Runner) wait(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	r.mu.Lock()
	if err != nil {
		r.lastExit = err.Error()
	} else {
		r.lastExit = "exit status 0"
	}
	r.mu.Unlock()

	close(done)

	if err != nil {
		r.logger.Warn("process exited", zap.Int("pid", cmd.Process.Pid), zap.Error(err))
	} else {
		r.logger.Info("process exited", zap.Int("pid", cmd.Process.Pid))
	}
}
