package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func newTestRunner(t *testing.T, command string, args ...string) *Runner {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("process lifecycle tests are unix-only")
	}

	dir := t.TempDir()
	return NewRunner(Config{
		Command:     command,
		Args:        args,
		Dir:         dir,
		LogFile:     filepath.Join(dir, "out.log"),
		Pattern:     "githerd-test-pattern-that-never-matches",
		GracePeriod: 2 * time.Second,
	}, zaptest.NewLogger(t))
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRunner_StartStop(t *testing.T) {
	r := newTestRunner(t, "sleep", "60")
	ctx := context.Background()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Stop(context.Background()) })

	if !r.Running() {
		t.Fatal("expected process to be running")
	}

	status := r.Status()
	if status.PID <= 0 {
		t.Errorf("expected positive PID, got %d", status.PID)
	}
	if status.StartedAt == nil {
		t.Error("expected StartedAt to be set")
	}

	if err := r.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning on second start, got %v", err)
	}

	if err := r.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if r.Running() {
		t.Error("expected process to be stopped")
	}

	if err := r.Stop(ctx); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning on second stop, got %v", err)
	}
}

func TestRunner_ProcessExitObserved(t *testing.T) {
	r := newTestRunner(t, "true")
	ctx := context.Background()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitUntil(t, 5*time.Second, func() bool { return !r.Running() })

	status := r.Status()
	if status.LastExit != "exit status 0" {
		t.Errorf("expected clean exit recorded, got %q", status.LastExit)
	}
}

func TestRunner_Restart(t *testing.T) {
	r := newTestRunner(t, "sleep", "60")
	ctx := context.Background()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Stop(context.Background()) })

	firstPID := r.Status().PID

	if err := r.Restart(ctx); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}

	status := r.Status()
	if !status.Running {
		t.Fatal("expected process to be running after restart")
	}
	if status.PID == firstPID {
		t.Error("expected a new PID after restart")
	}
	if status.Restarts != 1 {
		t.Errorf("expected 1 restart, got %d", status.Restarts)
	}
}

func TestRunner_RestartWhenStopped(t *testing.T) {
	r := newTestRunner(t, "sleep", "60")
	ctx := context.Background()

	// Restart with nothing running behaves like a plain launch.
	if err := r.Restart(ctx); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Stop(context.Background()) })

	if !r.Running() {
		t.Error("expected process to be running")
	}
}

func TestRunner_LogFileAppends(t *testing.T) {
	r := newTestRunner(t, "sh", "-c", "echo hello")
	ctx := context.Background()

	for range 2 {
		if err := r.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		waitUntil(t, 5*time.Second, func() bool { return !r.Running() })
	}

	data, err := os.ReadFile(r.config.LogFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	if got := strings.Count(string(data), "hello"); got != 2 {
		t.Errorf("expected log file to hold output of both runs, got %d lines: %q", got, data)
	}
}
