package supervisor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/githerd/githerd/internal/updates"
	"go.uber.org/zap/zaptest"
)

type fakeUpdater struct {
	runs atomic.Int64
	err  error
}

func (f *fakeUpdater) Run(_ context.Context, _ string) (*updates.Cycle, error) {
	f.runs.Add(1)
	return &updates.Cycle{}, f.err
}

type fakeLauncher struct {
	starts atomic.Int64
}

func (f *fakeLauncher) Start(_ context.Context) error {
	f.starts.Add(1)
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSupervisor_LaunchesAndPolls(t *testing.T) {
	updater := &fakeUpdater{}
	launcher := &fakeLauncher{}
	s := New(Config{Interval: 10 * time.Millisecond, AutoStart: true}, updater, launcher, zaptest.NewLogger(t))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if got := launcher.starts.Load(); got != 1 {
		t.Errorf("expected exactly one process launch, got %d", got)
	}

	// The first cycle runs immediately; later ones follow the interval.
	waitFor(t, 2*time.Second, func() bool { return updater.runs.Load() >= 3 })

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	settled := updater.runs.Load()
	time.Sleep(50 * time.Millisecond)
	if got := updater.runs.Load(); got != settled {
		t.Errorf("expected no cycles after stop, got %d more", got-settled)
	}
}

func TestSupervisor_NoAutoStart(t *testing.T) {
	updater := &fakeUpdater{}
	launcher := &fakeLauncher{}
	s := New(Config{Interval: time.Hour, AutoStart: false}, updater, launcher, zaptest.NewLogger(t))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = s.Stop(context.Background()) }()

	waitFor(t, 2*time.Second, func() bool { return updater.runs.Load() == 1 })

	if got := launcher.starts.Load(); got != 0 {
		t.Errorf("expected no launch with auto-start disabled, got %d", got)
	}
}

func TestSupervisor_SurvivesCycleErrors(t *testing.T) {
	updater := &fakeUpdater{err: updates.ErrCycleInProgress}
	s := New(Config{Interval: 10 * time.Millisecond, AutoStart: false}, updater, &fakeLauncher{}, zaptest.NewLogger(t))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = s.Stop(context.Background()) }()

	// Errors are logged and the loop keeps ticking.
	waitFor(t, 2*time.Second, func() bool { return updater.runs.Load() >= 3 })
}
