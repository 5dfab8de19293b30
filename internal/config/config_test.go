package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Updater.Interval != 300*time.Second {
		t.Errorf("expected 300s poll interval, got %s", cfg.Updater.Interval)
	}
	if !cfg.Updater.AutoStart {
		t.Error("expected auto-start enabled by default")
	}
	if cfg.Git.Remote != "origin" || cfg.Git.Branch != "main" {
		t.Errorf("expected origin/main upstream, got %s/%s", cfg.Git.Remote, cfg.Git.Branch)
	}
	if cfg.Process.Pattern == "" {
		t.Error("expected a default process pattern")
	}
}

func TestNew_ProcessDirFallsBackToCheckout(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if cfg.Process.Dir != cfg.Git.Dir {
		t.Errorf("expected process dir to default to the checkout %q, got %q",
			cfg.Git.Dir, cfg.Process.Dir)
	}
	if cfg.Process.LogFile == "" {
		t.Error("expected a log file path")
	}
}
