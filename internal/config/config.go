package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type gitConfig struct {
	Dir     string        `koanf:"dir"`
	Remote  string        `koanf:"remote"`
	Branch  string        `koanf:"branch"`
	Timeout time.Duration `koanf:"timeout"`
}

type processConfig struct {
	Command     string        `koanf:"command"`
	Args        []string      `koanf:"args"`
	Dir         string        `koanf:"dir"`
	LogFile     string        `koanf:"log_file"`
	Pattern     string        `koanf:"pattern"`
	GracePeriod time.Duration `koanf:"grace_period"`
}

type updaterConfig struct {
	Interval  time.Duration `koanf:"interval"`
	AutoStart bool          `koanf:"auto_start"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage storageConfig `koanf:"storage"`
	Git     gitConfig     `koanf:"git"`
	Process processConfig `koanf:"process"`
	Updater updaterConfig `koanf:"updater"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Git: gitConfig{
			Dir:     ".",
			Remote:  "origin",
			Branch:  "main",
			Timeout: 30 * time.Second,
		},

		Process: processConfig{
			Command:     "python3",
			Args:        []string{"monitor.py"},
			Dir:         "",
			LogFile:     "monitor.log",
			Pattern:     "monitor.py",
			GracePeriod: 10 * time.Second,
		},

		Updater: updaterConfig{
			Interval:  300 * time.Second,
			AutoStart: true,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	// The monitored process runs from the checkout unless told otherwise.
	if cfg.Process.Dir == "" {
		cfg.Process.Dir = cfg.Git.Dir
	}
	if !filepath.IsAbs(cfg.Process.LogFile) {
		cfg.Process.LogFile = filepath.Join(cfg.Process.Dir, cfg.Process.LogFile)
	}

	return cfg, nil
}
