package config

import (
	"github.com/githerd/githerd/internal/git"
	"github.com/githerd/githerd/internal/runner"
	"github.com/githerd/githerd/internal/supervisor"
	"github.com/githerd/githerd/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Dir:     cfg.Git.Dir,
				Remote:  cfg.Git.Remote,
				Branch:  cfg.Git.Branch,
				Timeout: cfg.Git.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) runner.Config {
			return runner.Config{
				Command:     cfg.Process.Command,
				Args:        cfg.Process.Args,
				Dir:         cfg.Process.Dir,
				LogFile:     cfg.Process.LogFile,
				Pattern:     cfg.Process.Pattern,
				GracePeriod: cfg.Process.GracePeriod,
			}
		}),
		fx.Provide(func(cfg Config) supervisor.Config {
			return supervisor.Config{
				Interval:  cfg.Updater.Interval,
				AutoStart: cfg.Updater.AutoStart,
			}
		}),
	)
}
