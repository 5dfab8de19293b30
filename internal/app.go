package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/githerd/githerd/internal/config"
	"github.com/githerd/githerd/internal/git"
	"github.com/githerd/githerd/internal/runner"
	"github.com/githerd/githerd/internal/server"
	"github.com/githerd/githerd/internal/supervisor"
	"github.com/githerd/githerd/internal/updates"
	"github.com/githerd/githerd/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		git.Module(),
		runner.Module(),
		updates.Module(),
		supervisor.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("githerd starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("githerd shutting down, monitored process stays detached")
					return nil
				},
			})
		}),
	).Run()
}
