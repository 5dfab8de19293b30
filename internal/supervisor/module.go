package supervisor

import (
	"github.com/githerd/githerd/internal/runner"
	"github.com/githerd/githerd/internal/updates"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"supervisor",
		logger.WithNamedLogger("supervisor"),
		fx.Provide(func(s *updates.Service) Updater { return s }, fx.Private),
		fx.Provide(func(r *runner.Runner) Launcher { return r }, fx.Private),
		fx.Provide(New),
		fx.Invoke(func(lc fx.Lifecycle, s *Supervisor) {
			lc.Append(fx.Hook{
				OnStart: s.Start,
				OnStop:  s.Stop,
			})
		}),
	)
}
