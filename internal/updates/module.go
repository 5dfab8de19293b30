package updates

import (
	"github.com/githerd/githerd/internal/git"
	"github.com/githerd/githerd/internal/runner"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"updates",
		logger.WithNamedLogger("updates"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(func(s *git.Service) GitSyncer { return s }, fx.Private),
		fx.Provide(func(r *runner.Runner) ProcessRunner { return r }, fx.Private),
		fx.Provide(NewService),
	)
}
