package runner

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"runner",
		logger.WithNamedLogger("runner"),
		fx.Provide(NewRunner),
	)
}
