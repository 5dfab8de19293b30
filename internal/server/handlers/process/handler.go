package process

import (
	"errors"
	"fmt"

	"github.com/githerd/githerd/internal/runner"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	runner *runner.Runner

	logger *zap.Logger
}

func NewHandler(runner *runner.Runner, logger *zap.Logger) handler.Handler {
	return &Handler{
		runner: runner,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/process")

	r.Use(h.errorsHandler)
	r.Get("/", h.status)
	r.Post("/start", h.start)
	r.Post("/stop", h.stop)
	r.Post("/restart", h.restart)
}

func (h *Handler) status(c *fiber.Ctx) error {
	return c.JSON(newStatusResponse(h.runner.Status()))
}

func (h *Handler) start(c *fiber.Ctx) error {
	if err := h.runner.Start(c.Context()); err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(newStatusResponse(h.runner.Status()))
}

func (h *Handler) stop(c *fiber.Ctx) error {
	if err := h.runner.Stop(c.Context()); err != nil {
		return fmt.Errorf("failed to stop process: %w", err)
	}

	return c.JSON(newStatusResponse(h.runner.Status()))
}

func (h *Handler) restart(c *fiber.Ctx) error {
	if err := h.runner.Restart(c.Context()); err != nil {
		return fmt.Errorf("failed to restart process: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(newStatusResponse(h.runner.Status()))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, runner.ErrAlreadyRunning), errors.Is(err, runner.ErrNotRunning):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
