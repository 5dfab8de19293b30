package updates

import (
	"errors"
	"fmt"

	"github.com/githerd/githerd/internal/server/validation"
	"github.com/githerd/githerd/internal/updates"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const defaultListLimit = 50

type Handler struct {
	updatesSvc *updates.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(updatesSvc *updates.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		updatesSvc: updatesSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/updates")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/latest", h.latest)
	r.Get("/:id", h.get)
	r.Post("/trigger", validation.DecorateWithBodyEx(h.validator, h.trigger))
}

func (h *Handler) list(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)

	cycles, err := h.updatesSvc.List(c.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list update cycles: %w", err)
	}

	responses := lo.Map(cycles, func(cycle updates.Cycle, _ int) CycleResponse {
		return newCycleResponse(&cycle)
	})

	return c.JSON(responses)
}

func (h *Handler) latest(c *fiber.Ctx) error {
	cycle, err := h.updatesSvc.Latest(c.Context())
	if err != nil {
		return fmt.Errorf("failed to get latest update cycle: %w", err)
	}

	return c.JSON(newCycleResponse(cycle))
}

func (h *Handler) get(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	cycle, err := h.updatesSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get update cycle: %w", err)
	}

	return c.JSON(newCycleResponse(cycle))
}

func (h *Handler) trigger(c *fiber.Ctx, req *TriggerRequest) error {
	cycle, err := h.updatesSvc.Run(c.Context(), req.Ref)
	if err != nil {
		return fmt.Errorf("failed to run update cycle: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(newCycleResponse(cycle))
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, updates.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, updates.ErrCycleInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
