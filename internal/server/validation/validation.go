package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DecorateWithBodyEx parses and validates the request body before handing
// it to the wrapped handler. An absent body leaves the zero value, so
// requests with all-optional fields need no payload.
func DecorateWithBodyEx[T any](v *validator.Validate, h func(*fiber.Ctx, *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)

		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		if err := v.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return h(c, req)
	}
}
