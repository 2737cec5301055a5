package summary

import (
	"context"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// view adapts a read-only service call to a handler.
func view[T any](fn func(context.Context, domain.Caller) (T, error), message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := fn(c.Context(), common.CallerFrom(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, v)
	}
}
