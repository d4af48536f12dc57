package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libreria/util/errs"
	"libreria/util/logger"
)

// ResponseError turns AppErrors returned by handlers into JSON error
// responses. Anything else becomes a plain 500 so internals never leak.
func ResponseError() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == errs.KindDatabase || appErr.Kind == errs.KindInternal {
				logger.FromContext(c.Context()).Error(appErr.Message, zap.Error(appErr.Err))
				return c.Status(errs.HTTPStatus(appErr)).JSON(fiber.Map{"error": "internal server error"})
			}
			return c.Status(errs.HTTPStatus(appErr)).JSON(fiber.Map{"error": appErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		logger.FromContext(c.Context()).Error("unhandled error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
