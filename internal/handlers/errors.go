package handlers

import (
	"errors"
	"log/slog"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns handler errors into JSON responses. Internal causes are
// logged and never sent to the client.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if ae := apperr.As(err); ae != nil {
			if ae.HTTPStatus >= fiber.StatusInternalServerError {
				log.ErrorContext(c.UserContext(), "request failed",
					"method", c.Method(), "path", c.Path(), "code", ae.Code, "error", ae.Cause)
			}
			return c.Status(ae.HTTPStatus).JSON(ae)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"code": "HTTP_ERROR", "message": fe.Message})
		}

		log.ErrorContext(c.UserContext(), "unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(apperr.Internal(err))
	}
}

// parseBody decodes the JSON body into dst.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.ValidationError("Invalid request body")
	}
	return nil
}
