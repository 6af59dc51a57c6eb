package handler

import (
	"errors"

	"go-pos-kasir/internal/apperr"
	"go-pos-kasir/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler memetakan error taxonomy ke HTTP status. Detail error
// internal hanya diekspos di development; di production jadi 500 opaque.
func NewErrorHandler(development bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Fiber's own errors (route not found, body limit, ...) keep their code
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		status := apperr.Status(err)
		if status != 500 {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
		message := "Internal Server Error"
		if development {
			message = err.Error()
		}
		return c.Status(500).JSON(fiber.Map{"error": message})
	}
}
