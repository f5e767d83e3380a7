package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"seedrec/internal/domain/entity"
	"seedrec/internal/logging"
	"seedrec/internal/metrics"
)

// ErrorHandler is the fiber fallback for errors no handler mapped. Routing
// errors keep their status; anything else is an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := entity.CodeBadRequest
		if fe.Code >= fiber.StatusInternalServerError {
			code = entity.CodeParseError
		}
		metrics.APIErrorsTotal.WithLabelValues(string(code)).Inc()
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message, Code: code})
	}

	logging.Error().Err(err).Str("request_id", requestID(c)).Str("path", c.Path()).Msg("unexpected error")
	metrics.APIErrorsTotal.WithLabelValues(string(entity.CodeParseError)).Inc()
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: msgUnexpected,
		Code:  entity.CodeParseError,
	})
}
