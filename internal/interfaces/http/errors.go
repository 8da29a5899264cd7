package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/domain"
)

var fiberErrorCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
	fiber.StatusUnprocessableEntity:   "INVALID_BODY",
}

// ErrorHandler traduce los errores de dominio a respuestas HTTP. Es el único lugar donde se decide
// el código de estado de un error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		verr *domain.ValidationError
		ferr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos de entrada inválidos",
			Fields:  dto.FieldErrorsFrom(verr),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.As(err, &ferr):
		code, ok := fiberErrorCodes[ferr.Code]
		if !ok {
			code = "HTTP_ERROR"
		}
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: code, Message: ferr.Message})
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).
			Str("method", c.Method()).
			Str("endpoint", c.Path()).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}
