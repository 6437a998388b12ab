package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// mensaje genérico para fallos internos: nunca se expone el detalle al cliente.
const internalMessage = "error del servidor, intente más tarde"

// errorBody construye el cuerpo estándar de error.
func errorBody(code, message string) dto.ErrorResponse {
	return dto.ErrorResponse{OK: false, Code: code, Message: message}
}

// statusFor traduce un error de dominio a status HTTP y código de respuesta.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", internalMessage
	}
}

// respondError reporta el error al logger y responde con el status que le corresponde.
// Los errores esperados (4xx) se registran como warning; los internos con su causa completa.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, context, operation string) error {
	status, code, message := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Handle(err, context, operation)
	} else {
		log.Warning(operation+": "+err.Error(), context)
	}
	return c.Status(status).JSON(errorBody(code, message))
}
