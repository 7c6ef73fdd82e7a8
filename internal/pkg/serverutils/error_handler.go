package serverutils

import (
	"errors"
	"fmt"

	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/pkg/charts"
	"survey-dashboard-be/pkg/cleaning"
	"survey-dashboard-be/pkg/table"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ErrorHandlerMiddleware turns handler errors into the JSON envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

// WriteError maps err to a status code and writes the envelope.
func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var (
		fiberErr    *fiber.Error
		validErrs   validator.ValidationErrors
		coercionErr *cleaning.CoercionError
	)

	switch {
	case errors.As(err, &validErrs):
		fields := make([]FieldError, 0, len(validErrs))
		for _, fe := range validErrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ErrorDataResponse(fiber.StatusBadRequest, "Validation failed", fields))

	case errors.As(err, &coercionErr):
		return ctx.Status(fiber.StatusUnprocessableEntity).
			JSON(ErrorResponse(fiber.StatusUnprocessableEntity, coercionErr.Error()))

	case errors.Is(err, charts.ErrUnknownTab),
		errors.Is(err, table.ErrUnknownColumn),
		errors.Is(err, table.ErrRowOutOfRange),
		errors.Is(err, table.ErrColumnMismatch):
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))

	case errors.As(err, &fiberErr):
		if fiberErr.Code >= fiber.StatusInternalServerError {
			log.Error("HTTP", fiberErr.Message, map[string]interface{}{"path": ctx.Path()})
		}
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	log.Error("HTTP", "Unhandled error", map[string]interface{}{
		"path":   ctx.Path(),
		"method": ctx.Method(),
		"error":  fmt.Sprintf("%v", err),
	})
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
