package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindInvalidState:
		return fiber.StatusUnprocessableEntity
	case KindDuplicate:
		return fiber.StatusConflict
	case KindConflict:
		return fiber.StatusConflict
	case KindDependency:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as the standard error envelope. Unknown errors are
// reported as internal without leaking details.
func Respond(ctx *fiber.Ctx, err error) error {
	var lineErrs *LineErrors
	if errors.As(err, &lineErrs) {
		return ctx.Status(statusFor(lineErrs.WorstKind())).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  lineErrs.Errors,
		})
	}

	if appErr, ok := As(err); ok {
		return ctx.Status(statusFor(appErr.Kind)).JSON(fiber.Map{
			"success": false,
			"message": appErr.Message,
			"code":    appErr.Code,
		})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
		"error":   err.Error(),
	})
}
