package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"gemshop/internal/services"
)

// statusForError maps domain errors onto HTTP status codes. Anything not in
// the taxonomy is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrSlipNotFound),
		errors.Is(err, services.ErrGemstoneNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrIllegalTransition):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrRateUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error body for a failed operation.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", message, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseIDParam reads a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id), nil
}
