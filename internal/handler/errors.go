package handler

import (
	"errors"

	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound),
		errors.Is(err, service.ErrDesignationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrDesignationExists),
		errors.Is(err, service.ErrSystemRole):
		return fiber.StatusConflict
	case errors.As(err, &validation),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidBackup),
		errors.Is(err, service.ErrEmptyImport):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	body := fiber.Map{"error": err.Error()}
	if status == fiber.StatusInternalServerError {
		body["error"] = "Internal Server Error"
	}
	var shortage *service.StockShortageError
	if errors.As(err, &shortage) {
		body["shortages"] = shortage.Lines
	}
	return c.Status(status).JSON(body)
}
