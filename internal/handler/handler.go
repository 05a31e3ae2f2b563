package handler

import (
	"errors"
	"strconv"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"
	"go-pos-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

var notFoundErrors = []error{
	service.ErrWarehouseNotFound,
	service.ErrProductNotFound,
	service.ErrVariantNotFound,
	service.ErrTransferNotFound,
	service.ErrCategoryNotFound,
	service.ErrParentCategoryNotFound,
	service.ErrCustomerNotFound,
	service.ErrStaffNotFound,
	service.ErrOrderNotFound,
	service.ErrCartLineNotFound,
	service.ErrNotificationNotFound,
	service.ErrNoWarehouses,
	repository.ErrNotFound,
}

var conflictErrors = []error{
	service.ErrDefaultWarehouseDelete,
	service.ErrSKUExists,
	service.ErrEmailExists,
	service.ErrInvalidTransferState,
	service.ErrCategoryCycle,
	service.ErrEmptyCart,
	service.ErrInsufficientPayment,
	service.ErrProductUnavailable,
	service.ErrVariantRequired,
	model.ErrInsufficientStock,
	repository.ErrDuplicate,
}

var authErrors = []error{
	service.ErrInvalidCredentials,
	service.ErrStaffInactive,
	service.ErrWrongPassword,
	jwt.ErrInvalidToken,
	jwt.ErrMissingToken,
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case isAny(err, conflictErrors):
		return fiber.StatusConflict
	case isAny(err, authErrors):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// fail writes err as {"error": ...}. Unexpected errors are not echoed back.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

// getStaffID reads the staff ID set by the auth middleware
func getStaffID(c *fiber.Ctx) string {
	staffID, ok := c.Locals("staff_id").(string)
	if !ok || staffID == "" {
		return "system"
	}
	return staffID
}

// pageParams reads ?page= and ?pageSize=. Missing or bad values become zero
// and the pagination defaults apply.
func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return page, pageSize
}
