package handler

import (
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WarehouseHandler struct {
	service service.WarehouseService
}

func NewWarehouseHandler(s service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: s}
}

func (h *WarehouseHandler) GetWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.service.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) GetWarehouse(c *fiber.Ctx) error {
	w, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(w)
}

// GetDefaultWarehouse returns the flagged default, or the first warehouse
func (h *WarehouseHandler) GetDefaultWarehouse(c *fiber.Ctx) error {
	w, err := h.service.Default()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(w)
}

func (h *WarehouseHandler) CreateWarehouse(c *fiber.Ctx) error {
	var req model.Warehouse
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	w, err := h.service.Add(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Warehouse created", "data": w})
}

func (h *WarehouseHandler) UpdateWarehouse(c *fiber.Ctx) error {
	var req model.Warehouse
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	req.ID = c.Params("id")

	w, err := h.service.Update(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Warehouse updated", "data": w})
}

func (h *WarehouseHandler) DeleteWarehouse(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse deleted"})
}
