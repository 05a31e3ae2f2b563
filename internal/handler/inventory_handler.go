package handler

import (
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetInventory returns one row per variant (or per product without variants)
// with its quantity at every warehouse.
// Query params: search, warehouseId, page, pageSize
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	rows, err := h.service.View(service.InventoryQuery{
		Search:      c.Query("search"),
		WarehouseID: c.Query("warehouseId"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// AdjustStock records a manual IN/OUT correction
// POST /api/v1/dashboard/inventory/adjust
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req model.StockAdjustment
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.Adjust(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": product})
}
