package handler

import (
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	service service.TransferService
}

func NewTransferHandler(s service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// GetTransfers lists transfers newest first
// Query params: productId, warehouseId, status
func (h *TransferHandler) GetTransfers(c *fiber.Ctx) error {
	transfers, err := h.service.List(service.TransferFilter{
		ProductID:   c.Query("productId"),
		WarehouseID: c.Query("warehouseId"),
		Status:      model.TransferStatus(c.Query("status")),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transfers)
}

func (h *TransferHandler) GetTransfer(c *fiber.Ctx) error {
	t, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

// CreateTransfer records a transfer and moves the stock right away
func (h *TransferHandler) CreateTransfer(c *fiber.Ctx) error {
	var req model.StockTransfer
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	t, err := h.service.Create(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transfer recorded", "data": t})
}

func (h *TransferHandler) CompleteTransfer(c *fiber.Ctx) error {
	t, err := h.service.Complete(c.Params("id"), getStaffID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer completed", "data": t})
}

func (h *TransferHandler) CancelTransfer(c *fiber.Ctx) error {
	t, err := h.service.Cancel(c.Params("id"), getStaffID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer cancelled", "data": t})
}
