package handler

import (
	"bytes"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	staffService service.StaffService
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// GetStaff returns staff members
// Query params: search, role, page, pageSize
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	result, err := h.staffService.List(c.Query("search"), model.StaffRole(c.Query("role")), page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *StaffHandler) GetStaffMember(c *fiber.Ctx) error {
	m, err := h.staffService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

// CreateStaff handles staff creation
// POST /api/v1/dashboard/staff
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req service.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	m, err := h.staffService.Create(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Staff member created successfully",
		"data":    m,
	})
}

// UpdateStaff handles staff updates; the password only changes when sent
// PUT /api/v1/dashboard/staff/:id
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	var req service.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	m, err := h.staffService.Update(c.Params("id"), &req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Staff member updated successfully",
		"data":    m,
	})
}

func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == getStaffID(c) {
		return c.Status(409).JSON(fiber.Map{"error": "You cannot delete your own account"})
	}

	if err := h.staffService.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Staff member deleted successfully"})
}

func (h *StaffHandler) ExportStaff(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.staffService.ExportCSV(&buf); err != nil {
		return fail(c, err)
	}
	return sendCSV(c, "staff.csv", buf.Bytes())
}

func (h *StaffHandler) ImportStaff(c *fiber.Ctx) error {
	r, closeFn, err := csvBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	defer closeFn()

	result, err := h.staffService.ImportCSV(r, getStaffID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Import finished", "data": result})
}
