package handler

import (
	"bytes"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	result, err := h.service.List(c.Query("search"), page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	cust, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req model.Customer
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cust, err := h.service.Create(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": cust})
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req model.Customer
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cust, err := h.service.Update(c.Params("id"), &req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Customer updated", "data": cust})
}

func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

func (h *CustomerHandler) ExportCustomers(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(&buf); err != nil {
		return fail(c, err)
	}
	return sendCSV(c, "customers.csv", buf.Bytes())
}

func (h *CustomerHandler) ImportCustomers(c *fiber.Ctx) error {
	r, closeFn, err := csvBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	defer closeFn()

	result, err := h.service.ImportCSV(r, getStaffID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Import finished", "data": result})
}
