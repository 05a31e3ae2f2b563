package handler

import (
	"bytes"
	"io"
	"mime/multipart"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products
// Query params: search, category, status, page, pageSize
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	result, err := h.service.List(service.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   model.ProductStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidJSON(c)
	}

	created, err := h.service.Create(&product, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": created})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidJSON(c)
	}

	updated, err := h.service.Update(c.Params("id"), &product, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// ExportProducts streams the catalog as CSV
// GET /api/v1/dashboard/products/export
func (h *ProductHandler) ExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(&buf); err != nil {
		return fail(c, err)
	}
	return sendCSV(c, "products.csv", buf.Bytes())
}

// ImportProducts accepts a CSV upload (multipart field "file") or a raw CSV body
// POST /api/v1/dashboard/products/import
func (h *ProductHandler) ImportProducts(c *fiber.Ctx) error {
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

func sendCSV(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

// csvBody prefers a multipart "file" field and falls back to the raw body.
func csvBody(c *fiber.Ctx) (io.Reader, func(), error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { closeFile(f) }, nil
	}
	if len(c.Body()) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "CSV file is required")
	}
	return bytes.NewReader(c.Body()), func() {}, nil
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
