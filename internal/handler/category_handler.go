package handler

import (
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// GetCategories returns the flat list, or the nested tree with ?view=tree
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	if c.Query("view") == "tree" {
		tree, err := h.service.Tree()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(tree)
	}

	categories, err := h.service.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	cat, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cat)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cat, err := h.service.Create(&req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": cat})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cat, err := h.service.Update(c.Params("id"), &req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Category updated", "data": cat})
}

// DeleteCategory removes the category and every descendant
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	removed, err := h.service.Delete(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted", "data": removed})
}
