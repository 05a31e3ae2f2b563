package handler

import (
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// POSHandler serves the point-of-sale cart, checkout and order history.
type POSHandler struct {
	cart   service.CartService
	orders service.OrderService
}

func NewPOSHandler(cart service.CartService, orders service.OrderService) *POSHandler {
	return &POSHandler{cart: cart, orders: orders}
}

type CartLineRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type CartAdjustRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Delta     int    `json:"delta"`
}

func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.cart.Get(c.Params("cartId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

// AddToCart adds a line or increments the matching one
// POST /api/v1/dashboard/pos/carts/:cartId/items
func (h *POSHandler) AddToCart(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cart.AddToCart(c.Params("cartId"), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

// AdjustQuantity changes a line by delta; lines at zero or below are removed
// PATCH /api/v1/dashboard/pos/carts/:cartId/items
func (h *POSHandler) AdjustQuantity(c *fiber.Ctx) error {
	var req CartAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cart, err := h.cart.AdjustQuantity(c.Params("cartId"), req.ProductID, req.VariantID, req.Delta)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

// RemoveLine drops a line
// DELETE /api/v1/dashboard/pos/carts/:cartId/items?productId=&variantId=
func (h *POSHandler) RemoveLine(c *fiber.Ctx) error {
	cart, err := h.cart.RemoveLine(c.Params("cartId"), c.Query("productId"), c.Query("variantId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cart)
}

func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.cart.Clear(c.Params("cartId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// Checkout takes payment locally and returns a receipt
// POST /api/v1/dashboard/pos/carts/:cartId/checkout
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	receipt, err := h.orders.Checkout(c.UserContext(), c.Params("cartId"), &req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Payment successful", "data": receipt})
}

// CreateOrder submits the cart to the order service. Remote and network
// failures come back as {success:false} with status 200.
// POST /api/v1/dashboard/pos/carts/:cartId/orders
func (h *POSHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	result, err := h.orders.CreateOrder(c.UserContext(), c.Params("cartId"), &req, getStaffID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *POSHandler) GetOrders(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	result, err := h.orders.List(page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *POSHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.orders.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}
