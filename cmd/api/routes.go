package main

import (
	"go-pos-inventory/internal/handler"
	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/ws"

	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	auth          *handler.AuthHandler
	dashboard     *handler.DashboardHandler
	warehouses    *handler.WarehouseHandler
	products      *handler.ProductHandler
	inventory     *handler.InventoryHandler
	transfers     *handler.TransferHandler
	categories    *handler.CategoryHandler
	customers     *handler.CustomerHandler
	staff         *handler.StaffHandler
	notifications *handler.NotificationHandler
	pos           *handler.POSHandler
}

func registerRoutes(app *fiber.App, h handlers, tokens middleware.TokenValidator, hub *ws.Hub) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "clients": hub.ClientCount()})
	})

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.auth.Login)
	auth.Post("/validate-token", h.auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	dash := api.Group("/dashboard", middleware.RequireAuth(tokens))

	dash.Get("/stats", h.dashboard.GetDashboardStats)
	dash.Get("/me", h.auth.Me)
	dash.Post("/me/password", h.auth.ChangePassword)

	// Warehouses
	dash.Get("/warehouses", h.warehouses.GetWarehouses)
	dash.Get("/warehouses/default", h.warehouses.GetDefaultWarehouse)
	dash.Get("/warehouses/:id", h.warehouses.GetWarehouse)
	dash.Post("/warehouses", h.warehouses.CreateWarehouse)
	dash.Put("/warehouses/:id", h.warehouses.UpdateWarehouse)
	dash.Delete("/warehouses/:id", h.warehouses.DeleteWarehouse)

	// Products
	dash.Get("/products", h.products.GetProducts)
	dash.Get("/products/export", h.products.ExportProducts)
	dash.Post("/products/import", h.products.ImportProducts)
	dash.Get("/products/:id", h.products.GetProduct)
	dash.Post("/products", h.products.CreateProduct)
	dash.Put("/products/:id", h.products.UpdateProduct)
	dash.Delete("/products/:id", h.products.DeleteProduct)

	// Inventory
	dash.Get("/inventory", h.inventory.GetInventory)
	dash.Post("/inventory/adjust", h.inventory.AdjustStock)

	// Transfers
	dash.Get("/transfers", h.transfers.GetTransfers)
	dash.Get("/transfers/:id", h.transfers.GetTransfer)
	dash.Post("/transfers", h.transfers.CreateTransfer)
	dash.Post("/transfers/:id/complete", h.transfers.CompleteTransfer)
	dash.Post("/transfers/:id/cancel", h.transfers.CancelTransfer)

	// Categories
	dash.Get("/categories", h.categories.GetCategories)
	dash.Get("/categories/:id", h.categories.GetCategory)
	dash.Post("/categories", h.categories.CreateCategory)
	dash.Put("/categories/:id", h.categories.UpdateCategory)
	dash.Delete("/categories/:id", h.categories.DeleteCategory)

	// Customers
	dash.Get("/customers", h.customers.GetCustomers)
	dash.Get("/customers/export", h.customers.ExportCustomers)
	dash.Post("/customers/import", h.customers.ImportCustomers)
	dash.Get("/customers/:id", h.customers.GetCustomer)
	dash.Post("/customers", h.customers.CreateCustomer)
	dash.Put("/customers/:id", h.customers.UpdateCustomer)
	dash.Delete("/customers/:id", h.customers.DeleteCustomer)

	// Staff
	dash.Get("/staff", h.staff.GetStaff)
	dash.Get("/staff/export", h.staff.ExportStaff)
	dash.Post("/staff/import", h.staff.ImportStaff)
	dash.Get("/staff/:id", h.staff.GetStaffMember)
	dash.Post("/staff", h.staff.CreateStaff)
	dash.Put("/staff/:id", h.staff.UpdateStaff)
	dash.Delete("/staff/:id", h.staff.DeleteStaff)

	// Notifications
	dash.Get("/notifications", h.notifications.GetNotifications)
	dash.Get("/notifications/unread-count", h.notifications.GetUnreadCount)
	dash.Post("/notifications", h.notifications.CreateNotification)
	dash.Post("/notifications/read-all", h.notifications.MarkAllRead)
	dash.Post("/notifications/:id/read", h.notifications.MarkRead)
	dash.Delete("/notifications/:id", h.notifications.DeleteNotification)

	// Point of sale
	pos := dash.Group("/pos")
	pos.Get("/carts/:cartId", h.pos.GetCart)
	pos.Post("/carts/:cartId/items", h.pos.AddToCart)
	pos.Patch("/carts/:cartId/items", h.pos.AdjustQuantity)
	pos.Delete("/carts/:cartId/items", h.pos.RemoveLine)
	pos.Delete("/carts/:cartId", h.pos.ClearCart)
	pos.Post("/carts/:cartId/checkout", h.pos.Checkout)
	pos.Post("/carts/:cartId/orders", h.pos.CreateOrder)
	dash.Get("/orders", h.pos.GetOrders)
	dash.Get("/orders/:id", h.pos.GetOrder)

	// WebSocket Route
	app.Use("/ws", handler.RequireUpgrade)
	app.Get("/ws", handler.Stream(hub))
}
