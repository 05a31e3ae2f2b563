package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/repository/memory"
	"go-pos-inventory/internal/service"
)

type testApp struct {
	app       *fiber.App
	repos     *repository.Repositories
	catalog   service.CatalogService
	transfers service.TransferService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)
	repos := memory.NewRepositories(store)
	carts := memory.NewCartRepo(store)

	warehouses := service.NewWarehouseService(repos.Warehouses, nil)
	catalog := service.NewCatalogService(repos.Products, event.Nop{}, nil)
	notifications := service.NewNotificationService(repos.Notifications, event.Nop{}, nil)
	inventory := service.NewInventoryService(catalog, repos.Warehouses, notifications, 10, event.Nop{}, nil)
	transfers := service.NewTransferService(repos.Transfers, repos.Warehouses, catalog, notifications, 10, event.Nop{}, nil)
	cart := service.NewCartService(carts, catalog)
	orders := service.NewOrderService(repos.Orders, carts, nil, service.OrderServiceConfig{}, event.Nop{}, nil)

	app := fiber.New()
	api := app.Group("/api/v1/dashboard", func(c *fiber.Ctx) error {
		c.Locals("staff_id", "staff_test")
		return c.Next()
	})

	wh := NewWarehouseHandler(warehouses)
	api.Get("/warehouses", wh.GetWarehouses)
	api.Get("/warehouses/default", wh.GetDefaultWarehouse)
	api.Get("/warehouses/:id", wh.GetWarehouse)
	api.Post("/warehouses", wh.CreateWarehouse)
	api.Delete("/warehouses/:id", wh.DeleteWarehouse)

	ph := NewProductHandler(catalog)
	api.Get("/products/export", ph.ExportProducts)
	api.Post("/products", ph.CreateProduct)
	api.Get("/products/:id", ph.GetProduct)

	ih := NewInventoryHandler(inventory)
	api.Get("/inventory", ih.GetInventory)
	api.Post("/inventory/adjust", ih.AdjustStock)

	th := NewTransferHandler(transfers)
	api.Post("/transfers", th.CreateTransfer)
	api.Post("/transfers/:id/complete", th.CompleteTransfer)
	api.Post("/transfers/:id/cancel", th.CancelTransfer)

	pos := NewPOSHandler(cart, orders)
	api.Get("/pos/carts/:cartId", pos.GetCart)
	api.Post("/pos/carts/:cartId/items", pos.AddToCart)
	api.Post("/pos/carts/:cartId/checkout", pos.Checkout)

	return &testApp{app: app, repos: repos, catalog: catalog, transfers: transfers}
}

func (ta *testApp) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (ta *testApp) seed(t *testing.T) {
	t.Helper()
	status, _ := ta.do(t, http.MethodPost, "/api/v1/dashboard/warehouses", `{"id":"wh_main","name":"Main","isDefault":true}`)
	require.Equal(t, 201, status)
	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/warehouses", `{"id":"wh_side","name":"Side"}`)
	require.Equal(t, 201, status)
	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/products", `{"id":"p_mug","name":"Mug","sku":"MUG-1","price":12,"stock":5}`)
	require.Equal(t, 201, status)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: field 'Name' failed on tag 'required'", service.ErrValidation), 400},
		{service.ErrWarehouseNotFound, 404},
		{fmt.Errorf("load: %w", repository.ErrNotFound), 404},
		{service.ErrDefaultWarehouseDelete, 409},
		{model.ErrInsufficientStock, 409},
		{service.ErrInvalidTransferState, 409},
		{service.ErrInvalidCredentials, 401},
		{errors.New("boom"), 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestWarehouseRoutes(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	status, body := ta.do(t, http.MethodGet, "/api/v1/dashboard/warehouses/default", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "wh_main", body["id"])

	status, body = ta.do(t, http.MethodDelete, "/api/v1/dashboard/warehouses/wh_main", "")
	assert.Equal(t, 409, status)
	assert.Equal(t, service.ErrDefaultWarehouseDelete.Error(), body["error"])

	status, _ = ta.do(t, http.MethodGet, "/api/v1/dashboard/warehouses/nope", "")
	assert.Equal(t, 404, status)

	status, body = ta.do(t, http.MethodPost, "/api/v1/dashboard/warehouses", `{"address":"no name"}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "Name")

	status, body = ta.do(t, http.MethodPost, "/api/v1/dashboard/warehouses", `{not json`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid JSON", body["error"])

	status, _ = ta.do(t, http.MethodDelete, "/api/v1/dashboard/warehouses/wh_side", "")
	assert.Equal(t, 200, status)
}

func TestCreateAuditsActor(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	w, err := ta.repos.Warehouses.FindByID("wh_side")
	require.NoError(t, err)
	assert.Equal(t, "staff_test", w.CreatedBy)
}

func TestTransferRoutes(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	status, body := ta.do(t, http.MethodPost, "/api/v1/dashboard/transfers",
		`{"productId":"p_mug","fromWarehouseId":"wh_main","toWarehouseId":"wh_side","quantity":3}`)
	require.Equal(t, 201, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, string(model.TransferCompleted), data["status"])

	p, err := ta.catalog.Get("p_mug")
	require.NoError(t, err)
	assert.Equal(t, 2, model.QuantityAt(p.Inventory, p.Stock, "wh_main", "wh_main"))
	assert.Equal(t, 3, model.QuantityAt(p.Inventory, p.Stock, "wh_side", "wh_main"))

	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/transfers",
		`{"productId":"p_mug","fromWarehouseId":"wh_main","toWarehouseId":"wh_side","quantity":50}`)
	assert.Equal(t, 409, status)

	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/transfers/missing/complete", "")
	assert.Equal(t, 404, status)

	id := data["id"].(string)
	status, body = ta.do(t, http.MethodPost, "/api/v1/dashboard/transfers/"+id+"/cancel", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, string(model.TransferCancelled), body["data"].(map[string]interface{})["status"])

	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/transfers/"+id+"/complete", "")
	assert.Equal(t, 409, status)
}

func TestInventoryAdjustAndView(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	status, _ := ta.do(t, http.MethodPost, "/api/v1/dashboard/inventory/adjust",
		`{"productId":"p_mug","warehouseId":"wh_side","type":"IN","quantity":4}`)
	require.Equal(t, 200, status)

	status, body := ta.do(t, http.MethodGet, "/api/v1/dashboard/inventory?warehouseId=wh_side", "")
	require.Equal(t, 200, status)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.EqualValues(t, 9, items[0].(map[string]interface{})["totalStock"])

	status, _ = ta.do(t, http.MethodPost, "/api/v1/dashboard/inventory/adjust",
		`{"productId":"p_mug","warehouseId":"wh_side","type":"SIDEWAYS","quantity":4}`)
	assert.Equal(t, 400, status)
}

func TestCheckoutRoutes(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	status, _ := ta.do(t, http.MethodPost, "/api/v1/dashboard/pos/carts/c1/checkout", `{"method":"cash"}`)
	assert.Equal(t, 409, status)

	status, body := ta.do(t, http.MethodPost, "/api/v1/dashboard/pos/carts/c1/items", `{"productId":"p_mug","quantity":2}`)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 24, body["total"])

	status, body = ta.do(t, http.MethodPost, "/api/v1/dashboard/pos/carts/c1/checkout", `{"method":"cash","tendered":10}`)
	assert.Equal(t, 409, status)
	assert.Equal(t, service.ErrInsufficientPayment.Error(), body["error"])

	status, body = ta.do(t, http.MethodPost, "/api/v1/dashboard/pos/carts/c1/checkout", `{"method":"cash","tendered":30}`)
	require.Equal(t, 201, status)
	receipt := body["data"].(map[string]interface{})
	assert.EqualValues(t, 6, receipt["change"])

	status, body = ta.do(t, http.MethodGet, "/api/v1/dashboard/pos/carts/c1", "")
	require.Equal(t, 200, status)
	assert.EqualValues(t, 0, body["itemCount"])
}

func TestExportProductsCSV(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/products/export", nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "id,name,sku"))
	assert.Contains(t, string(raw), "MUG-1")
}
