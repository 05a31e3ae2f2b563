package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type testEnv struct {
	store         *memory.Store
	repos         *repository.Repositories
	carts         repository.CartRepository
	pub           *recordingPublisher
	warehouses    WarehouseService
	catalog       CatalogService
	notifications NotificationService
	inventory     InventoryService
	transfers     TransferService
	cart          CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)

	env := &testEnv{store: store, repos: memory.NewRepositories(store), carts: memory.NewCartRepo(store), pub: &recordingPublisher{}}
	env.warehouses = NewWarehouseService(env.repos.Warehouses, nil)
	env.catalog = NewCatalogService(env.repos.Products, env.pub, nil)
	env.notifications = NewNotificationService(env.repos.Notifications, env.pub, nil)
	env.inventory = NewInventoryService(env.catalog, env.repos.Warehouses, env.notifications, 10, env.pub, nil)
	env.transfers = NewTransferService(env.repos.Transfers, env.repos.Warehouses, env.catalog, env.notifications, 10, env.pub, nil)
	env.cart = NewCartService(env.carts, env.catalog)
	return env
}

func (env *testEnv) addWarehouse(t *testing.T, id string, isDefault bool) {
	t.Helper()
	_, err := env.warehouses.Add(&model.Warehouse{BaseModel: model.BaseModel{ID: id}, Name: id, IsDefault: isDefault}, "")
	require.NoError(t, err)
}

// seedStore adds wh_main (default) and wh_downtown, a flat product and a
// product with two variants.
func (env *testEnv) seedStore(t *testing.T) {
	t.Helper()
	env.addWarehouse(t, "wh_main", true)
	env.addWarehouse(t, "wh_downtown", false)

	_, err := env.catalog.Create(&model.Product{
		BaseModel: model.BaseModel{ID: "p_mug"},
		Name:      "Coffee Mug",
		SKU:       "MUG-1",
		Category:  "Kitchen",
		Price:     decimal.NewFromInt(12),
		Stock:     30,
	}, "")
	require.NoError(t, err)

	_, err = env.catalog.Create(&model.Product{
		BaseModel: model.BaseModel{ID: "p_shirt"},
		Name:      "T-Shirt",
		SKU:       "TS-1",
		Category:  "Apparel",
		Price:     decimal.NewFromInt(20),
		SalePrice: decimal.NewFromInt(15),
		Variants: []model.Variant{
			{
				ID:        "v_red",
				Name:      "Red / M",
				SKU:       "TS-1-RM",
				Inventory: []model.InventoryEntry{{WarehouseID: "wh_main", Quantity: 8}, {WarehouseID: "wh_downtown", Quantity: 4}},
			},
			{ID: "v_blue", Name: "Blue / L", SKU: "TS-1-BL", Stock: 6},
		},
	}, "")
	require.NoError(t, err)
}
