package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/model"
)

func stockAt(t *testing.T, env *testEnv, productID, variantID, warehouseID string) int {
	t.Helper()
	page, err := env.inventory.View(InventoryQuery{WarehouseID: warehouseID, PageSize: 100})
	require.NoError(t, err)
	for _, r := range page.Items {
		if r.ProductID == productID && r.VariantID == variantID {
			return r.Warehouses[0].Quantity
		}
	}
	t.Fatalf("row %s/%s not found", productID, variantID)
	return 0
}

func TestCreateTransferIsCompletedAndMovesStock(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)

	tr, err := env.transfers.Create(&model.StockTransfer{
		ProductID:       "p_mug",
		FromWarehouseID: "wh_main",
		ToWarehouseID:   "wh_downtown",
		Quantity:        10,
		Status:          model.TransferPending,
	}, "staff_1")
	require.NoError(t, err)

	assert.Equal(t, model.TransferCompleted, tr.Status)
	assert.NotEmpty(t, tr.ID)
	assert.Equal(t, "Coffee Mug", tr.ProductName)
	assert.False(t, tr.Date.IsZero())

	assert.Equal(t, 20, stockAt(t, env, "p_mug", "", "wh_main"))
	assert.Equal(t, 10, stockAt(t, env, "p_mug", "", "wh_downtown"))

	mug, err := env.catalog.Get("p_mug")
	require.NoError(t, err)
	assert.Equal(t, 30, mug.Stock, "total stock is unchanged by a transfer")
	assert.Contains(t, env.pub.actions(), "transfer_completed")
}

func TestCreateTransferVariant(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)

	_, err := env.transfers.Create(&model.StockTransfer{
		ProductID: "p_shirt", VariantID: "v_red",
		FromWarehouseID: "wh_downtown", ToWarehouseID: "wh_main", Quantity: 4,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 12, stockAt(t, env, "p_shirt", "v_red", "wh_main"))
	assert.Equal(t, 0, stockAt(t, env, "p_shirt", "v_red", "wh_downtown"))
}

func TestCreateTransferRefusals(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)

	cases := []struct {
		name string
		req  model.StockTransfer
		want error
	}{
		{"same warehouse", model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_main", ToWarehouseID: "wh_main", Quantity: 1}, ErrValidation},
		{"zero quantity", model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_main", ToWarehouseID: "wh_downtown"}, ErrValidation},
		{"unknown warehouse", model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_main", ToWarehouseID: "wh_ghost", Quantity: 1}, ErrWarehouseNotFound},
		{"unknown product", model.StockTransfer{ProductID: "p_ghost", FromWarehouseID: "wh_main", ToWarehouseID: "wh_downtown", Quantity: 1}, ErrProductNotFound},
		{"variant missing", model.StockTransfer{ProductID: "p_shirt", FromWarehouseID: "wh_main", ToWarehouseID: "wh_downtown", Quantity: 1}, ErrVariantRequired},
		{"not enough at source", model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_downtown", ToWarehouseID: "wh_main", Quantity: 1}, model.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := env.transfers.Create(&req, "")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	all, err := env.transfers.List(TransferFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 30, stockAt(t, env, "p_mug", "", "wh_main"))
}

func seedPending(t *testing.T, env *testEnv, id string) {
	t.Helper()
	tr := &model.StockTransfer{
		BaseModel:       model.BaseModel{ID: id},
		ProductID:       "p_mug",
		ProductName:     "Coffee Mug",
		FromWarehouseID: "wh_main",
		ToWarehouseID:   "wh_downtown",
		Quantity:        5,
		Date:            now(),
		Status:          model.TransferPending,
	}
	require.NoError(t, env.repos.Transfers.Create(tr))
}

func TestCompletePendingTransfer(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)
	seedPending(t, env, "tr_1")

	tr, err := env.transfers.Complete("tr_1", "")
	require.NoError(t, err)
	assert.Equal(t, model.TransferCompleted, tr.Status)
	assert.Equal(t, 25, stockAt(t, env, "p_mug", "", "wh_main"))

	// Completing again does not move stock twice.
	_, err = env.transfers.Complete("tr_1", "")
	require.NoError(t, err)
	assert.Equal(t, 25, stockAt(t, env, "p_mug", "", "wh_main"))
}

func TestCancelTransitions(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)
	seedPending(t, env, "tr_pending")

	tr, err := env.transfers.Cancel("tr_pending", "")
	require.NoError(t, err)
	assert.Equal(t, model.TransferCancelled, tr.Status)
	assert.Equal(t, 30, stockAt(t, env, "p_mug", "", "wh_main"), "cancelling a pending transfer moves nothing")

	_, err = env.transfers.Complete("tr_pending", "")
	assert.ErrorIs(t, err, ErrInvalidTransferState)

	_, err = env.transfers.Cancel("tr_pending", "")
	assert.NoError(t, err)

	done, err := env.transfers.Create(&model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_main", ToWarehouseID: "wh_downtown", Quantity: 7}, "")
	require.NoError(t, err)
	require.Equal(t, 23, stockAt(t, env, "p_mug", "", "wh_main"))

	_, err = env.transfers.Cancel(done.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 30, stockAt(t, env, "p_mug", "", "wh_main"))
	assert.Equal(t, 0, stockAt(t, env, "p_mug", "", "wh_downtown"))
}

func TestUnknownTransferLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)
	seedPending(t, env, "tr_1")

	_, err := env.transfers.Complete("tr_ghost", "")
	assert.ErrorIs(t, err, ErrTransferNotFound)
	_, err = env.transfers.Cancel("tr_ghost", "")
	assert.ErrorIs(t, err, ErrTransferNotFound)

	tr, err := env.transfers.Get("tr_1")
	require.NoError(t, err)
	assert.Equal(t, model.TransferPending, tr.Status)
}

func TestListTransfersFilters(t *testing.T) {
	env := newTestEnv(t)
	env.seedStore(t)
	seedPending(t, env, "tr_old")

	_, err := env.transfers.Create(&model.StockTransfer{ProductID: "p_mug", FromWarehouseID: "wh_main", ToWarehouseID: "wh_downtown", Quantity: 1}, "")
	require.NoError(t, err)

	all, err := env.transfers.List(TransferFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, "tr_old", all[0].ID, "newest first")

	pending, err := env.transfers.List(TransferFilter{Status: model.TransferPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "tr_old", pending[0].ID)

	none, err := env.transfers.List(TransferFilter{WarehouseID: "wh_elsewhere"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
