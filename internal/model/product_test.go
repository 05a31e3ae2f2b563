package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestQuantityAt(t *testing.T) {
	entries := []InventoryEntry{{WarehouseID: "wh_downtown", Quantity: 4}}

	assert.Equal(t, 4, QuantityAt(entries, 20, "wh_downtown", "wh_main"))
	assert.Equal(t, 20, QuantityAt(entries, 20, "wh_main", "wh_main"))
	assert.Equal(t, 0, QuantityAt(entries, 20, "wh_other", "wh_main"))
	assert.Equal(t, 0, QuantityAt(nil, 20, "", ""))
}

func TestAdjustInventoryMaterialisesDefault(t *testing.T) {
	out, err := AdjustInventory(nil, 10, "wh_main", "wh_main", -3)
	require.NoError(t, err)
	assert.Equal(t, []InventoryEntry{{WarehouseID: "wh_main", Quantity: 7}}, out)

	out, err = AdjustInventory(nil, 10, "wh_downtown", "wh_main", 3)
	require.NoError(t, err)
	assert.Equal(t, []InventoryEntry{
		{WarehouseID: "wh_main", Quantity: 10},
		{WarehouseID: "wh_downtown", Quantity: 3},
	}, out)
}

func TestAdjustInventoryInsufficient(t *testing.T) {
	in := []InventoryEntry{{WarehouseID: "wh_main", Quantity: 2}}
	out, err := AdjustInventory(in, 2, "wh_main", "wh_main", -3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, in, out)
	assert.Equal(t, 2, in[0].Quantity)
}

func TestRecomputeStock(t *testing.T) {
	p := Product{
		Variants: []Variant{
			{ID: "v1", Stock: 99, Inventory: []InventoryEntry{{WarehouseID: "a", Quantity: 2}, {WarehouseID: "b", Quantity: 3}}},
			{ID: "v2", Stock: 4},
		},
	}
	p.RecomputeStock()
	assert.Equal(t, 5, p.Variants[0].Stock)
	assert.Equal(t, 9, p.Stock)

	flat := Product{Stock: 7}
	flat.RecomputeStock()
	assert.Equal(t, 7, flat.Stock)
}

func TestCloneIsDeep(t *testing.T) {
	p := Product{
		Attributes: datatypes.JSONMap{"color": "red"},
		Inventory:  []InventoryEntry{{WarehouseID: "a", Quantity: 1}},
		Variants:   []Variant{{ID: "v1", Inventory: []InventoryEntry{{WarehouseID: "a", Quantity: 1}}}},
	}
	c := p.Clone()
	c.Attributes["color"] = "blue"
	c.Inventory[0].Quantity = 5
	c.Variants[0].Inventory[0].Quantity = 5

	assert.Equal(t, "red", p.Attributes["color"])
	assert.Equal(t, 1, p.Inventory[0].Quantity)
	assert.Equal(t, 1, p.Variants[0].Inventory[0].Quantity)
}

func TestUnitPrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(8).Equal(UnitPrice(decimal.NewFromInt(10), decimal.NewFromInt(8))))
	assert.True(t, decimal.NewFromInt(10).Equal(UnitPrice(decimal.NewFromInt(10), decimal.Zero)))
}

func TestAdjustInventoryIgnoresFlatStockOnceEntriesExist(t *testing.T) {
	in := []InventoryEntry{{WarehouseID: "wh_downtown", Quantity: 4}}
	out, err := AdjustInventory(in, 4, "wh_main", "wh_main", 2)
	require.NoError(t, err)
	assert.Equal(t, []InventoryEntry{
		{WarehouseID: "wh_downtown", Quantity: 4},
		{WarehouseID: "wh_main", Quantity: 2},
	}, out)
}
