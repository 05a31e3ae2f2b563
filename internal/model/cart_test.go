package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartAddMergesSameProduct(t *testing.T) {
	var c Cart
	c.Add(CartLine{ProductID: "p1", Price: decimal.NewFromInt(5), Quantity: 1})
	c.Add(CartLine{ProductID: "p1", Price: decimal.NewFromInt(5), Quantity: 2})
	c.Add(CartLine{ProductID: "p2", Price: decimal.NewFromInt(3), Quantity: 1})

	assert.Len(t, c.Lines, 2)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, 4, c.ItemCount())
	assert.True(t, decimal.NewFromInt(18).Equal(c.Total()))
}

func TestCartVariantsAreSeparateLines(t *testing.T) {
	var c Cart
	c.Add(CartLine{ProductID: "p1", VariantID: "s", Quantity: 1})
	c.Add(CartLine{ProductID: "p1", VariantID: "m", Quantity: 1})
	assert.Len(t, c.Lines, 2)
}

func TestCartAdjustRemovesAtZero(t *testing.T) {
	var c Cart
	c.Add(CartLine{ProductID: "p1", Quantity: 2})

	assert.True(t, c.Adjust("p1", "", -1))
	assert.Equal(t, 1, c.Lines[0].Quantity)

	assert.True(t, c.Adjust("p1", "", -5))
	assert.True(t, c.IsEmpty())

	assert.False(t, c.Adjust("missing", "", 1))
}

func TestCartRemoveAndClear(t *testing.T) {
	var c Cart
	c.Add(CartLine{ProductID: "p1", Quantity: 1})
	c.Add(CartLine{ProductID: "p2", Quantity: 1})

	assert.True(t, c.Remove("p1", ""))
	assert.False(t, c.Remove("p1", ""))
	assert.Len(t, c.Lines, 1)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}
