package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the transient POS basket of one register.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartLine struct {
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) matches(productID, variantID string) bool {
	return l.ProductID == productID && l.VariantID == variantID
}

// Add creates a line or increments the existing line for the same product
// and variant.
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].matches(line.ProductID, line.VariantID) {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Adjust changes a line's quantity by delta and drops the line once it
// reaches zero. It reports whether the line existed.
func (c *Cart) Adjust(productID, variantID string, delta int) bool {
	for i := range c.Lines {
		if c.Lines[i].matches(productID, variantID) {
			c.Lines[i].Quantity += delta
			if c.Lines[i].Quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			}
			return true
		}
	}
	return false
}

// Remove drops a line. It reports whether the line existed.
func (c *Cart) Remove(productID, variantID string) bool {
	for i := range c.Lines {
		if c.Lines[i].matches(productID, variantID) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) Clone() Cart {
	out := c
	if c.Lines != nil {
		out.Lines = append([]CartLine(nil), c.Lines...)
	}
	return out
}
