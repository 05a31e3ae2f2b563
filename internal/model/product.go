package model

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var ErrInsufficientStock = errors.New("insufficient stock remaining")

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type Product struct {
	BaseModel
	Name        string            `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string            `gorm:"type:text" json:"description"`
	Category    string            `gorm:"type:varchar(100);index" json:"category"`
	Price       decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"price" validate:"gte=0"`
	SalePrice   decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"salePrice" validate:"gte=0"`
	Stock       int               `gorm:"default:0" json:"stock" validate:"gte=0"`
	Status      ProductStatus     `gorm:"type:varchar(20);default:'active'" json:"status" validate:"omitempty,oneof=active inactive"`
	Published   bool              `gorm:"default:false" json:"published"`
	Image       string            `gorm:"type:varchar(500)" json:"image"`
	SKU         string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode     string            `gorm:"type:varchar(64)" json:"barcode"`
	Attributes  datatypes.JSONMap `json:"attributes,omitempty"`

	Variants  []Variant        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty" validate:"dive"`
	Inventory []InventoryEntry `gorm:"polymorphic:Owner" json:"inventory,omitempty" validate:"dive"`
}

// Variant is a specific attribute combination of a product. It has no
// lifecycle of its own.
type Variant struct {
	ID         string            `gorm:"type:varchar(40);primaryKey" json:"id"`
	ProductID  string            `gorm:"type:varchar(40);index;not null" json:"-"`
	Name       string            `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Attributes datatypes.JSONMap `json:"attributes,omitempty"`
	Price      decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"price" validate:"gte=0"`
	SalePrice  decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"salePrice" validate:"gte=0"`
	Stock      int               `gorm:"default:0" json:"stock" validate:"gte=0"`
	SKU        string            `gorm:"type:varchar(50)" json:"sku"`

	Inventory []InventoryEntry `gorm:"polymorphic:Owner" json:"inventory,omitempty" validate:"dive"`
}

// InventoryEntry is the quantity of a product or variant held at one warehouse.
type InventoryEntry struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	OwnerID     string `gorm:"type:varchar(40);index;not null" json:"-"`
	OwnerType   string `gorm:"type:varchar(20);not null" json:"-"`
	WarehouseID string `gorm:"type:varchar(40);not null" json:"warehouseId" validate:"required"`
	Quantity    int    `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
}

// UnitPrice is the sale price when one is set, otherwise the list price.
func UnitPrice(price, salePrice decimal.Decimal) decimal.Decimal {
	if salePrice.IsPositive() {
		return salePrice
	}
	return price
}

// FindVariant returns the variant with the given ID, or nil.
func (p *Product) FindVariant(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// HasVariants reports whether stock is tracked per variant.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// RecomputeStock derives stock figures bottom up: a row with inventory
// entries gets the sum of its entries, and a product with variants gets the
// sum of its variant stocks. Rows without entries keep their flat stock.
func (p *Product) RecomputeStock() {
	for i := range p.Variants {
		v := &p.Variants[i]
		if len(v.Inventory) > 0 {
			v.Stock = SumInventory(v.Inventory)
		}
	}
	switch {
	case p.HasVariants():
		total := 0
		for _, v := range p.Variants {
			total += v.Stock
		}
		p.Stock = total
	case len(p.Inventory) > 0:
		p.Stock = SumInventory(p.Inventory)
	}
}

// Clone returns a deep copy so stored products never share slices or maps
// with callers.
func (p Product) Clone() Product {
	out := p
	out.Attributes = cloneJSONMap(p.Attributes)
	out.Inventory = cloneEntries(p.Inventory)
	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			v.Attributes = cloneJSONMap(v.Attributes)
			v.Inventory = cloneEntries(v.Inventory)
			out.Variants[i] = v
		}
	}
	return out
}

func SumInventory(entries []InventoryEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// QuantityAt resolves the quantity shown for warehouseID: the recorded entry
// when there is one, else the flat stock if the warehouse is the default,
// else zero.
func QuantityAt(entries []InventoryEntry, stock int, warehouseID, defaultID string) int {
	for _, e := range entries {
		if e.WarehouseID == warehouseID {
			return e.Quantity
		}
	}
	if warehouseID != "" && warehouseID == defaultID {
		return stock
	}
	return 0
}

// AdjustInventory moves the quantity at warehouseID by delta and returns the
// new entry list. A row with no entries first materialises its flat stock as
// an entry at the default warehouse; after that only recorded entries count.
// A result below zero fails with ErrInsufficientStock and the input is left
// untouched.
func AdjustInventory(entries []InventoryEntry, stock int, warehouseID, defaultID string, delta int) ([]InventoryEntry, error) {
	out := cloneEntries(entries)
	if len(out) == 0 && defaultID != "" && stock > 0 {
		out = append(out, InventoryEntry{WarehouseID: defaultID, Quantity: stock})
	}

	idx := -1
	current := 0
	for i := range out {
		if out[i].WarehouseID == warehouseID {
			idx, current = i, out[i].Quantity
			break
		}
	}

	next := current + delta
	if next < 0 {
		return entries, ErrInsufficientStock
	}
	if idx >= 0 {
		out[idx].Quantity = next
		return out, nil
	}
	return append(out, InventoryEntry{WarehouseID: warehouseID, Quantity: next}), nil
}

func cloneEntries(in []InventoryEntry) []InventoryEntry {
	if in == nil {
		return nil
	}
	return append([]InventoryEntry(nil), in...)
}

func cloneJSONMap(in datatypes.JSONMap) datatypes.JSONMap {
	if in == nil {
		return nil
	}
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
