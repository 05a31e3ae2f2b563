package model

import "time"

type TransferStatus string

const (
	TransferPending   TransferStatus = "Pending"
	TransferCompleted TransferStatus = "Completed"
	TransferCancelled TransferStatus = "Cancelled"
)

// StockTransfer references its product, variant and warehouses by ID only.
type StockTransfer struct {
	BaseModel
	ProductID       string         `gorm:"type:varchar(40);not null;index" json:"productId" validate:"required"`
	ProductName     string         `gorm:"type:varchar(255)" json:"productName"`
	VariantID       string         `gorm:"type:varchar(40)" json:"variantId,omitempty"`
	FromWarehouseID string         `gorm:"type:varchar(40);not null;index" json:"fromWarehouseId" validate:"required"`
	ToWarehouseID   string         `gorm:"type:varchar(40);not null;index" json:"toWarehouseId" validate:"required,nefield=FromWarehouseID"`
	Quantity        int            `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Date            time.Time      `gorm:"not null" json:"date"`
	Status          TransferStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
}

// TouchesWarehouse reports whether the transfer moves stock in or out of id.
func (t *StockTransfer) TouchesWarehouse(id string) bool {
	return t.FromWarehouseID == id || t.ToWarehouseID == id
}
