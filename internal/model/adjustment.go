package model

type AdjustmentType string

const (
	AdjustIn  AdjustmentType = "IN"
	AdjustOut AdjustmentType = "OUT"
)

// StockAdjustment is a manual IN/OUT correction of one row at one warehouse.
type StockAdjustment struct {
	ProductID   string         `json:"productId" validate:"required"`
	VariantID   string         `json:"variantId,omitempty"`
	WarehouseID string         `json:"warehouseId" validate:"required"`
	Type        AdjustmentType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity    int            `json:"quantity" validate:"required,gt=0"`
	Note        string         `json:"note"`
}

// Delta is the signed quantity change.
func (a *StockAdjustment) Delta() int {
	if a.Type == AdjustOut {
		return -a.Quantity
	}
	return a.Quantity
}
