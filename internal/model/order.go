package model

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayMobile PaymentMethod = "mobile"
)

type OrderStatus string

const (
	OrderCompleted OrderStatus = "completed"
)

// Order is a completed POS sale. Its JSON shape is also the body posted to
// the external order service.
type Order struct {
	BaseModel
	CustomerName string          `gorm:"type:varchar(255)" json:"customerName"`
	CustomerID   string          `gorm:"type:varchar(40);index" json:"customerId,omitempty"`
	Method       PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     string          `gorm:"type:varchar(40);index;not null" json:"-"`
	ProductID   string          `gorm:"type:varchar(40);not null" json:"productId"`
	ProductName string          `gorm:"type:varchar(255)" json:"productName"`
	VariantID   string          `gorm:"type:varchar(40)" json:"variantId,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = append([]OrderItem(nil), o.Items...)
	}
	return out
}
