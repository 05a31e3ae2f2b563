package model

// Warehouse is a stock-holding location. At most one is the default.
type Warehouse struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Address   string `gorm:"type:varchar(255)" json:"address"`
	Contact   string `gorm:"type:varchar(100)" json:"contact"`
	IsDefault bool   `gorm:"default:false;index" json:"isDefault"`
}
