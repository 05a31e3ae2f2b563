package model

type Customer struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email   string `gorm:"type:varchar(255);index" json:"email" validate:"omitempty,email"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`
}
