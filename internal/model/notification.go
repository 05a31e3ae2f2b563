package model

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

type Notification struct {
	BaseModel
	Title   string           `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Message string           `gorm:"type:text" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type" validate:"omitempty,oneof=info success warning error"`
	Read    bool             `gorm:"default:false;index" json:"read"`
	Link    string           `gorm:"type:varchar(255)" json:"link,omitempty"`
}
