package model

import "golang.org/x/crypto/bcrypt"

type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleManager StaffRole = "manager"
	RoleCashier StaffRole = "cashier"
)

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Staff is a dashboard user. The password hash is never serialised.
type Staff struct {
	BaseModel
	Name     string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone    string      `gorm:"type:varchar(30)" json:"phone"`
	Role     StaffRole   `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=admin manager cashier"`
	Status   StaffStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status" validate:"required,oneof=active inactive"`
	Password string      `gorm:"type:varchar(255);not null" json:"-"`
}

// SetPassword hashes and sets the password
func (s *Staff) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (s *Staff) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) == nil
}

func (s *Staff) IsActive() bool {
	return s.Status == StaffActive
}
