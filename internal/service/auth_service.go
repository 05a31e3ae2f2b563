package service

import (
	"errors"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStaffInactive      = errors.New("staff account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.Staff, error)
	ChangePassword(staffID, oldPassword, newPassword string) error
}

// LoginResponse carries the token and email the dashboard keeps in local
// storage.
type LoginResponse struct {
	Token string       `json:"token"`
	Email string       `json:"email"`
	Staff *model.Staff `json:"staff"`
}

type authService struct {
	staff  repository.StaffRepository
	tokens *jwt.Manager
}

func NewAuthService(staff repository.StaffRepository, tokens *jwt.Manager) AuthService {
	return &authService{staff: staff, tokens: tokens}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find staff by email
	m, err := s.staff.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password before revealing account state
	if !m.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !m.IsActive() {
		return nil, ErrStaffInactive
	}

	// 3. Issue token
	token, err := s.tokens.GenerateToken(m.ID, m.Email, m.Name, string(m.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, Email: m.Email, Staff: m}, nil
}

// ValidateToken checks the signature and that the staff member still exists
// and is active.
func (s *authService) ValidateToken(tokenString string) (*model.Staff, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	m, err := s.staff.FindByID(claims.StaffID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	if !m.IsActive() {
		return nil, ErrStaffInactive
	}
	return m, nil
}

func (s *authService) ChangePassword(staffID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.Join(ErrValidation, errors.New("password must be at least 6 characters"))
	}
	m, err := s.staff.FindByID(staffID)
	if err != nil {
		return notFound(err, ErrStaffNotFound)
	}
	if !m.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if err := m.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.staff.UpdatePassword(m.ID, m.Password)
}
