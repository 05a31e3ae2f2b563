package service

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/csvutil"
	"go-pos-inventory/pkg/pagination"
)

var ErrStaffNotFound = errors.New("staff member not found")

type CreateStaffRequest struct {
	Name     string            `json:"name" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Phone    string            `json:"phone"`
	Role     model.StaffRole   `json:"role" validate:"required,oneof=admin manager cashier"`
	Status   model.StaffStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Password string            `json:"password" validate:"required,min=6"`
}

type UpdateStaffRequest struct {
	Name     string            `json:"name" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Phone    string            `json:"phone"`
	Role     model.StaffRole   `json:"role" validate:"required,oneof=admin manager cashier"`
	Status   model.StaffStatus `json:"status" validate:"required,oneof=active inactive"`
	Password *string           `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
}

type StaffService interface {
	Create(req *CreateStaffRequest, actor string) (*model.Staff, error)
	Update(id string, req *UpdateStaffRequest, actor string) (*model.Staff, error)
	Delete(id string) error
	Get(id string) (*model.Staff, error)
	List(search string, role model.StaffRole, page, pageSize int) (pagination.Page[model.Staff], error)
	ExportCSV(w io.Writer) error
	ImportCSV(r io.Reader, actor string) (*ImportResult, error)
}

type staffService struct {
	mu   sync.Mutex
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) Create(req *CreateStaffRequest, actor string) (*model.Staff, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, _ := s.repo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	m := &model.Staff{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Status: req.Status,
	}
	if m.Status == "" {
		m.Status = model.StaffActive
	}
	if err := m.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	m.Stamp(actor, now())

	if err := s.repo.Create(m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return m, nil
}

func (s *staffService) Update(id string, req *UpdateStaffRequest, actor string) (*model.Staff, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrStaffNotFound)
	}
	if existing, _ := s.repo.FindByEmail(req.Email); existing != nil && existing.ID != id {
		return nil, ErrEmailExists
	}

	m.Name = req.Name
	m.Email = req.Email
	m.Phone = req.Phone
	m.Role = req.Role
	m.Status = req.Status
	if req.Password != nil && *req.Password != "" {
		if err := m.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}
	m.Stamp(actor, now())

	if err := s.repo.Update(m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, notFound(err, ErrStaffNotFound)
	}
	return m, nil
}

func (s *staffService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.FindByID(id); err != nil {
		return notFound(err, ErrStaffNotFound)
	}
	return s.repo.Delete(id)
}

func (s *staffService) Get(id string) (*model.Staff, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrStaffNotFound)
	}
	return m, nil
}

func (s *staffService) List(search string, role model.StaffRole, page, pageSize int) (pagination.Page[model.Staff], error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return pagination.Page[model.Staff]{}, err
	}
	out := make([]model.Staff, 0, len(all))
	for _, m := range all {
		if role != "" && m.Role != role {
			continue
		}
		if search != "" && !containsFold(m.Name, search) && !containsFold(m.Email, search) {
			continue
		}
		out = append(out, m)
	}
	return pagination.Paginate(out, page, pageSize), nil
}

var staffCSVHeader = []string{"id", "name", "email", "phone", "role", "status"}

// ExportCSV never includes password hashes.
func (s *staffService) ExportCSV(w io.Writer) error {
	all, err := s.repo.FindAll()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(all))
	for _, m := range all {
		rows = append(rows, []string{m.ID, m.Name, m.Email, m.Phone, string(m.Role), string(m.Status)})
	}
	return csvutil.Write(w, staffCSVHeader, rows)
}

// ImportCSV creates staff members. Every row needs a password column since
// hashes are never exported.
func (s *staffService) ImportCSV(r io.Reader, actor string) (*ImportResult, error) {
	records, err := csvutil.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	res := &ImportResult{Errors: []string{}}
	for i, rec := range records {
		req := &CreateStaffRequest{
			Name:     rec["name"],
			Email:    rec["email"],
			Phone:    rec["phone"],
			Role:     model.StaffRole(rec["role"]),
			Status:   model.StaffStatus(rec["status"]),
			Password: rec["password"],
		}
		if _, err := s.Create(req, actor); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", i+2, err))
			continue
		}
		res.Created++
	}
	return res, nil
}
