package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/csvutil"
	"go-pos-inventory/pkg/pagination"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailExists      = errors.New("email already exists")
)

type CustomerService interface {
	Create(req *model.Customer, actor string) (*model.Customer, error)
	Update(id string, req *model.Customer, actor string) (*model.Customer, error)
	Delete(id string) error
	Get(id string) (*model.Customer, error)
	List(search string, page, pageSize int) (pagination.Page[model.Customer], error)
	ExportCSV(w io.Writer) error
	ImportCSV(r io.Reader, actor string) (*ImportResult, error)
}

type customerService struct {
	mu   sync.Mutex
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(req *model.Customer, actor string) (*model.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEmail(req.Email, ""); err != nil {
		return nil, err
	}

	c := *req
	c.BaseModel = model.BaseModel{ID: req.ID}
	c.Stamp(actor, now())
	if err := s.repo.Create(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) Update(id string, req *model.Customer, actor string) (*model.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	if err := s.checkEmail(req.Email, id); err != nil {
		return nil, err
	}

	current.Name = req.Name
	current.Email = req.Email
	current.Phone = req.Phone
	current.Address = req.Address
	current.Notes = req.Notes
	current.Stamp(actor, now())
	if err := s.repo.Update(current); err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return current, nil
}

func (s *customerService) checkEmail(email, selfID string) error {
	if email == "" {
		return nil
	}
	existing, err := s.repo.FindByEmail(email)
	if err == nil && existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}

func (s *customerService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.FindByID(id); err != nil {
		return notFound(err, ErrCustomerNotFound)
	}
	return s.repo.Delete(id)
}

func (s *customerService) Get(id string) (*model.Customer, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound)
	}
	return c, nil
}

func (s *customerService) List(search string, page, pageSize int) (pagination.Page[model.Customer], error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return pagination.Page[model.Customer]{}, err
	}
	out := make([]model.Customer, 0, len(all))
	for _, c := range all {
		if search == "" || containsFold(c.Name, search) || containsFold(c.Email, search) || strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	return pagination.Paginate(out, page, pageSize), nil
}

var customerCSVHeader = []string{"id", "name", "email", "phone", "address", "notes"}

func (s *customerService) ExportCSV(w io.Writer) error {
	all, err := s.repo.FindAll()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(all))
	for _, c := range all {
		rows = append(rows, []string{c.ID, c.Name, c.Email, c.Phone, c.Address, c.Notes})
	}
	return csvutil.Write(w, customerCSVHeader, rows)
}

// ImportCSV creates one customer per row. Rows whose email already exists
// update that customer instead.
func (s *customerService) ImportCSV(r io.Reader, actor string) (*ImportResult, error) {
	records, err := csvutil.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	res := &ImportResult{Errors: []string{}}
	for i, rec := range records {
		c := &model.Customer{
			Name:    rec["name"],
			Email:   rec["email"],
			Phone:   rec["phone"],
			Address: rec["address"],
			Notes:   rec["notes"],
		}
		if c.Email != "" {
			if existing, err := s.repo.FindByEmail(c.Email); err == nil {
				if _, err := s.Update(existing.ID, c, actor); err != nil {
					res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", i+2, err))
					continue
				}
				res.Updated++
				continue
			}
		}
		if _, err := s.Create(c, actor); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", i+2, err))
			continue
		}
		res.Created++
	}
	return res, nil
}
