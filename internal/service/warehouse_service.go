package service

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
)

var (
	ErrWarehouseNotFound      = errors.New("warehouse not found")
	ErrDefaultWarehouseDelete = errors.New("cannot delete the default warehouse while other warehouses exist")
	ErrNoWarehouses           = errors.New("no warehouses registered")
)

type WarehouseService interface {
	Add(req *model.Warehouse, actor string) (*model.Warehouse, error)
	Update(req *model.Warehouse, actor string) (*model.Warehouse, error)
	Delete(id string) error
	Default() (*model.Warehouse, error)
	List() ([]model.Warehouse, error)
	Get(id string) (*model.Warehouse, error)
}

type warehouseService struct {
	mu   sync.Mutex
	repo repository.WarehouseRepository
	log  *zap.Logger
}

func NewWarehouseService(repo repository.WarehouseRepository, log *zap.Logger) WarehouseService {
	if log == nil {
		log = zap.NewNop()
	}
	return &warehouseService{repo: repo, log: log.Named("warehouses")}
}

// Add appends a warehouse. A new default takes the flag from every existing
// entry first.
func (s *warehouseService) Add(req *model.Warehouse, actor string) (*model.Warehouse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := *req
	w.BaseModel = model.BaseModel{ID: req.ID}
	w.Stamp(actor, now())

	if err := s.repo.Create(&w); err != nil {
		return nil, err
	}
	if w.IsDefault {
		if err := s.repo.ClearDefault(w.ID); err != nil {
			return nil, err
		}
	}
	s.log.Info("warehouse added", zap.String("id", w.ID), zap.Bool("default", w.IsDefault))
	return &w, nil
}

// Update replaces the stored entry. When it is flagged default, every other
// entry loses the flag.
func (s *warehouseService) Update(req *model.Warehouse, actor string) (*model.Warehouse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(req.ID)
	if err != nil {
		return nil, notFound(err, ErrWarehouseNotFound)
	}

	current.Name = req.Name
	current.Address = req.Address
	current.Contact = req.Contact
	current.IsDefault = req.IsDefault
	current.Stamp(actor, now())

	if err := s.repo.Update(current); err != nil {
		return nil, notFound(err, ErrWarehouseNotFound)
	}
	if current.IsDefault {
		if err := s.repo.ClearDefault(current.ID); err != nil {
			return nil, err
		}
	}
	return current, nil
}

// Delete removes a warehouse. The default is only removable when it is the
// last one, which leaves the registry empty.
func (s *warehouseService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.FindAll()
	if err != nil {
		return err
	}

	var target *model.Warehouse
	for i := range all {
		if all[i].ID == id {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return ErrWarehouseNotFound
	}
	if target.IsDefault && len(all) > 1 {
		return ErrDefaultWarehouseDelete
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info("warehouse deleted", zap.String("id", id))
	return nil
}

// Default is the flagged warehouse, or the first one when none is flagged.
func (s *warehouseService) Default() (*model.Warehouse, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	return defaultOf(all)
}

func defaultOf(all []model.Warehouse) (*model.Warehouse, error) {
	if len(all) == 0 {
		return nil, ErrNoWarehouses
	}
	for i := range all {
		if all[i].IsDefault {
			return &all[i], nil
		}
	}
	return &all[0], nil
}

func (s *warehouseService) List() ([]model.Warehouse, error) {
	return s.repo.FindAll()
}

func (s *warehouseService) Get(id string) (*model.Warehouse, error) {
	w, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrWarehouseNotFound)
	}
	return w, nil
}
