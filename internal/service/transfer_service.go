package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
)

var (
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrInvalidTransferState = errors.New("transfer cannot change from its current status")
)

type TransferFilter struct {
	ProductID   string
	WarehouseID string
	Status      model.TransferStatus
}

type TransferService interface {
	Create(req *model.StockTransfer, actor string) (*model.StockTransfer, error)
	Complete(id, actor string) (*model.StockTransfer, error)
	Cancel(id, actor string) (*model.StockTransfer, error)
	List(f TransferFilter) ([]model.StockTransfer, error)
	Get(id string) (*model.StockTransfer, error)
}

type transferService struct {
	mu         sync.Mutex
	repo       repository.TransferRepository
	warehouses repository.WarehouseRepository
	catalog    CatalogService
	notifier   Notifier
	watch      stockWatch
	bus        broadcaster
	log        *zap.Logger
}

func NewTransferService(
	repo repository.TransferRepository,
	warehouses repository.WarehouseRepository,
	catalog CatalogService,
	notifier Notifier,
	lowStockThreshold int,
	pub event.Publisher,
	log *zap.Logger,
) TransferService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("transfers")
	return &transferService{
		repo:       repo,
		warehouses: warehouses,
		catalog:    catalog,
		notifier:   notifier,
		watch:      stockWatch{notifier: notifier, threshold: lowStockThreshold},
		bus:        newBroadcaster(pub, log),
		log:        log,
	}
}

// Create records a transfer as already completed and moves the stock.
func (s *transferService) Create(req *model.StockTransfer, actor string) (*model.StockTransfer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	warehouses, err := s.warehouses.FindAll()
	if err != nil {
		return nil, err
	}
	if !hasWarehouse(warehouses, req.FromWarehouseID) || !hasWarehouse(warehouses, req.ToWarehouseID) {
		return nil, ErrWarehouseNotFound
	}

	t := *req
	t.BaseModel = model.BaseModel{}
	t.Stamp(actor, now())
	t.Date = t.CreatedAt
	t.Status = model.TransferCompleted

	p, err := s.apply(&t, false, actor)
	if err != nil {
		return nil, err
	}
	t.ProductName = p.Name

	if err := s.repo.Create(&t); err != nil {
		if _, rerr := s.apply(&t, true, actor); rerr != nil {
			s.log.Error("undo transfer movement", zap.String("transfer_id", t.ID), zap.Error(rerr))
		}
		return nil, err
	}

	s.completed(&t, actor)
	return &t, nil
}

// Complete moves a pending transfer's stock. Completing twice is a no-op.
func (s *transferService) Complete(id, actor string) (*model.StockTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTransferNotFound)
	}

	switch t.Status {
	case model.TransferCompleted:
		return t, nil
	case model.TransferCancelled:
		return nil, ErrInvalidTransferState
	}

	if _, err := s.apply(t, false, actor); err != nil {
		return nil, err
	}
	if err := s.setStatus(t, model.TransferCompleted, actor); err != nil {
		return nil, err
	}
	s.completed(t, actor)
	return t, nil
}

// Cancel stops a pending transfer or reverses a completed one. Cancelling
// twice is a no-op.
func (s *transferService) Cancel(id, actor string) (*model.StockTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTransferNotFound)
	}

	switch t.Status {
	case model.TransferCancelled:
		return t, nil
	case model.TransferCompleted:
		if _, err := s.apply(t, true, actor); err != nil {
			return nil, err
		}
	}

	if err := s.setStatus(t, model.TransferCancelled, actor); err != nil {
		return nil, err
	}
	s.log.Info("transfer cancelled", zap.String("transfer_id", t.ID))
	s.bus.emit(event.Event{Type: event.TypeStockUpdate, Action: "transfer_cancelled", Actor: actor, Data: t})
	return t, nil
}

// List returns transfers newest first.
func (s *transferService) List(f TransferFilter) ([]model.StockTransfer, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.StockTransfer, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		t := all[i]
		if f.ProductID != "" && t.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && !t.TouchesWarehouse(f.WarehouseID) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *transferService) Get(id string) (*model.StockTransfer, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrTransferNotFound)
	}
	return t, nil
}

// apply moves the transfer quantity from source to destination, or back
// when reverse is set. Both legs land in one product write.
func (s *transferService) apply(t *model.StockTransfer, reverse bool, actor string) (*model.Product, error) {
	from, to := t.FromWarehouseID, t.ToWarehouseID
	if reverse {
		from, to = to, from
	}

	defaultID := ""
	if all, err := s.warehouses.FindAll(); err != nil {
		return nil, err
	} else if d, err := defaultOf(all); err == nil {
		defaultID = d.ID
	}

	var before model.Product
	p, err := s.catalog.MutateProduct(t.ProductID, actor, func(p *model.Product) error {
		before = p.Clone()
		if err := moveStock(p, t.VariantID, from, defaultID, -t.Quantity); err != nil {
			return err
		}
		return moveStock(p, t.VariantID, to, defaultID, t.Quantity)
	})
	if err != nil {
		return nil, err
	}
	s.watch.check(&before, p)
	return p, nil
}

func (s *transferService) setStatus(t *model.StockTransfer, status model.TransferStatus, actor string) error {
	if actor == "" {
		actor = model.SystemActor
	}
	if err := s.repo.UpdateStatus(t.ID, status, actor); err != nil {
		return notFound(err, ErrTransferNotFound)
	}
	t.Status = status
	t.UpdatedBy = actor
	t.UpdatedAt = now()
	return nil
}

func (s *transferService) completed(t *model.StockTransfer, actor string) {
	s.log.Info("transfer completed",
		zap.String("transfer_id", t.ID),
		zap.String("product_id", t.ProductID),
		zap.String("from", t.FromWarehouseID),
		zap.String("to", t.ToWarehouseID),
		zap.Int("quantity", t.Quantity))
	msg := fmt.Sprintf("%d x %s moved from %s to %s", t.Quantity, t.ProductName, t.FromWarehouseID, t.ToWarehouseID)
	s.bus.emit(event.Event{Type: event.TypeStockUpdate, Action: "transfer_completed", Actor: actor, Message: msg, Data: t})
	if s.notifier != nil {
		s.notifier.Notify(model.NotifySuccess, "Transfer completed", msg, "/dashboard/inventory/transfers")
	}
}
