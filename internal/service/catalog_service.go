package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/csvutil"
	"go-pos-inventory/pkg/idgen"
	"go-pos-inventory/pkg/pagination"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrVariantRequired = errors.New("variant is required for a product with variants")
	ErrSKUExists       = errors.New("SKU already exists")
)

type ProductQuery struct {
	Search   string
	Category string
	Status   model.ProductStatus
	Page     int
	PageSize int
}

type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

type CatalogService interface {
	Create(req *model.Product, actor string) (*model.Product, error)
	Update(id string, req *model.Product, actor string) (*model.Product, error)
	Delete(id string) error
	Get(id string) (*model.Product, error)
	List(q ProductQuery) (pagination.Page[model.Product], error)
	All() ([]model.Product, error)
	// MutateProduct runs fn on a fresh copy of the product and stores the
	// result with derived stock recomputed. All product writes go through
	// the same lock.
	MutateProduct(id, actor string, fn func(p *model.Product) error) (*model.Product, error)
	ExportCSV(w io.Writer) error
	ImportCSV(r io.Reader, actor string) (*ImportResult, error)
}

type catalogService struct {
	mu   sync.Mutex
	repo repository.ProductRepository
	bus  broadcaster
	log  *zap.Logger
}

func NewCatalogService(repo repository.ProductRepository, pub event.Publisher, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("catalog")
	return &catalogService{repo: repo, bus: newBroadcaster(pub, log), log: log}
}

func (s *catalogService) Create(req *model.Product, actor string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, err := s.repo.FindBySKU(req.SKU); err == nil && existing != nil {
		return nil, ErrSKUExists
	}

	p := req.Clone()
	p.BaseModel = model.BaseModel{ID: req.ID}
	normalizeProduct(&p)
	p.Stamp(actor, now())

	if err := s.repo.Create(&p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, err
	}

	s.log.Info("product created", zap.String("id", p.ID), zap.String("sku", p.SKU))
	s.emitProduct("product_created", &p, actor)
	return &p, nil
}

func (s *catalogService) Update(id string, req *model.Product, actor string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if other, err := s.repo.FindBySKU(req.SKU); err == nil && other.ID != id {
		return nil, ErrSKUExists
	}

	p := req.Clone()
	p.BaseModel = current.BaseModel
	normalizeProduct(&p)
	p.Stamp(actor, now())

	if err := s.repo.Update(&p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSKUExists
		}
		return nil, notFound(err, ErrProductNotFound)
	}

	s.emitProduct("product_updated", &p, actor)
	return &p, nil
}

func (s *catalogService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.FindByID(id)
	if err != nil {
		return notFound(err, ErrProductNotFound)
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.emitProduct("product_deleted", p, "")
	return nil
}

func (s *catalogService) Get(id string) (*model.Product, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *catalogService) All() ([]model.Product, error) {
	return s.repo.FindAll()
}

func (s *catalogService) List(q ProductQuery) (pagination.Page[model.Product], error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return pagination.Page[model.Product]{}, err
	}

	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if q.Search != "" && !containsFold(p.Name, q.Search) && !containsFold(p.SKU, q.Search) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		filtered = append(filtered, p)
	}
	return pagination.Paginate(filtered, q.Page, q.PageSize), nil
}

func (s *catalogService) MutateProduct(id, actor string, fn func(p *model.Product) error) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.RecomputeStock()
	p.Stamp(actor, now())

	if err := s.repo.Update(p); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

var productCSVHeader = []string{
	"id", "name", "sku", "barcode", "category", "price", "salePrice",
	"stock", "status", "published", "description", "image",
}

func (s *catalogService) ExportCSV(w io.Writer) error {
	all, err := s.repo.FindAll()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(all))
	for _, p := range all {
		rows = append(rows, []string{
			p.ID, p.Name, p.SKU, p.Barcode, p.Category,
			p.Price.StringFixed(2), p.SalePrice.StringFixed(2),
			strconv.Itoa(p.Stock), string(p.Status), strconv.FormatBool(p.Published),
			p.Description, p.Image,
		})
	}
	return csvutil.Write(w, productCSVHeader, rows)
}

// ImportCSV creates products for unknown SKUs and updates the flat fields of
// known ones. Variants and inventory are left as they are. Bad rows are
// reported and skipped.
func (s *catalogService) ImportCSV(r io.Reader, actor string) (*ImportResult, error) {
	records, err := csvutil.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	res := &ImportResult{Errors: []string{}}
	for i, rec := range records {
		line := i + 2
		p, err := productFromRecord(rec)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		existing, err := s.repo.FindBySKU(p.SKU)
		if err == nil {
			if _, err := s.MutateProduct(existing.ID, actor, func(cur *model.Product) error {
				mergeFlatFields(cur, p)
				return validate(cur)
			}); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			res.Updated++
			continue
		}

		if _, err := s.Create(p, actor); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		res.Created++
	}
	return res, nil
}

func productFromRecord(rec map[string]string) (*model.Product, error) {
	p := &model.Product{
		Name:        rec["name"],
		SKU:         rec["sku"],
		Barcode:     rec["barcode"],
		Category:    rec["category"],
		Status:      model.ProductStatus(rec["status"]),
		Description: rec["description"],
		Image:       rec["image"],
	}
	var err error
	if p.Price, err = parseDecimal(rec["price"]); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if p.SalePrice, err = parseDecimal(rec["salePrice"]); err != nil {
		return nil, fmt.Errorf("salePrice: %w", err)
	}
	if v := rec["stock"]; v != "" {
		if p.Stock, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("stock: %w", err)
		}
	}
	if v := rec["published"]; v != "" {
		if p.Published, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("published: %w", err)
		}
	}
	return p, nil
}

func parseDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

func mergeFlatFields(dst, src *model.Product) {
	dst.Name = src.Name
	dst.Barcode = src.Barcode
	dst.Category = src.Category
	dst.Price = src.Price
	dst.SalePrice = src.SalePrice
	dst.Description = src.Description
	dst.Image = src.Image
	dst.Published = src.Published
	if src.Status != "" {
		dst.Status = src.Status
	}
	// Stock is only authoritative for rows without inventory entries.
	if !dst.HasVariants() && len(dst.Inventory) == 0 {
		dst.Stock = src.Stock
	}
}

// normalizeProduct fills variant IDs, defaults the status, merges duplicate
// warehouse entries and derives stock.
func normalizeProduct(p *model.Product) {
	if p.Status == "" {
		p.Status = model.ProductActive
	}
	p.Inventory = mergeEntries(p.Inventory)
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID == "" {
			v.ID = idgen.New()
		}
		v.ProductID = p.ID
		v.Inventory = mergeEntries(v.Inventory)
	}
	p.RecomputeStock()
}

// mergeEntries keeps one entry per warehouse, summing duplicates, in first
// seen order.
func mergeEntries(in []model.InventoryEntry) []model.InventoryEntry {
	if len(in) == 0 {
		return in
	}
	idx := make(map[string]int, len(in))
	out := make([]model.InventoryEntry, 0, len(in))
	for _, e := range in {
		if i, ok := idx[e.WarehouseID]; ok {
			out[i].Quantity += e.Quantity
			continue
		}
		idx[e.WarehouseID] = len(out)
		out = append(out, model.InventoryEntry{WarehouseID: e.WarehouseID, Quantity: e.Quantity})
	}
	return out
}

func (s *catalogService) emitProduct(action string, p *model.Product, actor string) {
	s.bus.emit(event.Event{
		Type:   event.TypeStockUpdate,
		Action: action,
		Actor:  actor,
		Data: map[string]interface{}{
			"id":    p.ID,
			"sku":   p.SKU,
			"name":  p.Name,
			"stock": p.Stock,
			"price": p.Price,
		},
	})
}
