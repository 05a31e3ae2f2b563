package service

import (
	"fmt"

	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/pagination"
)

type InventoryQuery struct {
	Search      string
	WarehouseID string
	Page        int
	PageSize    int
}

type WarehouseStock struct {
	WarehouseID   string `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	IsDefault     bool   `json:"isDefault"`
	Quantity      int    `json:"quantity"`
}

// InventoryRow is one line of the inventory page: a variant, or a product
// without variants.
type InventoryRow struct {
	ProductID   string           `json:"productId"`
	ProductName string           `json:"productName"`
	VariantID   string           `json:"variantId,omitempty"`
	VariantName string           `json:"variantName,omitempty"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	TotalStock  int              `json:"totalStock"`
	Warehouses  []WarehouseStock `json:"warehouses"`
}

type InventoryService interface {
	View(q InventoryQuery) (pagination.Page[InventoryRow], error)
	Adjust(req *model.StockAdjustment, actor string) (*model.Product, error)
}

type inventoryService struct {
	catalog    CatalogService
	warehouses repository.WarehouseRepository
	watch      stockWatch
	bus        broadcaster
	log        *zap.Logger
}

func NewInventoryService(catalog CatalogService, warehouses repository.WarehouseRepository, notifier Notifier, lowStockThreshold int, pub event.Publisher, log *zap.Logger) InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("inventory")
	return &inventoryService{
		catalog:    catalog,
		warehouses: warehouses,
		watch:      stockWatch{notifier: notifier, threshold: lowStockThreshold},
		bus:        newBroadcaster(pub, log),
		log:        log,
	}
}

func (s *inventoryService) View(q InventoryQuery) (pagination.Page[InventoryRow], error) {
	products, err := s.catalog.All()
	if err != nil {
		return pagination.Page[InventoryRow]{}, err
	}
	warehouses, err := s.warehouses.FindAll()
	if err != nil {
		return pagination.Page[InventoryRow]{}, err
	}
	if q.WarehouseID != "" && !hasWarehouse(warehouses, q.WarehouseID) {
		return pagination.Page[InventoryRow]{}, ErrWarehouseNotFound
	}

	rows := BuildInventoryRows(products, warehouses, q.Search, q.WarehouseID)
	return pagination.Paginate(rows, q.Page, q.PageSize), nil
}

// BuildInventoryRows flattens the catalog into inventory rows. It reads its
// inputs only.
func BuildInventoryRows(products []model.Product, warehouses []model.Warehouse, search, warehouseID string) []InventoryRow {
	defaultID := ""
	if d, err := defaultOf(warehouses); err == nil {
		defaultID = d.ID
	}

	shown := warehouses
	if warehouseID != "" {
		shown = nil
		for _, w := range warehouses {
			if w.ID == warehouseID {
				shown = append(shown, w)
			}
		}
	}

	breakdown := func(entries []model.InventoryEntry, stock int) []WarehouseStock {
		out := make([]WarehouseStock, 0, len(shown))
		for _, w := range shown {
			out = append(out, WarehouseStock{
				WarehouseID:   w.ID,
				WarehouseName: w.Name,
				IsDefault:     w.ID == defaultID,
				Quantity:      model.QuantityAt(entries, stock, w.ID, defaultID),
			})
		}
		return out
	}

	rows := []InventoryRow{}
	for _, p := range products {
		if search != "" && !containsFold(p.Name, search) && !containsFold(p.SKU, search) {
			continue
		}
		if !p.HasVariants() {
			rows = append(rows, InventoryRow{
				ProductID:   p.ID,
				ProductName: p.Name,
				SKU:         p.SKU,
				Category:    p.Category,
				Image:       p.Image,
				TotalStock:  p.Stock,
				Warehouses:  breakdown(p.Inventory, p.Stock),
			})
			continue
		}
		for _, v := range p.Variants {
			sku := v.SKU
			if sku == "" {
				sku = p.SKU
			}
			rows = append(rows, InventoryRow{
				ProductID:   p.ID,
				ProductName: p.Name,
				VariantID:   v.ID,
				VariantName: v.Name,
				SKU:         sku,
				Category:    p.Category,
				Image:       p.Image,
				TotalStock:  v.Stock,
				Warehouses:  breakdown(v.Inventory, v.Stock),
			})
		}
	}
	return rows
}

// Adjust applies a manual IN/OUT correction at one warehouse.
func (s *inventoryService) Adjust(req *model.StockAdjustment, actor string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	warehouses, err := s.warehouses.FindAll()
	if err != nil {
		return nil, err
	}
	if !hasWarehouse(warehouses, req.WarehouseID) {
		return nil, ErrWarehouseNotFound
	}
	defaultID := ""
	if d, err := defaultOf(warehouses); err == nil {
		defaultID = d.ID
	}

	var before model.Product
	p, err := s.catalog.MutateProduct(req.ProductID, actor, func(p *model.Product) error {
		before = p.Clone()
		return moveStock(p, req.VariantID, req.WarehouseID, defaultID, req.Delta())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock adjusted",
		zap.String("product_id", p.ID),
		zap.String("variant_id", req.VariantID),
		zap.String("warehouse_id", req.WarehouseID),
		zap.Int("delta", req.Delta()))
	s.bus.emit(event.Event{
		Type:    event.TypeStockUpdate,
		Action:  "stock_adjusted",
		Actor:   actor,
		Message: fmt.Sprintf("%s %s %d at %s", p.Name, req.Type, req.Quantity, req.WarehouseID),
		Data:    req,
	})
	s.watch.check(&before, p)
	return p, nil
}

// moveStock shifts the quantity of one row at one warehouse.
func moveStock(p *model.Product, variantID, warehouseID, defaultID string, delta int) error {
	if p.HasVariants() {
		if variantID == "" {
			return ErrVariantRequired
		}
		v := p.FindVariant(variantID)
		if v == nil {
			return ErrVariantNotFound
		}
		entries, err := model.AdjustInventory(v.Inventory, v.Stock, warehouseID, defaultID, delta)
		if err != nil {
			return err
		}
		v.Inventory = entries
		return nil
	}
	if variantID != "" {
		return ErrVariantNotFound
	}
	entries, err := model.AdjustInventory(p.Inventory, p.Stock, warehouseID, defaultID, delta)
	if err != nil {
		return err
	}
	p.Inventory = entries
	return nil
}

func hasWarehouse(all []model.Warehouse, id string) bool {
	for _, w := range all {
		if w.ID == id {
			return true
		}
	}
	return false
}

// stockWatch raises a warning when a row's stock drops below the threshold.
type stockWatch struct {
	notifier  Notifier
	threshold int
}

func (w stockWatch) check(before, after *model.Product) {
	if w.notifier == nil || w.threshold <= 0 {
		return
	}
	link := "/dashboard/products/" + after.ID
	if !after.HasVariants() {
		if before.Stock >= w.threshold && after.Stock < w.threshold {
			w.notifier.Notify(model.NotifyWarning, "Low stock",
				fmt.Sprintf("%s has %d left", after.Name, after.Stock), link)
		}
		return
	}
	for _, v := range after.Variants {
		old := before.FindVariant(v.ID)
		if old == nil {
			continue
		}
		if old.Stock >= w.threshold && v.Stock < w.threshold {
			w.notifier.Notify(model.NotifyWarning, "Low stock",
				fmt.Sprintf("%s (%s) has %d left", after.Name, v.Name, v.Stock), link)
		}
	}
}
