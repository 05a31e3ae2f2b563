// Package seed loads the default admin account and an optional demo catalog.
package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"
)

const (
	AdminEmail    = "admin@pos.local"
	AdminPassword = "admin123"
)

type Deps struct {
	Warehouses service.WarehouseService
	Catalog    service.CatalogService
	Categories service.CategoryService
	Customers  service.CustomerService
	Staff      service.StaffService
	Transfers  repository.TransferRepository
}

// EnsureAdmin creates the default admin account when no staff member uses
// its email yet.
func EnsureAdmin(staff service.StaffService, log *zap.Logger) error {
	page, err := staff.List(AdminEmail, "", 1, 100)
	if err != nil {
		return err
	}
	for _, m := range page.Items {
		if strings.EqualFold(m.Email, AdminEmail) {
			return nil
		}
	}

	_, err = staff.Create(&service.CreateStaffRequest{
		Name:     "Store Administrator",
		Email:    AdminEmail,
		Role:     model.RoleAdmin,
		Status:   model.StaffActive,
		Password: AdminPassword,
	}, model.SystemActor)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("Admin staff created", zap.String("email", AdminEmail))
	return nil
}

// Demo fills an empty store with two warehouses, a small catalog, categories,
// customers and one pending transfer. A store that already has warehouses is
// left alone.
func Demo(d Deps, log *zap.Logger) error {
	existing, err := d.Warehouses.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug("demo seed skipped, store not empty")
		return nil
	}

	for _, w := range demoWarehouses() {
		if _, err := d.Warehouses.Add(&w, model.SystemActor); err != nil {
			return fmt.Errorf("seed warehouse %s: %w", w.ID, err)
		}
	}

	if err := seedCategories(d.Categories); err != nil {
		return err
	}

	for _, p := range demoProducts() {
		if _, err := d.Catalog.Create(&p, model.SystemActor); err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}

	for _, c := range demoCustomers() {
		if _, err := d.Customers.Create(&c, model.SystemActor); err != nil && !errors.Is(err, service.ErrEmailExists) {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}

	pending := &model.StockTransfer{
		BaseModel:       model.BaseModel{ID: "tr_demo_pending"},
		ProductID:       "prod_hoodie",
		ProductName:     "Classic Hoodie",
		VariantID:       "var_hoodie_black_m",
		FromWarehouseID: "wh_main",
		ToWarehouseID:   "wh_downtown",
		Quantity:        5,
		Date:            time.Now(),
		Status:          model.TransferPending,
		Notes:           "Weekend restock",
	}
	pending.Stamp(model.SystemActor, time.Now())
	if err := d.Transfers.Create(pending); err != nil {
		return fmt.Errorf("seed transfer: %w", err)
	}

	log.Info("Demo data loaded")
	return nil
}

func demoWarehouses() []model.Warehouse {
	return []model.Warehouse{
		{BaseModel: model.BaseModel{ID: "wh_main"}, Name: "Main Warehouse", Address: "12 Harbour Road", Contact: "+1 555 0100", IsDefault: true},
		{BaseModel: model.BaseModel{ID: "wh_downtown"}, Name: "Downtown Store", Address: "48 Market Street", Contact: "+1 555 0142"},
	}
}

func seedCategories(categories service.CategoryService) error {
	apparel, err := categories.Create(&model.Category{Name: "Apparel", Description: "Clothing and accessories"}, model.SystemActor)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	for _, name := range []string{"Hoodies", "T-Shirts"} {
		if _, err := categories.Create(&model.Category{Name: name, ParentID: &apparel.ID}, model.SystemActor); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	if _, err := categories.Create(&model.Category{Name: "Kitchen", Description: "Mugs and tableware"}, model.SystemActor); err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	return nil
}

func demoProducts() []model.Product {
	return []model.Product{
		{
			BaseModel:   model.BaseModel{ID: "prod_hoodie"},
			Name:        "Classic Hoodie",
			Description: "Heavyweight cotton hoodie",
			Category:    "Hoodies",
			Price:       decimal.NewFromInt(45),
			SalePrice:   decimal.NewFromFloat(39.99),
			Status:      model.ProductActive,
			Published:   true,
			SKU:         "HD-CLASSIC",
			Variants: []model.Variant{
				{
					ID:        "var_hoodie_black_m",
					Name:      "Black / M",
					SKU:       "HD-CLASSIC-BK-M",
					Inventory: []model.InventoryEntry{{WarehouseID: "wh_main", Quantity: 20}, {WarehouseID: "wh_downtown", Quantity: 4}},
				},
				{
					ID:        "var_hoodie_grey_l",
					Name:      "Grey / L",
					SKU:       "HD-CLASSIC-GY-L",
					Inventory: []model.InventoryEntry{{WarehouseID: "wh_main", Quantity: 12}},
				},
			},
		},
		{
			BaseModel: model.BaseModel{ID: "prod_tee"},
			Name:      "Logo Tee",
			Category:  "T-Shirts",
			Price:     decimal.NewFromInt(18),
			Status:    model.ProductActive,
			Published: true,
			SKU:       "TEE-LOGO",
			Stock:     60,
		},
		{
			BaseModel: model.BaseModel{ID: "prod_mug"},
			Name:      "Ceramic Mug",
			Category:  "Kitchen",
			Price:     decimal.NewFromFloat(9.5),
			Status:    model.ProductActive,
			Published: true,
			SKU:       "MUG-350",
			Barcode:   "4006381333931",
			Stock:     8,
		},
	}
}

func demoCustomers() []model.Customer {
	return []model.Customer{
		{Name: "Maya Lopez", Email: "maya@example.com", Phone: "+1 555 0199"},
		{Name: "Daniel Okafor", Email: "daniel@example.com"},
	}
}
