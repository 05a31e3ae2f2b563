package repository

import (
	"errors"

	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repositories bundles one store per entity type for injection at the
// composition root.
type Repositories struct {
	Warehouses    WarehouseRepository
	Products      ProductRepository
	Transfers     TransferRepository
	Categories    CategoryRepository
	Customers     CustomerRepository
	Staff         StaffRepository
	Notifications NotificationRepository
	Orders        OrderRepository
}

// NewGormRepositories wires every repository to the same database.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Warehouses:    NewWarehouseRepo(db),
		Products:      NewProductRepo(db),
		Transfers:     NewTransferRepo(db),
		Categories:    NewCategoryRepo(db),
		Customers:     NewCustomerRepo(db),
		Staff:         NewStaffRepo(db),
		Notifications: NewNotificationRepo(db),
		Orders:        NewOrderRepo(db),
	}
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Warehouse{},
		&model.Product{},
		&model.Variant{},
		&model.InventoryEntry{},
		&model.StockTransfer{},
		&model.Category{},
		&model.Customer{},
		&model.Staff{},
		&model.Notification{},
		&model.Order{},
		&model.OrderItem{},
	)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
