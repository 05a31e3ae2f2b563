package memory

import (
	"strings"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/idgen"
)

var (
	_ repository.WarehouseRepository    = (*warehouseRepo)(nil)
	_ repository.ProductRepository      = (*productRepo)(nil)
	_ repository.TransferRepository     = (*transferRepo)(nil)
	_ repository.CategoryRepository     = (*categoryRepo)(nil)
	_ repository.CustomerRepository     = (*customerRepo)(nil)
	_ repository.StaffRepository        = (*staffRepo)(nil)
	_ repository.NotificationRepository = (*notificationRepo)(nil)
	_ repository.OrderRepository        = (*orderRepo)(nil)
	_ repository.CartRepository         = (*cartRepo)(nil)
)

// prepare mirrors what GORM does on insert: an ID and timestamps are filled
// in when the caller left them empty.
func prepare(base *model.BaseModel) {
	if base.ID == "" {
		base.ID = idgen.New()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = now
	}
}

// Warehouses

type warehouseRepo struct {
	t *table[model.Warehouse]
}

func NewWarehouseRepo(s *Store) repository.WarehouseRepository {
	return &warehouseRepo{newTable(s, tableWarehouses, func(w *model.Warehouse) string { return w.ID }, nil)}
}

func (r *warehouseRepo) Create(warehouse *model.Warehouse) error {
	prepare(&warehouse.BaseModel)
	return r.t.insert(warehouse)
}

func (r *warehouseRepo) FindAll() ([]model.Warehouse, error) { return r.t.all() }

func (r *warehouseRepo) FindByID(id string) (*model.Warehouse, error) { return r.t.get(id) }

func (r *warehouseRepo) Update(warehouse *model.Warehouse) error {
	current, err := r.t.get(warehouse.ID)
	if err != nil {
		return err
	}
	warehouse.CreatedAt, warehouse.CreatedBy = current.CreatedAt, current.CreatedBy
	return r.t.update(warehouse)
}

func (r *warehouseRepo) Delete(id string) error { return r.t.remove(id) }

func (r *warehouseRepo) ClearDefault(exceptID string) error {
	return r.t.updateWhere(func(w *model.Warehouse) bool {
		if w.ID == exceptID || !w.IsDefault {
			return false
		}
		w.IsDefault = false
		return true
	})
}

// Products

type productRepo struct {
	t *table[model.Product]
}

func NewProductRepo(s *Store) repository.ProductRepository {
	return &productRepo{newTable(s, tableProducts, func(p *model.Product) string { return p.ID }, model.Product.Clone)}
}

func (r *productRepo) Create(product *model.Product) error {
	prepare(&product.BaseModel)
	if _, err := r.FindBySKU(product.SKU); err == nil {
		return repository.ErrDuplicate
	}
	return r.t.insert(product)
}

func (r *productRepo) FindAll() ([]model.Product, error) { return r.t.all() }

func (r *productRepo) FindByID(id string) (*model.Product, error) { return r.t.get(id) }

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	return r.t.find(func(p *model.Product) bool { return p.SKU == sku })
}

func (r *productRepo) Update(product *model.Product) error {
	if other, err := r.FindBySKU(product.SKU); err == nil && other.ID != product.ID {
		return repository.ErrDuplicate
	}
	return r.t.update(product)
}

func (r *productRepo) Delete(id string) error { return r.t.remove(id) }

// Transfers

type transferRepo struct {
	t *table[model.StockTransfer]
}

func NewTransferRepo(s *Store) repository.TransferRepository {
	return &transferRepo{newTable(s, tableTransfers, func(t *model.StockTransfer) string { return t.ID }, nil)}
}

func (r *transferRepo) Create(transfer *model.StockTransfer) error {
	prepare(&transfer.BaseModel)
	return r.t.insert(transfer)
}

func (r *transferRepo) FindAll() ([]model.StockTransfer, error) { return r.t.all() }

func (r *transferRepo) FindByID(id string) (*model.StockTransfer, error) { return r.t.get(id) }

func (r *transferRepo) UpdateStatus(id string, status model.TransferStatus, updatedBy string) error {
	transfer, err := r.t.get(id)
	if err != nil {
		return err
	}
	transfer.Status = status
	transfer.UpdatedBy = updatedBy
	transfer.UpdatedAt = time.Now()
	return r.t.update(transfer)
}

// Categories

type categoryRepo struct {
	t *table[model.Category]
}

func cloneCategory(c model.Category) model.Category {
	if c.ParentID != nil {
		parent := *c.ParentID
		c.ParentID = &parent
	}
	return c
}

func NewCategoryRepo(s *Store) repository.CategoryRepository {
	return &categoryRepo{newTable(s, tableCategories, func(c *model.Category) string { return c.ID }, cloneCategory)}
}

func (r *categoryRepo) Create(category *model.Category) error {
	prepare(&category.BaseModel)
	return r.t.insert(category)
}

func (r *categoryRepo) FindAll() ([]model.Category, error) { return r.t.all() }

func (r *categoryRepo) FindByID(id string) (*model.Category, error) { return r.t.get(id) }

func (r *categoryRepo) Update(category *model.Category) error { return r.t.update(category) }

func (r *categoryRepo) Delete(ids ...string) error { return r.t.remove(ids...) }

// Customers

type customerRepo struct {
	t *table[model.Customer]
}

func NewCustomerRepo(s *Store) repository.CustomerRepository {
	return &customerRepo{newTable(s, tableCustomers, func(c *model.Customer) string { return c.ID }, nil)}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	prepare(&customer.BaseModel)
	return r.t.insert(customer)
}

func (r *customerRepo) FindAll() ([]model.Customer, error) { return r.t.all() }

func (r *customerRepo) FindByID(id string) (*model.Customer, error) { return r.t.get(id) }

func (r *customerRepo) FindByEmail(email string) (*model.Customer, error) {
	return r.t.find(func(c *model.Customer) bool { return strings.EqualFold(c.Email, email) })
}

func (r *customerRepo) Update(customer *model.Customer) error { return r.t.update(customer) }

func (r *customerRepo) Delete(id string) error { return r.t.remove(id) }

// Staff

type staffRepo struct {
	t *table[model.Staff]
}

func NewStaffRepo(s *Store) repository.StaffRepository {
	return &staffRepo{newTable(s, tableStaff, func(m *model.Staff) string { return m.ID }, nil)}
}

func (r *staffRepo) Create(staff *model.Staff) error {
	prepare(&staff.BaseModel)
	if _, err := r.FindByEmail(staff.Email); err == nil {
		return repository.ErrDuplicate
	}
	return r.t.insert(staff)
}

func (r *staffRepo) FindAll() ([]model.Staff, error) { return r.t.all() }

func (r *staffRepo) FindByID(id string) (*model.Staff, error) { return r.t.get(id) }

func (r *staffRepo) FindByEmail(email string) (*model.Staff, error) {
	return r.t.find(func(m *model.Staff) bool { return strings.EqualFold(m.Email, email) })
}

func (r *staffRepo) Update(staff *model.Staff) error {
	if other, err := r.FindByEmail(staff.Email); err == nil && other.ID != staff.ID {
		return repository.ErrDuplicate
	}
	return r.t.update(staff)
}

func (r *staffRepo) UpdatePassword(id string, hashedPassword string) error {
	staff, err := r.t.get(id)
	if err != nil {
		return err
	}
	staff.Password = hashedPassword
	return r.t.update(staff)
}

func (r *staffRepo) Delete(id string) error { return r.t.remove(id) }

// Notifications

type notificationRepo struct {
	t *table[model.Notification]
}

func NewNotificationRepo(s *Store) repository.NotificationRepository {
	return &notificationRepo{newTable(s, tableNotifications, func(n *model.Notification) string { return n.ID }, nil)}
}

func (r *notificationRepo) Create(notification *model.Notification) error {
	prepare(&notification.BaseModel)
	return r.t.insert(notification)
}

func (r *notificationRepo) FindAll() ([]model.Notification, error) { return r.t.all() }

func (r *notificationRepo) FindByID(id string) (*model.Notification, error) { return r.t.get(id) }

func (r *notificationRepo) MarkRead(id string) error {
	notification, err := r.t.get(id)
	if err != nil {
		return err
	}
	notification.Read = true
	return r.t.update(notification)
}

func (r *notificationRepo) MarkAllRead() error {
	return r.t.updateWhere(func(n *model.Notification) bool {
		if n.Read {
			return false
		}
		n.Read = true
		return true
	})
}

func (r *notificationRepo) Delete(id string) error { return r.t.remove(id) }

// Orders

type orderRepo struct {
	t *table[model.Order]
}

func NewOrderRepo(s *Store) repository.OrderRepository {
	return &orderRepo{newTable(s, tableOrders, func(o *model.Order) string { return o.ID }, model.Order.Clone)}
}

func (r *orderRepo) Create(order *model.Order) error {
	prepare(&order.BaseModel)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return r.t.insert(order)
}

func (r *orderRepo) FindAll() ([]model.Order, error) { return r.t.all() }

func (r *orderRepo) FindByID(id string) (*model.Order, error) { return r.t.get(id) }

// Carts

type cartRepo struct {
	t *table[model.Cart]
}

func NewCartRepo(s *Store) repository.CartRepository {
	return &cartRepo{newTable(s, tableCarts, func(c *model.Cart) string { return c.ID }, model.Cart.Clone)}
}

func (r *cartRepo) Save(cart *model.Cart) error {
	cart.UpdatedAt = time.Now()
	return r.t.upsert(cart)
}

func (r *cartRepo) FindByID(id string) (*model.Cart, error) { return r.t.get(id) }

func (r *cartRepo) Delete(id string) error { return r.t.remove(id) }
