// Package memory keeps every store in a go-memdb database so the dashboard
// can run without Postgres. Lists come back in insertion order.
package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"go-pos-inventory/internal/repository"
)

const (
	tableWarehouses    = "warehouses"
	tableProducts      = "products"
	tableTransfers     = "transfers"
	tableCategories    = "categories"
	tableCustomers     = "customers"
	tableStaff         = "staff"
	tableNotifications = "notifications"
	tableOrders        = "orders"
	tableCarts         = "carts"
)

var tables = []string{
	tableWarehouses, tableProducts, tableTransfers, tableCategories,
	tableCustomers, tableStaff, tableNotifications, tableOrders, tableCarts,
}

// record wraps a stored value with its key and insertion position.
type record struct {
	ID    string
	Order string
	Value interface{}
}

type Store struct {
	db  *memdb.MemDB
	seq atomic.Uint64
}

func NewStore() (*Store, error) {
	schema := &memdb.DBSchema{Tables: map[string]*memdb.TableSchema{}}
	for _, name := range tables {
		schema.Tables[name] = &memdb.TableSchema{
			Name: name,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"order": {
					Name:    "order",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Order"},
				},
			},
		}
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewRepositories wires every persisted store to s.
func NewRepositories(s *Store) *repository.Repositories {
	return &repository.Repositories{
		Warehouses:    NewWarehouseRepo(s),
		Products:      NewProductRepo(s),
		Transfers:     NewTransferRepo(s),
		Categories:    NewCategoryRepo(s),
		Customers:     NewCustomerRepo(s),
		Staff:         NewStaffRepo(s),
		Notifications: NewNotificationRepo(s),
		Orders:        NewOrderRepo(s),
	}
}

func (s *Store) nextOrder() string {
	return fmt.Sprintf("%020d", s.seq.Add(1))
}

// table is a typed view over one memdb table. Values are copied on the way
// in and out so callers never share memory with the store.
type table[T any] struct {
	store *Store
	name  string
	id    func(*T) string
	clone func(T) T
}

func newTable[T any](s *Store, name string, id func(*T) string, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{store: s, name: name, id: id, clone: clone}
}

func (t *table[T]) insert(v *T) error {
	txn := t.store.db.Txn(true)
	defer txn.Abort()

	id := t.id(v)
	existing, err := txn.First(t.name, "id", id)
	if err != nil {
		return err
	}
	if existing != nil {
		return repository.ErrDuplicate
	}

	stored := t.clone(*v)
	if err := txn.Insert(t.name, &record{ID: id, Order: t.store.nextOrder(), Value: &stored}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// upsert replaces a record in place, or appends it when absent.
func (t *table[T]) upsert(v *T) error {
	txn := t.store.db.Txn(true)
	defer txn.Abort()
	if err := t.put(txn, v, true); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (t *table[T]) update(v *T) error {
	txn := t.store.db.Txn(true)
	defer txn.Abort()
	if err := t.put(txn, v, false); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (t *table[T]) put(txn *memdb.Txn, v *T, allowInsert bool) error {
	id := t.id(v)
	raw, err := txn.First(t.name, "id", id)
	if err != nil {
		return err
	}

	order := ""
	switch {
	case raw != nil:
		order = raw.(*record).Order
	case allowInsert:
		order = t.store.nextOrder()
	default:
		return repository.ErrNotFound
	}

	stored := t.clone(*v)
	return txn.Insert(t.name, &record{ID: id, Order: order, Value: &stored})
}

func (t *table[T]) get(id string) (*T, error) {
	txn := t.store.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(t.name, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, repository.ErrNotFound
	}
	out := t.clone(*raw.(*record).Value.(*T))
	return &out, nil
}

func (t *table[T]) all() ([]T, error) {
	txn := t.store.db.Txn(false)
	defer txn.Abort()
	return t.scan(txn)
}

func (t *table[T]) scan(txn *memdb.Txn) ([]T, error) {
	it, err := txn.Get(t.name, "order")
	if err != nil {
		return nil, err
	}
	out := []T{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, t.clone(*raw.(*record).Value.(*T)))
	}
	return out, nil
}

// find returns the first value matching match, in insertion order.
func (t *table[T]) find(match func(*T) bool) (*T, error) {
	values, err := t.all()
	if err != nil {
		return nil, err
	}
	for i := range values {
		if match(&values[i]) {
			return &values[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// updateWhere applies fn to every value and rewrites those it reports as
// changed, all in one transaction.
func (t *table[T]) updateWhere(fn func(*T) bool) error {
	txn := t.store.db.Txn(true)
	defer txn.Abort()

	values, err := t.scan(txn)
	if err != nil {
		return err
	}
	for i := range values {
		if fn(&values[i]) {
			if err := t.put(txn, &values[i], false); err != nil {
				return err
			}
		}
	}
	txn.Commit()
	return nil
}

// remove deletes the given IDs; unknown IDs are ignored.
func (t *table[T]) remove(ids ...string) error {
	txn := t.store.db.Txn(true)
	defer txn.Abort()

	for _, id := range ids {
		raw, err := txn.First(t.name, "id", id)
		if err != nil {
			return err
		}
		if raw == nil {
			continue
		}
		if err := txn.Delete(t.name, raw); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}
