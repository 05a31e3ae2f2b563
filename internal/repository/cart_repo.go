package repository

import "go-pos-inventory/internal/model"

// CartRepository holds transient POS carts. Carts are never written to the
// database; the memory package provides the only implementation.
type CartRepository interface {
	Save(cart *model.Cart) error
	FindByID(id string) (*model.Cart, error)
	Delete(id string) error
}
