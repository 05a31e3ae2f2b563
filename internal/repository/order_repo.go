package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id string) (*model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return translate(r.db.Create(order).Error)
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items", byID).Order("created_at ASC").Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items", byID).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}
