package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindAll() ([]model.Warehouse, error)
	FindByID(id string) (*model.Warehouse, error)
	Update(warehouse *model.Warehouse) error
	Delete(id string) error
	// ClearDefault unsets isDefault on every warehouse except exceptID.
	ClearDefault(exceptID string) error
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) Create(warehouse *model.Warehouse) error {
	return translate(r.db.Create(warehouse).Error)
}

func (r *warehouseRepo) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) FindByID(id string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &warehouse, nil
}

func (r *warehouseRepo) Update(warehouse *model.Warehouse) error {
	res := r.db.Model(&model.Warehouse{}).Where("id = ?", warehouse.ID).
		Select("name", "address", "contact", "is_default", "updated_at", "updated_by").
		Updates(warehouse)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *warehouseRepo) Delete(id string) error {
	return translate(r.db.Delete(&model.Warehouse{}, "id = ?", id).Error)
}

func (r *warehouseRepo) ClearDefault(exceptID string) error {
	return r.db.Model(&model.Warehouse{}).
		Where("id <> ? AND is_default = ?", exceptID, true).
		Update("is_default", false).Error
}
