package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

// TransferRepository is an append-only log; only the status of a record
// changes after it is written.
type TransferRepository interface {
	Create(transfer *model.StockTransfer) error
	FindAll() ([]model.StockTransfer, error)
	FindByID(id string) (*model.StockTransfer, error)
	UpdateStatus(id string, status model.TransferStatus, updatedBy string) error
}

type transferRepo struct {
	db *gorm.DB
}

func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db}
}

func (r *transferRepo) Create(transfer *model.StockTransfer) error {
	return translate(r.db.Create(transfer).Error)
}

func (r *transferRepo) FindAll() ([]model.StockTransfer, error) {
	var transfers []model.StockTransfer
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) FindByID(id string) (*model.StockTransfer, error) {
	var transfer model.StockTransfer
	if err := r.db.First(&transfer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &transfer, nil
}

func (r *transferRepo) UpdateStatus(id string, status model.TransferStatus, updatedBy string) error {
	res := r.db.Model(&model.StockTransfer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
		"updated_at": gorm.Expr("NOW()"),
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
