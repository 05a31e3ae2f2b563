package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *productRepo) preload() *gorm.DB {
	return r.db.
		Preload("Inventory", byID).
		Preload("Variants", byID).
		Preload("Variants.Inventory", byID)
}

func (r *productRepo) Create(product *model.Product) error {
	return translate(r.db.Session(&gorm.Session{FullSaveAssociations: true}).Create(product).Error)
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.preload().Order("created_at ASC").Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.preload().First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Update replaces the product row together with its variants and inventory
// entries, so removed children do not linger.
func (r *productRepo) Update(product *model.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := deleteChildren(tx, product.ID); err != nil {
			return err
		}

		resetEntryIDs(product.Inventory)
		for i := range product.Variants {
			product.Variants[i].ProductID = product.ID
			resetEntryIDs(product.Variants[i].Inventory)
		}
		return translate(tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error)
	})
}

func (r *productRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

func deleteChildren(tx *gorm.DB, productID string) error {
	variantIDs := tx.Model(&model.Variant{}).Select("id").Where("product_id = ?", productID)
	if err := tx.Where("owner_id = ? OR owner_id IN (?)", productID, variantIDs).Delete(&model.InventoryEntry{}).Error; err != nil {
		return err
	}
	return tx.Where("product_id = ?", productID).Delete(&model.Variant{}).Error
}

func resetEntryIDs(entries []model.InventoryEntry) {
	for i := range entries {
		entries[i].ID = 0
	}
}
