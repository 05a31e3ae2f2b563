package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id string) (*model.Category, error)
	Update(category *model.Category) error
	Delete(ids ...string) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return translate(r.db.Create(category).Error)
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepo) Update(category *model.Category) error {
	return saveExisting(r.db, category, category.ID)
}

func (r *categoryRepo) Delete(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return translate(r.db.Delete(&model.Category{}, "id IN ?", ids).Error)
}

// saveExisting saves a full row but refuses to insert one that is missing.
func saveExisting[T any](db *gorm.DB, value *T, id string) error {
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return translate(db.Save(value).Error)
}
