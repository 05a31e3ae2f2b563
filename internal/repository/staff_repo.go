package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(staff *model.Staff) error
	FindAll() ([]model.Staff, error)
	FindByID(id string) (*model.Staff, error)
	FindByEmail(email string) (*model.Staff, error)
	Update(staff *model.Staff) error
	UpdatePassword(id string, hashedPassword string) error
	Delete(id string) error
}

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db}
}

func (r *staffRepo) Create(staff *model.Staff) error {
	return translate(r.db.Create(staff).Error)
}

func (r *staffRepo) FindAll() ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) FindByID(id string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.First(&staff, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

func (r *staffRepo) FindByEmail(email string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

func (r *staffRepo) Update(staff *model.Staff) error {
	return saveExisting(r.db, staff, staff.ID)
}

func (r *staffRepo) UpdatePassword(id string, hashedPassword string) error {
	res := r.db.Model(&model.Staff{}).Where("id = ?", id).Update("password", hashedPassword)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepo) Delete(id string) error {
	return translate(r.db.Delete(&model.Staff{}, "id = ?", id).Error)
}
