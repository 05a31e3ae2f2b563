package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id string) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id string) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return translate(r.db.Create(customer).Error)
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return saveExisting(r.db, customer, customer.ID)
}

func (r *customerRepo) Delete(id string) error {
	return translate(r.db.Delete(&model.Customer{}, "id = ?", id).Error)
}
