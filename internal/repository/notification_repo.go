package repository

import (
	"go-pos-inventory/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindAll() ([]model.Notification, error)
	FindByID(id string) (*model.Notification, error)
	MarkRead(id string) error
	MarkAllRead() error
	Delete(id string) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(notification *model.Notification) error {
	return translate(r.db.Create(notification).Error)
}

func (r *notificationRepo) FindAll() ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) FindByID(id string) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (r *notificationRepo) MarkRead(id string) error {
	res := r.db.Model(&model.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead() error {
	return r.db.Model(&model.Notification{}).Where("read = ?", false).Update("read", true).Error
}

func (r *notificationRepo) Delete(id string) error {
	return translate(r.db.Delete(&model.Notification{}, "id = ?", id).Error)
}
