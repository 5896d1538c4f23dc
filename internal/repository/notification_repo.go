package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	FindByKitchen(kitchenID uuid.UUID, unreadOnly bool) ([]model.Notification, error)
	MarkRead(id uuid.UUID) error
	MarkAllRead(kitchenID uuid.UUID) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepo) FindByKitchen(kitchenID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	var ns []model.Notification
	q := r.db.Where("kitchen_id = ?", kitchenID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Find(&ns).Error
	return ns, err
}

func (r *notificationRepo) MarkRead(id uuid.UUID) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(kitchenID uuid.UUID) error {
	return r.db.Model(&model.Notification{}).Where("kitchen_id = ?", kitchenID).Update("is_read", true).Error
}
