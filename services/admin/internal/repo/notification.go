package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

func (r *GormRepo) ListNotifications(ctx context.Context, f transport.NotificationFilter) ([]models.Notification, error) {
	q := r.DB.WithContext(ctx).Model(&models.Notification{})
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	items := make([]models.Notification, 0)
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetNotification(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *GormRepo) MarkNotificationRead(ctx context.Context, id uint) error {
	var n models.Notification
	if err := r.DB.WithContext(ctx).Select("id").First(&n, id).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// CreateNotifications inserts every row inside one transaction; a failure
// on any row rolls back the whole batch.
func (r *GormRepo) CreateNotifications(ctx context.Context, rows []models.Notification) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
