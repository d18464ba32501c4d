package repo

import (
	"context"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

func (r *GormRepo) CreateActivity(ctx context.Context, entry *models.AdminActivityLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *GormRepo) ListActivity(ctx context.Context, f transport.ActivityFilter) ([]models.AdminActivityLog, error) {
	q := r.DB.WithContext(ctx).Model(&models.AdminActivityLog{})
	if f.AdminID != nil {
		q = q.Where("admin_id = ?", *f.AdminID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Start != nil && f.End != nil {
		q = q.Where(`"timestamp" BETWEEN ? AND ?`, f.Start.UTC(), f.End.UTC())
	}

	items := make([]models.AdminActivityLog, 0)
	if err := q.Order(`"timestamp" ASC, id ASC`).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
