package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

func (r *GormRepo) ListReviews(ctx context.Context, f transport.ReviewFilter) ([]models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{})
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Rating != nil {
		q = q.Where("rating = ?", *f.Rating)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	items := make([]models.Review, 0)
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var rev models.Review
	if err := r.DB.WithContext(ctx).First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *GormRepo) UpdateReviewStatus(ctx context.Context, id uint, status string, reason *string) error {
	res := r.DB.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(map[string]any{
		"status":           status,
		"rejection_reason": reason,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
