package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.ProductID != nil {
		q = q.Where("id = ?", *f.ProductID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	items := make([]models.Product, 0)
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) UpdateStock(ctx context.Context, id uint, qty int) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("stock_quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
