package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/pkg/events"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

type InventoryRepo interface {
	ListProducts(ctx context.Context, f transport.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	UpdateStock(ctx context.Context, id uint, qty int) error
}

type InventoryService struct {
	Repo   InventoryRepo
	Events events.Publisher
}

// ListInventory returns products matching f. Rows below LowStockThreshold
// report ProductLowStock as their status; the stored status is untouched.
func (s *InventoryService) ListInventory(ctx context.Context, f transport.ProductFilter) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].StockQuantity < models.LowStockThreshold {
			items[i].Status = models.ProductLowStock
		}
	}
	return items, nil
}

func (s *InventoryService) UpdateStock(ctx context.Context, id uint, req transport.UpdateStockRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.StockQuantity == nil {
		return nil, fmt.Errorf("%w: stockQuantity is required", ErrValidation)
	}
	if *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity must be >= 0", ErrValidation)
	}

	previous := prod.StockQuantity
	if err := s.Repo.UpdateStock(ctx, id, *req.StockQuantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	prod.StockQuantity = *req.StockQuantity

	publish(ctx, s.Events, events.TopicInventory, formatID(id), events.NewEvent("stock_updated", map[string]any{
		"productId":        prod.ID,
		"previousQuantity": previous,
		"stockQuantity":    prod.StockQuantity,
	}))

	return prod, nil
}
