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

type ReviewRepo interface {
	ListReviews(ctx context.Context, f transport.ReviewFilter) ([]models.Review, error)
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	UpdateReviewStatus(ctx context.Context, id uint, status string, reason *string) error
}

type ReviewService struct {
	Repo   ReviewRepo
	Events events.Publisher
}

func (s *ReviewService) ListReviews(ctx context.Context, f transport.ReviewFilter) ([]models.Review, error) {
	return s.Repo.ListReviews(ctx, f)
}

// Moderate moves a review to approved or rejected. A rejection may carry a
// reason; approving clears any earlier one.
func (s *ReviewService) Moderate(ctx context.Context, id uint, req transport.ModerateReviewRequest) (*models.Review, error) {
	rev, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
		}
		return nil, err
	}

	var reason *string
	switch req.Status {
	case models.ReviewApproved:
	case models.ReviewRejected:
		if req.RejectionReason != nil && *req.RejectionReason != "" {
			reason = req.RejectionReason
		}
	default:
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, req.Status)
	}

	previous := rev.Status
	if err := s.Repo.UpdateReviewStatus(ctx, id, req.Status, reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
		}
		return nil, err
	}
	rev.Status = req.Status
	rev.RejectionReason = reason

	publish(ctx, s.Events, events.TopicReviews, formatID(id), events.NewEvent("review_moderated", map[string]any{
		"reviewId":       rev.ID,
		"productId":      rev.ProductID,
		"previousStatus": previous,
		"status":         rev.Status,
	}))

	return rev, nil
}
