package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/pkg/events"
	"github.com/Skotchmaster/farm_admin/pkg/metrics"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

// TargetAll selects every user regardless of role.
const TargetAll = "all"

type NotificationRepo interface {
	ListNotifications(ctx context.Context, f transport.NotificationFilter) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id uint) error
	CreateNotifications(ctx context.Context, rows []models.Notification) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]models.User, error)
}

type NotificationService struct {
	Repo   NotificationRepo
	Events events.Publisher
}

func (s *NotificationService) ListNotifications(ctx context.Context, f transport.NotificationFilter) ([]models.Notification, error) {
	return s.Repo.ListNotifications(ctx, f)
}

// MarkRead is idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	if err := s.Repo.MarkNotificationRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, req transport.SendNotificationRequest) ([]models.User, error) {
	switch {
	case req.TargetRole == TargetAll:
		return s.Repo.ListUsers(ctx)
	case len(req.TargetUsers) > 0:
		return s.Repo.ListUsersByIDs(ctx, req.TargetUsers)
	default:
		return s.Repo.ListUsersByRole(ctx, req.TargetRole)
	}
}

// Send fans a message out to one general notification per recipient and
// returns how many rows were created.
func (s *NotificationService) Send(ctx context.Context, req transport.SendNotificationRequest) (int, error) {
	if req.Message == "" || req.TargetRole == "" {
		return 0, fmt.Errorf("%w: message and target role are required", ErrValidation)
	}

	users, err := s.resolveRecipients(ctx, req)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, nil
	}

	role := req.TargetRole
	rows := make([]models.Notification, 0, len(users))
	userIDs := make([]uint, 0, len(users))
	for _, u := range users {
		userID := u.ID
		rows = append(rows, models.Notification{
			Message:      req.Message,
			Type:         models.NotificationGeneral,
			TargetRole:   &role,
			TargetUserID: &userID,
		})
		userIDs = append(userIDs, userID)
	}

	if err := s.Repo.CreateNotifications(ctx, rows); err != nil {
		return 0, err
	}
	metrics.NotificationsSent.WithLabelValues(role).Add(float64(len(rows)))

	publish(ctx, s.Events, events.TopicNotifications, role, events.NewEvent("notifications_sent", map[string]any{
		"targetRole": role,
		"userIds":    userIDs,
		"count":      len(rows),
	}))

	return len(rows), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
