package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

const dateOnly = "2006-01-02"

type ActivityRepo interface {
	ListActivity(ctx context.Context, f transport.ActivityFilter) ([]models.AdminActivityLog, error)
}

type ActivityService struct {
	Repo ActivityRepo
}

func (s *ActivityService) ListActivity(ctx context.Context, f transport.ActivityFilter) ([]models.AdminActivityLog, error) {
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return []models.AdminActivityLog{}, nil
	}
	return s.Repo.ListActivity(ctx, f)
}

// ParseDateBound accepts RFC3339 or YYYY-MM-DD. A date-only end bound
// covers the whole day.
func ParseDateBound(s string, end bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(dateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
