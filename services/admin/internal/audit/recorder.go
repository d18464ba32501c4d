package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/farm_admin/pkg/events"
	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/pkg/metrics"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/search"
)

// ErrNotAdmin is returned when the acting user is not stored with the
// admin role, whatever its token claims.
var ErrNotAdmin = errors.New("audit: acting user is not an admin")

type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	CreateActivity(ctx context.Context, entry *models.AdminActivityLog) error
}

type Entry struct {
	AdminID  uint
	Action   string
	TargetID *uint
	Details  map[string]any
}

// Recorder appends admin activity rows. The database row is the record of
// truth; the event and the search document are mirrors and may be lost.
type Recorder struct {
	Store   Store
	Events  events.Publisher
	Indexer search.Indexer
	Now     func() time.Time
}

func NewRecorder(store Store, pub events.Publisher, idx search.Indexer) *Recorder {
	return &Recorder{Store: store, Events: pub, Indexer: idx, Now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, e Entry) (*models.AdminActivityLog, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	u, err := r.Store.GetUser(ctx, e.AdminID)
	if err != nil {
		metrics.AuditEntries.WithLabelValues(metrics.AuditFailed).Inc()
		return nil, fmt.Errorf("audit: load admin %d: %w", e.AdminID, err)
	}
	if u.Role != models.RoleAdmin {
		metrics.AuditEntries.WithLabelValues(metrics.AuditSkipped).Inc()
		return nil, fmt.Errorf("%w: user %d has role %q", ErrNotAdmin, u.ID, u.Role)
	}

	row := &models.AdminActivityLog{
		AdminID:   e.AdminID,
		Action:    e.Action,
		TargetID:  e.TargetID,
		Timestamp: now().UTC(),
	}
	if err := r.Store.CreateActivity(ctx, row); err != nil {
		metrics.AuditEntries.WithLabelValues(metrics.AuditFailed).Inc()
		return nil, err
	}
	metrics.AuditEntries.WithLabelValues(metrics.AuditWritten).Inc()

	l := logging.FromContext(ctx)
	if r.Events != nil {
		fields := map[string]any{
			"logId":     row.ID,
			"adminId":   row.AdminID,
			"action":    row.Action,
			"timestamp": row.Timestamp.Format(time.RFC3339Nano),
			"details":   e.Details,
		}
		if row.TargetID != nil {
			fields["targetId"] = *row.TargetID
		}
		if err := r.Events.PublishEvent(ctx, events.TopicAdminActivity, row.Action, events.NewEvent("admin_action_logged", fields)); err != nil {
			metrics.EventPublishFailures.WithLabelValues(events.TopicAdminActivity).Inc()
			l.Warn("audit_publish_failed", "log_id", row.ID, "error", err)
		}
	}
	if r.Indexer != nil {
		if err := r.Indexer.IndexActivity(ctx, row); err != nil {
			l.Warn("audit_index_failed", "log_id", row.ID, "error", err)
		}
	}
	return row, nil
}
