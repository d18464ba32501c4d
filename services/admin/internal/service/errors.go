package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/farm_admin/pkg/events"
	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/pkg/metrics"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

// publish is best effort: a broker outage never fails the admin request.
func publish(ctx context.Context, pub events.Publisher, topic, key string, ev map[string]any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, ev); err != nil {
		metrics.EventPublishFailures.WithLabelValues(topic).Inc()
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev["type"], "error", err)
	}
}
