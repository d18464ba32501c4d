package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "farm_admin"

// Audit results.
const (
	AuditWritten = "written"
	AuditSkipped = "skipped"
	AuditFailed  = "failed"
)

var (
	AuditEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Admin activity log attempts by result.",
	}, []string{"result"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Notification rows created by fan-out sends, by target role.",
	}, []string{"target_role"})

	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Domain events that could not be published, by topic.",
	}, []string{"topic"})
)

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
