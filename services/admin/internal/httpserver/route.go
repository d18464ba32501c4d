package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/farm_admin/pkg/db"
	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/pkg/metrics"
	middleware "github.com/Skotchmaster/farm_admin/pkg/middleware/auth"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/audit"
)

type Deps struct {
	DB *gorm.DB

	Inventory     *InventoryHTTP
	Reviews       *ReviewHTTP
	Notifications *NotificationHTTP
	Activity      *ActivityHTTP

	Recorder   *audit.Recorder
	JWTSecret  []byte
	AuthClient middleware.Refresher
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("ready_check_failed", "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", metrics.Handler())

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	// audit sits outside auth so it can read the identity once the handler
	// has run
	admin := e.Group("/api/admin", audit.Middleware(d.Recorder), authMW.RequireAdmin)

	admin.GET("/inventory/", d.Inventory.List)
	admin.PUT("/inventory/:product_id/", d.Inventory.UpdateStock)

	admin.GET("/reviews/", d.Reviews.List)
	admin.PUT("/reviews/:review_id/status/", d.Reviews.Moderate)

	admin.GET("/notifications/", d.Notifications.List)
	admin.PUT("/notifications/:notification_id/read/", d.Notifications.MarkRead)
	admin.POST("/notifications/send/", d.Notifications.Send)

	admin.GET("/activity-log/", d.Activity.List)
}
