package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

type ActivityHTTP struct {
	Svc *service.ActivityService
}

func (h *ActivityHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.list")

	adminID, err := queryUint(c, "adminId")
	if err != nil {
		l.Warn("list_activity_error", "status", 400, "reason", "bad adminId", "error", err)
		return err
	}
	f := transport.ActivityFilter{AdminID: adminID, Action: c.QueryParam("action")}

	startRaw, endRaw := c.QueryParam("startDate"), c.QueryParam("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := service.ParseDateBound(startRaw, false)
		if err != nil {
			return serviceError(l, "list_activity", err)
		}
		end, err := service.ParseDateBound(endRaw, true)
		if err != nil {
			return serviceError(l, "list_activity", err)
		}
		f.Start, f.End = &start, &end
	}

	items, err := h.Svc.ListActivity(ctx, f)
	if err != nil {
		return serviceError(l, "list_activity", err)
	}
	return c.JSON(http.StatusOK, items)
}
