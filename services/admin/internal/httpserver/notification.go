package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/audit"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.list")

	var f transport.NotificationFilter
	if c.QueryParams().Has("isRead") {
		isRead := strings.EqualFold(c.QueryParam("isRead"), "true")
		f.IsRead = &isRead
	}
	f.Type = c.QueryParam("type")

	items, err := h.Svc.ListNotifications(ctx, f)
	if err != nil {
		return serviceError(l, "list_notifications", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.mark_read")

	id, err := pathID(c, "notification_id")
	if err != nil {
		l.Warn("mark_read_error", "status", 404, "reason", "bad notification id", "error", err)
		return err
	}

	if err := h.Svc.MarkRead(ctx, id); err != nil {
		return serviceError(l, "mark_read", err)
	}
	audit.SetTarget(c, id)

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Notification marked as read"})
}

func (h *NotificationHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.send")

	var req transport.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("send_notification_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sent, err := h.Svc.Send(ctx, req)
	if err != nil {
		return serviceError(l, "send_notification", err)
	}

	l.Info("send_notification_success", "target_role", req.TargetRole, "sent", sent)
	return c.JSON(http.StatusCreated, transport.SendNotificationResponse{
		Message: fmt.Sprintf("Notification sent to %d users", sent),
		Sent:    sent,
	})
}
