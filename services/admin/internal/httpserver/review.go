package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/audit"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.list")

	productID, err := queryUint(c, "product_id")
	if err != nil {
		l.Warn("list_reviews_error", "status", 400, "reason", "bad product_id", "error", err)
		return err
	}
	rating, err := queryInt(c, "rating")
	if err != nil {
		l.Warn("list_reviews_error", "status", 400, "reason", "bad rating", "error", err)
		return err
	}

	items, err := h.Svc.ListReviews(ctx, transport.ReviewFilter{
		ProductID: productID,
		Rating:    rating,
		Status:    c.QueryParam("status"),
	})
	if err != nil {
		return serviceError(l, "list_reviews", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReviewHTTP) Moderate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.moderate")

	id, err := pathID(c, "review_id")
	if err != nil {
		l.Warn("moderate_review_error", "status", 404, "reason", "bad review id", "error", err)
		return err
	}

	var req transport.ModerateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("moderate_review_bind_failed", "error", err)
		req = transport.ModerateReviewRequest{}
	}

	rev, err := h.Svc.Moderate(ctx, id, req)
	if err != nil {
		return serviceError(l, "moderate_review", err)
	}
	audit.SetTarget(c, rev.ID)

	l.Info("moderate_review_success", "review_id", rev.ID, "status", rev.Status)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Review status updated to " + rev.Status})
}
