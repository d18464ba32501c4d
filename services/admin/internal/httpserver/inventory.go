package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/audit"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

type InventoryHTTP struct {
	Svc *service.InventoryService
}

func (h *InventoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.list")

	productID, err := queryUint(c, "product_id")
	if err != nil {
		l.Warn("list_inventory_error", "status", 400, "reason", "bad product_id", "error", err)
		return err
	}

	items, err := h.Svc.ListInventory(ctx, transport.ProductFilter{
		ProductID: productID,
		Category:  c.QueryParam("category"),
	})
	if err != nil {
		return serviceError(l, "list_inventory", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.update_stock")

	id, err := pathID(c, "product_id")
	if err != nil {
		l.Warn("update_stock_error", "status", 404, "reason", "bad product id", "error", err)
		return err
	}

	// a body that does not bind counts as a missing quantity, so an unknown
	// product still answers 404
	var req transport.UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_stock_bind_failed", "error", err)
		req = transport.UpdateStockRequest{}
	}

	prod, err := h.Svc.UpdateStock(ctx, id, req)
	if err != nil {
		return serviceError(l, "update_stock", err)
	}
	audit.SetTarget(c, prod.ID)

	l.Info("update_stock_success", "product_id", prod.ID, "stock_quantity", prod.StockQuantity)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Stock updated successfully"})
}
