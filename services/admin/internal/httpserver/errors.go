package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

// ErrorHandler renders every error as {"error": "<message>"}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.ErrorResponse{Error: msg})
}

// serviceError maps service sentinels to HTTP errors and logs at the level
// the status deserves.
func serviceError(l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op+"_error", "status", http.StatusNotFound, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_error", "status", http.StatusBadRequest, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(op+"_error", "status", http.StatusInternalServerError, "reason", "internal", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// pathID parses a numeric path parameter. Anything else cannot name an
// entity, so it is reported as not found.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%s %q not found", name, c.Param(name)))
	}
	return uint(id), nil
}

func queryUint(c echo.Context, name string) (*uint, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", name))
	}
	id := uint(n)
	return &id, nil
}

func queryInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}
	return &n, nil
}
