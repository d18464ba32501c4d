package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/pkg/metrics"
	authmw "github.com/Skotchmaster/farm_admin/pkg/middleware/auth"
)

const (
	targetKey     = "audit_target_id"
	recordTimeout = 5 * time.Second
)

// SetTarget attaches the id of the entity a handler touched to the audit row.
func SetTarget(c echo.Context, id uint) {
	c.Set(targetKey, id)
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Middleware records every POST/PUT/DELETE completed by a staff identity.
// It must sit outside the auth middleware so the identity is visible once
// next returns. The handler's result is passed through untouched.
func Middleware(rec *Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !mutating(req.Method) {
				return next(c)
			}

			var body []byte
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					logging.FromContext(req.Context()).Warn("audit_body_read_failed", "error", err)
					req.Body = io.NopCloser(bytes.NewReader(b))
					return next(c)
				}
				body = b
				req.Body = io.NopCloser(bytes.NewReader(body))
			}

			herr := next(c)
			record(c, rec, body)
			return herr
		}
	}
}

func record(c echo.Context, rec *Recorder, body []byte) {
	adminID, role, ok := authmw.IdentityFromContext(c)
	if !ok || !authmw.IsStaff(role) {
		return
	}

	req := c.Request()
	l := logging.FromContext(req.Context())

	details, ok := parseBody(body)
	if !ok {
		metrics.AuditEntries.WithLabelValues(metrics.AuditSkipped).Inc()
		l.Debug("audit_skipped", "reason", "body is not valid json")
		return
	}

	entry := Entry{
		AdminID: adminID,
		Action:  req.Method + " " + req.URL.Path,
		Details: details,
	}
	if id, ok := c.Get(targetKey).(uint); ok {
		entry.TargetID = &id
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), recordTimeout)
	defer cancel()
	if _, err := rec.Record(ctx, entry); err != nil {
		l.Warn("audit_record_failed", "admin_id", adminID, "action", entry.Action, "error", err)
	}
}

// parseBody decodes a request body into a JSON object. A blank body is an
// empty object; anything that is not UTF-8 JSON is rejected.
func parseBody(body []byte) (map[string]any, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, true
	}
	if !utf8.Valid(body) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	return map[string]any{"body": v}, true
}
