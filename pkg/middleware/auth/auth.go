package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_admin/pkg/authclient"
	"github.com/Skotchmaster/farm_admin/pkg/tokens"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"

	RoleAdmin = "admin"
)

type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken, accessToken string) (*authclient.RefreshResponse, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret  []byte
	AuthClient Refresher
}

func NewAutoRefreshMiddleware(secret []byte, authClient Refresher) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:  secret,
		AuthClient: authClient,
	}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AutoRefreshMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !IsStaff(claims.Role) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

// IsStaff reports whether a role carries admin privileges.
func IsStaff(role string) bool {
	return role == RoleAdmin
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(c echo.Context) (uint, string, bool) {
	id, ok := c.Get(UserIDKey).(uint)
	if !ok || id == 0 {
		return 0, "", false
	}
	role, _ := c.Get(RoleKey).(string)
	return id, role, true
}

func accessToken(c echo.Context) string {
	if ck, err := c.Cookie("accessToken"); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func (m *AutoRefreshMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		access := accessToken(c)
		if access == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(access, m.JWTSecret)
		if err == nil {
			return m.accept(c, next, claims, validator)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refreshCookie, rErr := c.Cookie("refreshToken")
		if rErr != nil || refreshCookie.Value == "" || m.AuthClient == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
		}

		refreshResp, refErr := m.AuthClient.RefreshTokens(c.Request().Context(), refreshCookie.Value, access)
		if refErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}

		c.SetCookie(CreateCookie("accessToken", refreshResp.AccessToken, "/", time.Unix(refreshResp.AccessExp, 0)))
		c.SetCookie(CreateCookie("refreshToken", refreshResp.RefreshToken, "/", time.Unix(refreshResp.RefreshExp, 0)))

		newClaims, pErr := tokens.AccessClaimsFromToken(refreshResp.AccessToken, m.JWTSecret)
		if pErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}

		return m.accept(c, next, newClaims, validator)
	}
}

func (m *AutoRefreshMiddleware) accept(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims, validator ValidatorFunc) error {
	userID, err := claims.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	setUserContext(c, userID, claims.Role)

	if validator != nil {
		if err := validator(claims); err != nil {
			return err
		}
	}
	return next(c)
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(DeleteCookie("accessToken", "/"))
	c.SetCookie(DeleteCookie("refreshToken", "/"))
}

func setUserContext(c echo.Context, userID uint, role string) {
	c.Set(UserIDKey, userID)
	c.Set(RoleKey, role)
}
