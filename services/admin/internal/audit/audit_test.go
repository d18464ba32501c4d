package audit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/pkg/events"
	authmw "github.com/Skotchmaster/farm_admin/pkg/middleware/auth"
	"github.com/Skotchmaster/farm_admin/pkg/tokens"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/repo"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/testutil"
)

var secret = []byte("audit-test-secret")

type fixture struct {
	db     *gorm.DB
	e      *echo.Echo
	pub    *events.Memory
	admin  *models.User
	farmer *models.User
}

func newFixture(t *testing.T, wrap func(Store) Store) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	var store Store = repo.New(db)
	if wrap != nil {
		store = wrap(store)
	}
	f := &fixture{
		db:     db,
		e:      echo.New(),
		pub:    &events.Memory{},
		admin:  testutil.CreateUser(t, db, "root", models.RoleAdmin),
		farmer: testutil.CreateUser(t, db, "ann", models.RoleFarmer),
	}

	rec := NewRecorder(store, f.pub, nil)
	auth := authmw.NewAutoRefreshMiddleware(secret, nil)
	g := f.e.Group("/api/admin", Middleware(rec), auth.RequireAdmin)

	g.PUT("/inventory/:id/", func(c echo.Context) error {
		body, _ := io.ReadAll(c.Request().Body)
		SetTarget(c, 7)
		return c.String(http.StatusOK, string(body))
	})
	g.POST("/notifications/send/", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"message": "sent"})
	})
	g.GET("/inventory/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})
	g.DELETE("/broken/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})
	return f
}

func (f *fixture) do(t *testing.T, user *models.User, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		tok, err := tokens.SignAccessToken(user.ID, user.Role, time.Now().Add(time.Hour), secret)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) logs(t *testing.T) []models.AdminActivityLog {
	t.Helper()
	var rows []models.AdminActivityLog
	require.NoError(t, f.db.Order("id").Find(&rows).Error)
	return rows
}

func TestMiddleware_StaffMutationLogged(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, f.admin, http.MethodPut, "/api/admin/inventory/7/", `{"stockQuantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	// the handler still sees the full body
	assert.Equal(t, `{"stockQuantity":5}`, rec.Body.String())

	rows := f.logs(t)
	require.Len(t, rows, 1)
	assert.Equal(t, f.admin.ID, rows[0].AdminID)
	assert.Equal(t, "PUT /api/admin/inventory/7/", rows[0].Action)
	require.NotNil(t, rows[0].TargetID)
	assert.EqualValues(t, 7, *rows[0].TargetID)

	evs := f.pub.ByType("admin_action_logged")
	require.Len(t, evs, 1)
	assert.Equal(t, events.TopicAdminActivity, evs[0].Topic)
	assert.Equal(t, map[string]any{"stockQuantity": float64(5)}, evs[0].Event["details"])
}

func TestMiddleware_EmptyBodyLogged(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, f.admin, http.MethodPost, "/api/admin/notifications/send/", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rows := f.logs(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "POST /api/admin/notifications/send/", rows[0].Action)
	assert.Nil(t, rows[0].TargetID)
}

func TestMiddleware_BlankBodyLogged(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, f.admin, http.MethodPost, "/api/admin/notifications/send/", "  \n ")
	require.Equal(t, http.StatusCreated, rec.Code)

	rows := f.logs(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "POST /api/admin/notifications/send/", rows[0].Action)

	evs := f.pub.ByType("admin_action_logged")
	require.Len(t, evs, 1)
	assert.Equal(t, map[string]any{}, evs[0].Event["details"])
}

func TestMiddleware_RoleClaimCheckedAgainstStore(t *testing.T) {
	f := newFixture(t, nil)
	customer := testutil.CreateUser(t, f.db, "cal", models.RoleCustomer)

	// token claims admin, the stored user is a customer
	forged := *customer
	forged.Role = models.RoleAdmin
	rec := f.do(t, &forged, http.MethodPost, "/api/admin/notifications/send/", `{"message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, f.logs(t))
	assert.Empty(t, f.pub.Events())
}

func TestMiddleware_ErrorResponseStillLogged(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, f.admin, http.MethodDelete, "/api/admin/broken/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, f.logs(t), 1)
}

func TestMiddleware_NotLogged(t *testing.T) {
	cases := []struct {
		name   string
		user   func(f *fixture) *models.User
		method string
		body   string
		code   int
	}{
		{"read request", func(f *fixture) *models.User { return f.admin }, http.MethodGet, "", http.StatusOK},
		{"non staff", func(f *fixture) *models.User { return f.farmer }, http.MethodPut, `{"stockQuantity":5}`, http.StatusForbidden},
		{"anonymous", func(*fixture) *models.User { return nil }, http.MethodPut, `{"stockQuantity":5}`, http.StatusUnauthorized},
		{"invalid json", func(f *fixture) *models.User { return f.admin }, http.MethodPut, `{"stockQuantity":`, http.StatusOK},
		{"invalid utf8", func(f *fixture) *models.User { return f.admin }, http.MethodPut, "\xff\xfe", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			path := "/api/admin/inventory/7/"
			if tc.method == http.MethodGet {
				path = "/api/admin/inventory/"
			}
			rec := f.do(t, tc.user(f), tc.method, path, tc.body)
			require.Equal(t, tc.code, rec.Code)
			assert.Empty(t, f.logs(t))
		})
	}
}

type failingStore struct {
	Store
}

func (failingStore) CreateActivity(context.Context, *models.AdminActivityLog) error {
	return errors.New("disk full")
}

func TestMiddleware_StoreFailureDoesNotChangeResponse(t *testing.T) {
	f := newFixture(t, func(s Store) Store { return failingStore{s} })

	rec := f.do(t, f.admin, http.MethodPost, "/api/admin/notifications/send/", `{"message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"sent"}`, rec.Body.String())
	assert.Empty(t, f.pub.Events())
}

type recordingIndexer struct {
	ids []uint
	err error
}

func (r *recordingIndexer) IndexActivity(_ context.Context, entry *models.AdminActivityLog) error {
	r.ids = append(r.ids, entry.ID)
	return r.err
}

func TestRecorder_Record(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "root", models.RoleAdmin)
	idx := &recordingIndexer{err: errors.New("cluster down")}
	pub := &events.Memory{Err: errors.New("broker down")}

	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.FixedZone("x", 3600))
	r := NewRecorder(repo.New(db), pub, idx)
	r.Now = func() time.Time { return fixed }

	target := uint(3)
	row, err := r.Record(context.Background(), Entry{AdminID: admin.ID, Action: "manual", TargetID: &target})
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), row.Timestamp)
	assert.Equal(t, []uint{row.ID}, idx.ids)

	var stored models.AdminActivityLog
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.Equal(t, "manual", stored.Action)
	assert.True(t, stored.Timestamp.Equal(fixed))

	customer := testutil.CreateUser(t, db, "cal", models.RoleCustomer)
	_, err = r.Record(context.Background(), Entry{AdminID: customer.ID, Action: "manual"})
	require.ErrorIs(t, err, ErrNotAdmin)

	_, err = r.Record(context.Background(), Entry{AdminID: 999, Action: "manual"})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AdminActivityLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestParseBody(t *testing.T) {
	m, ok := parseBody(nil)
	require.True(t, ok)
	assert.Empty(t, m)

	m, ok = parseBody([]byte(`[1,2]`))
	require.True(t, ok)
	assert.Equal(t, []any{float64(1), float64(2)}, m["body"])

	m, ok = parseBody([]byte(" \t\r\n"))
	require.True(t, ok)
	assert.Empty(t, m)

	_, ok = parseBody([]byte("not json"))
	assert.False(t, ok)
}
