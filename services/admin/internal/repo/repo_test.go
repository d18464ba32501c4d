package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/testutil"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/transport"
)

func ptr[T any](v T) *T { return &v }

func TestListProducts_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	f := testutil.CreateFarmer(t, db, "green")
	apples := testutil.CreateProduct(t, db, f.ID, "apples", "fruits", 5)
	testutil.CreateProduct(t, db, f.ID, "carrots", "vegetables", 40)
	testutil.CreateProduct(t, db, f.ID, "pears", "fruits", 12)

	all, err := r.ListProducts(ctx, transport.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fruits, err := r.ListProducts(ctx, transport.ProductFilter{Category: "fruits"})
	require.NoError(t, err)
	assert.Len(t, fruits, 2)

	one, err := r.ListProducts(ctx, transport.ProductFilter{ProductID: &apples.ID, Category: "fruits"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "apples", one[0].ProductName)

	none, err := r.ListProducts(ctx, transport.ProductFilter{Category: "grains"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateStock(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	f := testutil.CreateFarmer(t, db, "green")
	p := testutil.CreateProduct(t, db, f.ID, "apples", "fruits", 5)

	require.NoError(t, r.UpdateStock(ctx, p.ID, 50))
	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.StockQuantity)

	require.ErrorIs(t, r.UpdateStock(ctx, 999, 1), gorm.ErrRecordNotFound)
	_, err = r.GetProduct(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListReviews_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	f := testutil.CreateFarmer(t, db, "green")
	c := testutil.CreateUser(t, db, "bob", models.RoleCustomer)
	p1 := testutil.CreateProduct(t, db, f.ID, "apples", "fruits", 5)
	p2 := testutil.CreateProduct(t, db, f.ID, "pears", "fruits", 5)
	testutil.CreateReview(t, db, p1.ID, c.ID, 5, models.ReviewPending)
	testutil.CreateReview(t, db, p1.ID, c.ID, 2, models.ReviewApproved)
	testutil.CreateReview(t, db, p2.ID, c.ID, 5, models.ReviewPending)

	got, err := r.ListReviews(ctx, transport.ReviewFilter{Rating: ptr(5), Status: models.ReviewPending})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.ListReviews(ctx, transport.ReviewFilter{ProductID: &p1.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpdateReviewStatus(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	f := testutil.CreateFarmer(t, db, "green")
	c := testutil.CreateUser(t, db, "bob", models.RoleCustomer)
	p := testutil.CreateProduct(t, db, f.ID, "apples", "fruits", 5)
	rev := testutil.CreateReview(t, db, p.ID, c.ID, 1, models.ReviewPending)

	require.NoError(t, r.UpdateReviewStatus(ctx, rev.ID, models.ReviewRejected, ptr("spam")))
	got, err := r.GetReview(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "spam", *got.RejectionReason)

	require.NoError(t, r.UpdateReviewStatus(ctx, rev.ID, models.ReviewApproved, nil))
	got, err = r.GetReview(ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, got.Status)
	assert.Nil(t, got.RejectionReason)

	require.ErrorIs(t, r.UpdateReviewStatus(ctx, 404, models.ReviewApproved, nil), gorm.ErrRecordNotFound)
}

func TestNotifications(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	n1 := testutil.CreateNotification(t, db, "hello", models.NotificationGeneral, false)
	testutil.CreateNotification(t, db, "restock", "inventory", true)

	unread, err := r.ListNotifications(ctx, transport.NotificationFilter{IsRead: ptr(false)})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, n1.ID, unread[0].ID)

	require.NoError(t, r.MarkNotificationRead(ctx, n1.ID))
	require.NoError(t, r.MarkNotificationRead(ctx, n1.ID))
	got, err := r.GetNotification(ctx, n1.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	require.ErrorIs(t, r.MarkNotificationRead(ctx, 999), gorm.ErrRecordNotFound)

	typed, err := r.ListNotifications(ctx, transport.NotificationFilter{Type: "inventory"})
	require.NoError(t, err)
	assert.Len(t, typed, 1)
}

func TestCreateNotifications(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "ann", models.RoleFarmer)
	role := models.RoleFarmer
	rows := []models.Notification{
		{Message: "hi", Type: models.NotificationGeneral, TargetRole: &role, TargetUserID: &u.ID},
	}
	require.NoError(t, r.CreateNotifications(ctx, rows))
	assert.NotZero(t, rows[0].ID)
	assert.False(t, rows[0].CreatedDate.IsZero())

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUsersByRoleAndIDs(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "ann", models.RoleFarmer)
	b := testutil.CreateUser(t, db, "bob", models.RoleCustomer)
	testutil.CreateUser(t, db, "cid", models.RoleFarmer)

	farmers, err := r.ListUsersByRole(ctx, models.RoleFarmer)
	require.NoError(t, err)
	assert.Len(t, farmers, 2)

	picked, err := r.ListUsersByIDs(ctx, []uint{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Len(t, picked, 2)

	all, err := r.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListActivity(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "root", models.RoleAdmin)
	other := testutil.CreateUser(t, db, "ops", models.RoleAdmin)
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

	testutil.CreateActivity(t, db, admin.ID, "PUT /api/admin/inventory/1/", day(1))
	testutil.CreateActivity(t, db, admin.ID, "POST /api/admin/notifications/send/", day(5))
	testutil.CreateActivity(t, db, other.ID, "PUT /api/admin/inventory/1/", day(10))

	all, err := r.ListActivity(ctx, transport.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Timestamp.Before(all[2].Timestamp))

	mine, err := r.ListActivity(ctx, transport.ActivityFilter{AdminID: &admin.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	start, end := day(1), day(5)
	ranged, err := r.ListActivity(ctx, transport.ActivityFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	// a single bound is ignored
	half, err := r.ListActivity(ctx, transport.ActivityFilter{Start: &end})
	require.NoError(t, err)
	assert.Len(t, half, 3)

	byAction, err := r.ListActivity(ctx, transport.ActivityFilter{Action: "PUT /api/admin/inventory/1/"})
	require.NoError(t, err)
	assert.Len(t, byAction, 2)
}
