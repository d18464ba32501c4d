package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/farm_admin/pkg/db"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
)

// NewDB returns a migrated in-memory sqlite database that is closed when
// the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@farm.test", name),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateFarmer(t *testing.T, db *gorm.DB, name string) *models.Farmer {
	t.Helper()
	u := CreateUser(t, db, name, models.RoleFarmer)
	f := &models.Farmer{
		UserID:             u.ID,
		FarmName:           name + " farm",
		Location:           "valley",
		FarmType:           "organic",
		VerificationStatus: models.VerificationApproved,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func CreateProduct(t *testing.T, db *gorm.DB, farmerID uint, name, category string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		FarmerID:      farmerID,
		ProductName:   name,
		Description:   name + " description",
		Category:      category,
		UnitPrice:     2.5,
		StockQuantity: stock,
		Status:        models.ProductInStock,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateReview(t *testing.T, db *gorm.DB, productID, customerID uint, rating int, status string) *models.Review {
	t.Helper()
	r := &models.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Status:     status,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func CreateNotification(t *testing.T, db *gorm.DB, message, typ string, read bool) *models.Notification {
	t.Helper()
	n := &models.Notification{Message: message, Type: typ, IsRead: read}
	require.NoError(t, db.Create(n).Error)
	return n
}

func CreateActivity(t *testing.T, db *gorm.DB, adminID uint, action string, at time.Time) *models.AdminActivityLog {
	t.Helper()
	l := &models.AdminActivityLog{AdminID: adminID, Action: action, Timestamp: at.UTC()}
	require.NoError(t, db.Create(l).Error)
	return l
}
