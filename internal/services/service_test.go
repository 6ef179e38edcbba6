package services

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hivenest/hivenest-backend/internal/models"
)

var wktDriverOnce sync.Once

// newTestDB opens an in-memory database with the full schema. The
// geometry column is plain WKT text here and ST_AsText is mapped to
// identity, so the coordinate resolution path runs against real SQL;
// the PostgreSQL-only predicate clauses are asserted separately
// against a mocked connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	wktDriverOnce.Do(func() {
		sql.Register("sqlite3_wkt", &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("ST_AsText", func(wkt interface{}) interface{} {
					return wkt
				}, true)
			},
		})
	})

	db, err := gorm.Open(&sqlite.Dialector{DriverName: "sqlite3_wkt", DSN: ":memory:"}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would otherwise get its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Location{},
		&models.Manager{},
		&models.Tenant{},
		&models.Property{},
		&models.Lease{},
		&models.Application{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Exec("ALTER TABLE locations ADD COLUMN coordinates text").Error)

	return db
}

const seedWKT = "POINT(-89.65 39.78)"

func seedManager(t *testing.T, db *gorm.DB, cognitoID string) models.Manager {
	t.Helper()
	manager := models.Manager{
		CognitoID:   cognitoID,
		Name:        "Morgan Reyes",
		Email:       cognitoID + "@example.com",
		PhoneNumber: "555-0100",
	}
	require.NoError(t, db.Create(&manager).Error)
	return manager
}

func seedTenant(t *testing.T, db *gorm.DB, cognitoID string) models.Tenant {
	t.Helper()
	tenant := models.Tenant{
		CognitoID:   cognitoID,
		Name:        "Jamie Park",
		Email:       cognitoID + "@example.com",
		PhoneNumber: "555-0101",
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func seedProperty(t *testing.T, db *gorm.DB, managerID string) models.Property {
	t.Helper()

	location := models.Location{
		Address:    "12 Main St",
		City:       "Springfield",
		State:      "IL",
		Country:    "USA",
		PostalCode: "62701",
	}
	require.NoError(t, db.Create(&location).Error)
	require.NoError(t, db.Exec(
		"UPDATE locations SET coordinates = ? WHERE id = ?", seedWKT, location.ID,
	).Error)

	property := models.Property{
		Name:             "Maple Court",
		Description:      "Two bedroom walk-up",
		PricePerMonth:    1500,
		SecurityDeposit:  500,
		ApplicationFee:   100,
		Beds:             2,
		Baths:            1,
		SquareFeet:       850,
		PropertyType:     models.PropertyTypeApartment,
		LocationID:       location.ID,
		ManagerCognitoID: managerID,
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func seedLease(t *testing.T, db *gorm.DB, propertyID int, tenantID string, start time.Time) models.Lease {
	t.Helper()
	lease := models.Lease{
		StartDate:       start,
		EndDate:         start.AddDate(1, 0, 0),
		Rent:            1500,
		Deposit:         500,
		PropertyID:      propertyID,
		TenantCognitoID: tenantID,
	}
	require.NoError(t, db.Create(&lease).Error)
	return lease
}
