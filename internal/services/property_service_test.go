package services

import (
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hivenest/hivenest-backend/internal/models"
)

func TestParsePropertyFilters(t *testing.T) {
	values := url.Values{}
	values.Set("favoriteIds", "1, 2,3")
	values.Set("priceMin", "1000")
	values.Set("priceMax", "2500.50")
	values.Set("beds", "2")
	values.Set("baths", "1.5")
	values.Set("squareFeetMin", "600")
	values.Set("squareFeetMax", "1200")
	values.Set("propertyType", "Apartment")
	values.Set("amenities", "Pool, Gym")
	values.Set("availableFrom", "2024-05-01")
	values.Set("latitude", "40.7484")
	values.Set("longitude", "-73.9857")

	filters, err := ParsePropertyFilters(values)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, filters.FavoriteIDs)
	require.NotNil(t, filters.PriceMin)
	assert.Equal(t, 1000.0, *filters.PriceMin)
	require.NotNil(t, filters.PriceMax)
	assert.Equal(t, 2500.50, *filters.PriceMax)
	require.NotNil(t, filters.Beds)
	assert.Equal(t, 2, *filters.Beds)
	require.NotNil(t, filters.Baths)
	assert.Equal(t, 1.5, *filters.Baths)
	require.NotNil(t, filters.SquareFeetMin)
	assert.Equal(t, 600, *filters.SquareFeetMin)
	require.NotNil(t, filters.SquareFeetMax)
	assert.Equal(t, 1200, *filters.SquareFeetMax)
	require.NotNil(t, filters.PropertyType)
	assert.Equal(t, models.PropertyTypeApartment, *filters.PropertyType)
	assert.Equal(t, []string{"Pool", "Gym"}, filters.Amenities)
	require.NotNil(t, filters.AvailableFrom)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *filters.AvailableFrom)
	require.NotNil(t, filters.Latitude)
	assert.Equal(t, 40.7484, *filters.Latitude)
	require.NotNil(t, filters.Longitude)
	assert.Equal(t, -73.9857, *filters.Longitude)
}

func TestParsePropertyFiltersAnySentinel(t *testing.T) {
	values := url.Values{}
	values.Set("priceMin", "any")
	values.Set("beds", "any")
	values.Set("propertyType", "any")
	values.Set("amenities", "any")
	values.Set("availableFrom", "any")

	filters, err := ParsePropertyFilters(values)
	require.NoError(t, err)

	assert.Nil(t, filters.PriceMin)
	assert.Nil(t, filters.Beds)
	assert.Nil(t, filters.PropertyType)
	assert.Nil(t, filters.Amenities)
	assert.Nil(t, filters.AvailableFrom)
}

func TestParsePropertyFiltersMalformed(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric price", "priceMin", "cheap"},
		{"non numeric beds", "beds", "two"},
		{"non numeric latitude", "latitude", "north"},
		{"unknown property type", "propertyType", "Castle"},
		{"bad favorite id", "favoriteIds", "1,abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.key, tt.value)

			_, err := ParsePropertyFilters(values)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParsePropertyFiltersBadDateIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("availableFrom", "next tuesday")

	filters, err := ParsePropertyFilters(values)
	require.NoError(t, err)
	assert.Nil(t, filters.AvailableFrom)
}

func TestParsePropertyFiltersAcceptsRFC3339(t *testing.T) {
	values := url.Values{}
	values.Set("availableFrom", "2024-05-01T12:30:00Z")

	filters, err := ParsePropertyFilters(values)
	require.NoError(t, err)
	require.NotNil(t, filters.AvailableFrom)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), *filters.AvailableFrom)
}

// newMockDB stands in for PostgreSQL so the composed predicate,
// including the geospatial clause, can be asserted verbatim.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestSearchPropertiesComposesGeoClause(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPropertyService(db)

	priceMin := 1000.0
	latitude := 40.7484
	longitude := -73.9857

	mock.ExpectQuery(`SELECT properties\.\* FROM "properties" JOIN locations ON locations\.id = properties\.location_id `+
		`WHERE properties\.price_per_month >= \$1 AND `+
		`ST_DWithin\(locations\.coordinates, ST_SetSRID\(ST_MakePoint\(\$2, \$3\), 4326\), \$4\)`).
		WithArgs(priceMin, longitude, latitude, searchRadiusKm/kmPerDegree).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	results, err := service.SearchProperties(PropertyFilters{
		PriceMin:  &priceMin,
		Latitude:  &latitude,
		Longitude: &longitude,
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPropertiesNoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPropertyService(db)

	mock.ExpectQuery(`SELECT properties\.\* FROM "properties" JOIN locations ON locations\.id = properties\.location_id$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	results, err := service.SearchProperties(PropertyFilters{})
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPropertiesAvailabilitySubquery(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewPropertyService(db)

	availableFrom := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE properties\.id IN \(\$1,\$2\) AND `+
		`EXISTS \(SELECT 1 FROM leases WHERE leases\.property_id = properties\.id AND leases\.start_date <= \$3\)`).
		WithArgs(1, 2, availableFrom).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.SearchProperties(PropertyFilters{
		FavoriteIDs:   []int{1, 2},
		AvailableFrom: &availableFrom,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropertyNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPropertyService(db)

	_, err := service.GetProperty(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePropertyValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewPropertyService(db)

	_, err := service.CreateProperty(&CreatePropertyInput{
		Name:         "Maple Court",
		PropertyType: models.PropertyTypeApartment,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePropertyUnknownManager(t *testing.T) {
	db := newTestDB(t)
	service := NewPropertyService(db)

	_, err := service.CreateProperty(&CreatePropertyInput{
		Name:             "Maple Court",
		PricePerMonth:    1500,
		Beds:             2,
		Baths:            1,
		SquareFeet:       850,
		PropertyType:     models.PropertyTypeApartment,
		ManagerCognitoID: "ghost",
		Address:          "12 Main St",
		City:             "Springfield",
		Country:          "USA",
		Latitude:         39.78,
		Longitude:        -89.65,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
