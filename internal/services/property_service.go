package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/database"
	"github.com/hivenest/hivenest-backend/internal/geo"
	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

const (
	// Radius search is fixed at 1000 km, converted to degrees with the
	// 111 km/degree approximation the distance predicate expects.
	searchRadiusKm = 1000.0
	kmPerDegree    = 111.0
)

// FilterAny is the sentinel that disables an optional filter clause.
const FilterAny = "any"

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// PropertyFilters holds the recognized search criteria. A nil (or
// empty) field contributes no predicate clause.
type PropertyFilters struct {
	FavoriteIDs   []int
	PriceMin      *float64
	PriceMax      *float64
	Beds          *int
	Baths         *float64
	SquareFeetMin *int
	SquareFeetMax *int
	PropertyType  *models.PropertyType
	Amenities     []string
	AvailableFrom *time.Time
	Latitude      *float64
	Longitude     *float64
}

// ParsePropertyFilters reads the recognized query parameters. Malformed
// numeric and enum values fail with ErrValidation; an unparseable
// availableFrom date disables that clause without erroring, matching
// the documented search behavior.
func ParsePropertyFilters(values url.Values) (PropertyFilters, error) {
	var filters PropertyFilters

	if raw := values.Get("favoriteIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return filters, fmt.Errorf("invalid favoriteIds value %q: %w", part, ErrValidation)
			}
			filters.FavoriteIDs = append(filters.FavoriteIDs, id)
		}
	}

	var err error
	if filters.PriceMin, err = parseFloatParam(values, "priceMin"); err != nil {
		return filters, err
	}
	if filters.PriceMax, err = parseFloatParam(values, "priceMax"); err != nil {
		return filters, err
	}
	if filters.Beds, err = parseIntParam(values, "beds"); err != nil {
		return filters, err
	}
	if filters.Baths, err = parseFloatParam(values, "baths"); err != nil {
		return filters, err
	}
	if filters.SquareFeetMin, err = parseIntParam(values, "squareFeetMin"); err != nil {
		return filters, err
	}
	if filters.SquareFeetMax, err = parseIntParam(values, "squareFeetMax"); err != nil {
		return filters, err
	}

	if raw := values.Get("propertyType"); raw != "" && raw != FilterAny {
		propertyType := models.PropertyType(raw)
		if !propertyType.Valid() {
			return filters, fmt.Errorf("invalid propertyType %q: %w", raw, ErrValidation)
		}
		filters.PropertyType = &propertyType
	}

	if raw := values.Get("amenities"); raw != "" && raw != FilterAny {
		for _, part := range strings.Split(raw, ",") {
			if amenity := strings.TrimSpace(part); amenity != "" {
				filters.Amenities = append(filters.Amenities, amenity)
			}
		}
	}

	if raw := values.Get("availableFrom"); raw != "" && raw != FilterAny {
		// An unparseable date means "no constraint", not an error.
		if date, err := parseDate(raw); err == nil {
			filters.AvailableFrom = &date
		}
	}

	if filters.Latitude, err = parseFloatParam(values, "latitude"); err != nil {
		return filters, err
	}
	if filters.Longitude, err = parseFloatParam(values, "longitude"); err != nil {
		return filters, err
	}

	return filters, nil
}

func parseFloatParam(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" || raw == FilterAny {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, raw, ErrValidation)
	}
	return &value, nil
}

func parseIntParam(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" || raw == FilterAny {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, raw, ErrValidation)
	}
	return &value, nil
}

func parseDate(raw string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	return time.Parse("2006-01-02", raw)
}

// SearchProperties composes one conjunctive predicate from the present
// filters. Every clause is parameter-bound, including the geospatial
// one.
func (s *PropertyService) SearchProperties(filters PropertyFilters) ([]models.PropertyResponse, error) {
	query := s.db.Model(&models.Property{}).
		Select("properties.*").
		Joins("JOIN locations ON locations.id = properties.location_id")

	if len(filters.FavoriteIDs) > 0 {
		query = query.Where("properties.id IN ?", filters.FavoriteIDs)
	}
	if filters.PriceMin != nil {
		query = query.Where("properties.price_per_month >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("properties.price_per_month <= ?", *filters.PriceMax)
	}
	if filters.Beds != nil {
		query = query.Where("properties.beds >= ?", *filters.Beds)
	}
	if filters.Baths != nil {
		query = query.Where("properties.baths >= ?", *filters.Baths)
	}
	if filters.SquareFeetMin != nil {
		query = query.Where("properties.square_feet >= ?", *filters.SquareFeetMin)
	}
	if filters.SquareFeetMax != nil {
		query = query.Where("properties.square_feet <= ?", *filters.SquareFeetMax)
	}
	if filters.PropertyType != nil {
		query = query.Where("properties.property_type = ?", string(*filters.PropertyType))
	}
	if len(filters.Amenities) > 0 {
		query = query.Where("properties.amenities @> ?", pq.StringArray(filters.Amenities))
	}
	if filters.AvailableFrom != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM leases WHERE leases.property_id = properties.id AND leases.start_date <= ?)",
			*filters.AvailableFrom,
		)
	}
	if filters.Latitude != nil && filters.Longitude != nil {
		radiusDegrees := searchRadiusKm / kmPerDegree
		query = query.Where(
			"ST_DWithin(locations.coordinates, ST_SetSRID(ST_MakePoint(?, ?), 4326), ?)",
			*filters.Longitude, *filters.Latitude, radiusDegrees,
		)
	}

	var properties []models.Property
	if err := query.Preload("Location").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	return attachCoordinates(s.db, properties)
}

func (s *PropertyService) GetProperty(id int) (*models.PropertyResponse, error) {
	var property models.Property
	if err := s.db.Preload("Location").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	responses, err := attachCoordinates(s.db, []models.Property{property})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

type CreatePropertyInput struct {
	Name              string  `validate:"required"`
	Description       string
	PricePerMonth     float64 `validate:"required,gt=0"`
	SecurityDeposit   float64 `validate:"gte=0"`
	ApplicationFee    float64 `validate:"gte=0"`
	PhotoUrls         []string
	Amenities         []string
	Highlights        []string
	IsPetsAllowed     bool
	IsParkingIncluded bool
	Beds              int                 `validate:"required,gt=0"`
	Baths             float64             `validate:"required,gt=0"`
	SquareFeet        int                 `validate:"required,gt=0"`
	PropertyType      models.PropertyType `validate:"required"`
	ManagerCognitoID  string              `validate:"required"`
	Address           string              `validate:"required"`
	City              string              `validate:"required"`
	State             string
	Country           string `validate:"required"`
	PostalCode        string
	Latitude          float64 `validate:"gte=-90,lte=90"`
	Longitude         float64 `validate:"gte=-180,lte=180"`
}

// CreateProperty inserts the location (with its geometry point) and the
// property atomically.
func (s *PropertyService) CreateProperty(input *CreatePropertyInput) (*models.PropertyResponse, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !input.PropertyType.Valid() {
		return nil, fmt.Errorf("invalid propertyType %q: %w", input.PropertyType, ErrValidation)
	}

	var manager models.Manager
	if err := s.db.First(&manager, "cognito_id = ?", input.ManagerCognitoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("manager %s: %w", input.ManagerCognitoID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	point := geo.Point{Longitude: input.Longitude, Latitude: input.Latitude}

	var property models.Property
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var locationID int
		if err := tx.Raw(
			`INSERT INTO locations (address, city, state, country, postal_code, coordinates)
			 VALUES (?, ?, ?, ?, ?, ST_SetSRID(ST_GeomFromText(?), 4326))
			 RETURNING id`,
			input.Address, input.City, input.State, input.Country, input.PostalCode,
			geo.FormatPointWKT(point),
		).Scan(&locationID).Error; err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}

		property = models.Property{
			Name:              input.Name,
			Description:       input.Description,
			PricePerMonth:     input.PricePerMonth,
			SecurityDeposit:   input.SecurityDeposit,
			ApplicationFee:    input.ApplicationFee,
			PhotoUrls:         pq.StringArray(input.PhotoUrls),
			Amenities:         pq.StringArray(input.Amenities),
			Highlights:        pq.StringArray(input.Highlights),
			IsPetsAllowed:     input.IsPetsAllowed,
			IsParkingIncluded: input.IsParkingIncluded,
			Beds:              input.Beds,
			Baths:             input.Baths,
			SquareFeet:        input.SquareFeet,
			PropertyType:      input.PropertyType,
			LocationID:        locationID,
			ManagerCognitoID:  input.ManagerCognitoID,
		}
		if err := tx.Create(&property).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&property.Location, property.LocationID).Error; err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}

	response := models.NewPropertyResponse(property, point)
	return &response, nil
}

// attachCoordinates converts stored geometry to coordinate pairs for a
// batch of properties. Geometry is never returned in native form.
func attachCoordinates(db *gorm.DB, properties []models.Property) ([]models.PropertyResponse, error) {
	responses := make([]models.PropertyResponse, 0, len(properties))
	if len(properties) == 0 {
		return responses, nil
	}

	ids := make([]int, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.LocationID)
	}

	var rows []struct {
		ID  int
		Wkt string
	}
	if err := db.Raw(
		"SELECT id, ST_AsText(coordinates) AS wkt FROM locations WHERE id IN ?", ids,
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve coordinates: %w", err)
	}

	points := make(map[int]geo.Point, len(rows))
	for _, row := range rows {
		if row.Wkt == "" {
			continue
		}
		point, err := geo.ParsePointWKT(row.Wkt)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", row.ID, err)
		}
		points[row.ID] = point
	}

	for _, p := range properties {
		responses = append(responses, models.NewPropertyResponse(p, points[p.LocationID]))
	}
	return responses, nil
}
