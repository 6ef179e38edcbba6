package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/hivenest/hivenest-backend/internal/geo"
)

type Property struct {
	ID                int            `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"size:255;not null"`
	Description       string         `json:"description" gorm:"type:text"`
	PricePerMonth     float64        `json:"pricePerMonth" gorm:"not null"`
	SecurityDeposit   float64        `json:"securityDeposit" gorm:"not null"`
	ApplicationFee    float64        `json:"applicationFee"`
	PhotoUrls         pq.StringArray `json:"photoUrls" gorm:"type:text[]"`
	Amenities         pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Highlights        pq.StringArray `json:"highlights" gorm:"type:text[]"`
	IsPetsAllowed     bool           `json:"isPetsAllowed"`
	IsParkingIncluded bool           `json:"isParkingIncluded"`
	Beds              int            `json:"beds" gorm:"not null"`
	Baths             float64        `json:"baths" gorm:"not null"`
	SquareFeet        int            `json:"squareFeet" gorm:"not null"`
	PropertyType      PropertyType   `json:"propertyType" gorm:"type:varchar(20);not null;index"`
	PostedDate        time.Time      `json:"postedDate" gorm:"autoCreateTime"`
	AverageRating     float64        `json:"averageRating"`
	NumberOfReviews   int            `json:"numberOfReviews"`
	LocationID        int            `json:"locationId" gorm:"not null;index"`
	ManagerCognitoID  string         `json:"managerCognitoId" gorm:"size:255;not null;index"`

	Location     Location      `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Manager      *Manager      `json:"manager,omitempty" gorm:"foreignKey:ManagerCognitoID;references:CognitoID"`
	Leases       []Lease       `json:"leases,omitempty" gorm:"foreignKey:PropertyID"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:PropertyID"`

	// Join tables are owned by the Tenant side; declared here so
	// AutoMigrate sees both directions.
	Favoriters []Tenant `json:"-" gorm:"many2many:tenant_favorites;foreignKey:ID;joinForeignKey:PropertyID;references:CognitoID;joinReferences:TenantCognitoID"`
	Residents  []Tenant `json:"-" gorm:"many2many:tenant_properties;foreignKey:ID;joinForeignKey:PropertyID;references:CognitoID;joinReferences:TenantCognitoID"`
}

// PropertyResponse is the wire shape of a property: the stored record
// with its location's geometry already converted to a coordinate pair.
// The outer Location field shadows the embedded one during marshaling.
type PropertyResponse struct {
	Property
	Location LocationResponse `json:"location"`
}

// NewPropertyResponse pairs a property with its resolved coordinates.
func NewPropertyResponse(p Property, coords geo.Point) PropertyResponse {
	return PropertyResponse{
		Property: p,
		Location: LocationResponse{
			Location:    p.Location,
			Coordinates: coords,
		},
	}
}
