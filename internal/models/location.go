package models

import (
	"github.com/hivenest/hivenest-backend/internal/geo"
)

// Location rows additionally carry a PostGIS geometry(Point,4326)
// column named "coordinates". The column is created by raw migration
// SQL and only ever touched through ST_* expressions, so it is not
// mapped here; the API never exposes geometry in native form.
type Location struct {
	ID         int    `json:"id" gorm:"primaryKey"`
	Address    string `json:"address" gorm:"size:255;not null"`
	City       string `json:"city" gorm:"size:100;not null"`
	State      string `json:"state" gorm:"size:100"`
	Country    string `json:"country" gorm:"size:100;not null"`
	PostalCode string `json:"postalCode" gorm:"size:20"`
}

type LocationResponse struct {
	Location
	Coordinates geo.Point `json:"coordinates"`
}
