package models

import "time"

// Lease terms are frozen at creation time: rent and deposit are copied
// from the property's pricing when the lease row is written.
type Lease struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	StartDate       time.Time `json:"startDate" gorm:"not null;index"`
	EndDate         time.Time `json:"endDate" gorm:"not null"`
	Rent            float64   `json:"rent" gorm:"not null"`
	Deposit         float64   `json:"deposit" gorm:"not null"`
	PropertyID      int       `json:"propertyId" gorm:"not null;index"`
	TenantCognitoID string    `json:"tenantCognitoId" gorm:"size:255;not null;index"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantCognitoID;references:CognitoID"`
}
