package models

import "time"

// Application tracks a tenant's request to lease a property through
// Pending -> Approved/Denied. The lease reference is set on creation
// (tentative lease) and replaced once on approval; approved and denied
// are terminal.
type Application struct {
	ID              int               `json:"id" gorm:"primaryKey"`
	ApplicationDate time.Time         `json:"applicationDate" gorm:"not null"`
	Status          ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'Pending';not null;index"`
	PropertyID      int               `json:"propertyId" gorm:"not null;index"`
	TenantCognitoID string            `json:"tenantCognitoId" gorm:"size:255;not null;index"`
	Name            string            `json:"name" gorm:"size:255;not null"`
	Email           string            `json:"email" gorm:"size:255;not null"`
	PhoneNumber     string            `json:"phoneNumber" gorm:"size:50"`
	Message         string            `json:"message" gorm:"type:text"`
	LeaseID         *int              `json:"leaseId,omitempty" gorm:"uniqueIndex"`

	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantCognitoID;references:CognitoID"`
	Lease    *Lease   `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`
}

// ApplicationResponse enriches an application row with the resolved
// property wire shape and the derived next payment date. The payment
// date is computed per request, never persisted.
type ApplicationResponse struct {
	Application
	Property        PropertyResponse `json:"property"`
	Manager         *Manager         `json:"manager,omitempty"`
	NextPaymentDate *time.Time       `json:"nextPaymentDate,omitempty"`
}
