package models

// Tenant is keyed by the identity provider's subject identifier.
type Tenant struct {
	CognitoID   string `json:"cognitoId" gorm:"primaryKey;size:255"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Email       string `json:"email" gorm:"size:255;not null"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:50"`

	Favorites  []Property `json:"favorites,omitempty" gorm:"many2many:tenant_favorites;foreignKey:CognitoID;joinForeignKey:TenantCognitoID;references:ID;joinReferences:PropertyID"`
	Properties []Property `json:"properties,omitempty" gorm:"many2many:tenant_properties;foreignKey:CognitoID;joinForeignKey:TenantCognitoID;references:ID;joinReferences:PropertyID"`

	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:TenantCognitoID;references:CognitoID"`
	Leases       []Lease       `json:"leases,omitempty" gorm:"foreignKey:TenantCognitoID;references:CognitoID"`
}
