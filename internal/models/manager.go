package models

// Manager is keyed by the identity provider's subject identifier.
type Manager struct {
	CognitoID   string `json:"cognitoId" gorm:"primaryKey;size:255"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Email       string `json:"email" gorm:"size:255;not null"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:50"`

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:ManagerCognitoID;references:CognitoID"`
}
