package services

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

type CreateTenantRequest struct {
	CognitoID   string `json:"cognitoId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

type UpdateTenantRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (s *TenantService) GetTenant(cognitoID string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.Preload("Favorites").First(&tenant, "cognito_id = ?", cognitoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tenant %s: %w", cognitoID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tenant, nil
}

func (s *TenantService) CreateTenant(req *CreateTenantRequest) (*models.Tenant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	tenant := models.Tenant{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.db.Create(&tenant).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tenant %s: %w", req.CognitoID, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &tenant, nil
}

func (s *TenantService) UpdateTenant(cognitoID string, req *UpdateTenantRequest) (*models.Tenant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	tenant, err := s.GetTenant(cognitoID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if len(updates) > 0 {
		if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update tenant: %w", err)
		}
	}
	return s.GetTenant(cognitoID)
}

// GetCurrentResidences lists the properties the tenant currently lives
// in, coordinates resolved.
func (s *TenantService) GetCurrentResidences(cognitoID string) ([]models.PropertyResponse, error) {
	if _, err := s.GetTenant(cognitoID); err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := s.db.Model(&models.Property{}).
		Select("properties.*").
		Joins("JOIN tenant_properties ON tenant_properties.property_id = properties.id").
		Where("tenant_properties.tenant_cognito_id = ?", cognitoID).
		Preload("Location").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch residences: %w", err)
	}

	return attachCoordinates(s.db, properties)
}

// AddFavorite links the property to the tenant's favorite set. A
// favorite that is already present is a conflict, not a silent
// success; the unique-violation fallback covers concurrent duplicates
// that slip past the membership check.
func (s *TenantService) AddFavorite(cognitoID string, propertyID int) (*models.Tenant, error) {
	tenant, err := s.GetTenant(cognitoID)
	if err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	for _, favorite := range tenant.Favorites {
		if favorite.ID == propertyID {
			return nil, fmt.Errorf("property %d already favorited: %w", propertyID, ErrConflict)
		}
	}

	if err := s.db.Exec(
		"INSERT INTO tenant_favorites (tenant_cognito_id, property_id) VALUES (?, ?)",
		cognitoID, propertyID,
	).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("property %d already favorited: %w", propertyID, ErrConflict)
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return s.GetTenant(cognitoID)
}

// RemoveFavorite unlinks the property if present; removing an absent
// favorite is a no-op.
func (s *TenantService) RemoveFavorite(cognitoID string, propertyID int) (*models.Tenant, error) {
	if _, err := s.GetTenant(cognitoID); err != nil {
		return nil, err
	}

	if err := s.db.Exec(
		"DELETE FROM tenant_favorites WHERE tenant_cognito_id = ? AND property_id = ?",
		cognitoID, propertyID,
	).Error; err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return s.GetTenant(cognitoID)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
