package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type ManagerService struct {
	db *gorm.DB
}

func NewManagerService(db *gorm.DB) *ManagerService {
	return &ManagerService{db: db}
}

type CreateManagerRequest struct {
	CognitoID   string `json:"cognitoId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

type UpdateManagerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (s *ManagerService) GetManager(cognitoID string) (*models.Manager, error) {
	var manager models.Manager
	if err := s.db.First(&manager, "cognito_id = ?", cognitoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("manager %s: %w", cognitoID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &manager, nil
}

func (s *ManagerService) CreateManager(req *CreateManagerRequest) (*models.Manager, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	manager := models.Manager{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.db.Create(&manager).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("manager %s: %w", req.CognitoID, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}
	return &manager, nil
}

func (s *ManagerService) UpdateManager(cognitoID string, req *UpdateManagerRequest) (*models.Manager, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	manager, err := s.GetManager(cognitoID)
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
		if err := s.db.Model(manager).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update manager: %w", err)
		}
	}
	return s.GetManager(cognitoID)
}

// GetManagerProperties lists the manager's portfolio, coordinates
// resolved.
func (s *ManagerService) GetManagerProperties(cognitoID string) ([]models.PropertyResponse, error) {
	if _, err := s.GetManager(cognitoID); err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := s.db.Where("manager_cognito_id = ?", cognitoID).
		Preload("Location").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return attachCoordinates(s.db, properties)
}
