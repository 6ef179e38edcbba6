package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/database"
	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

type CreateApplicationRequest struct {
	PropertyID      int    `json:"propertyId" validate:"required"`
	TenantCognitoID string `json:"tenantCognitoId" validate:"required"`
	ApplicationDate string `json:"applicationDate"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	Message         string `json:"message"`
}

// newLease freezes the property's current pricing into a one-year term
// starting at the given date.
func newLease(property *models.Property, tenantCognitoID string, start time.Time) models.Lease {
	return models.Lease{
		StartDate:       start,
		EndDate:         start.AddDate(1, 0, 0),
		Rent:            property.PricePerMonth,
		Deposit:         property.SecurityDeposit,
		PropertyID:      property.ID,
		TenantCognitoID: tenantCognitoID,
	}
}

// CreateApplication inserts a tentative lease and the pending
// application referencing it in one transaction; a failure of either
// insert leaves no partial state.
func (s *ApplicationService) CreateApplication(req *CreateApplicationRequest) (*models.Application, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var property models.Property
	if err := s.db.First(&property, req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property %d: %w", req.PropertyID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, "cognito_id = ?", req.TenantCognitoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tenant %s: %w", req.TenantCognitoID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	applicationDate := time.Now()
	if req.ApplicationDate != "" {
		parsed, err := parseDate(req.ApplicationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid applicationDate %q: %w", req.ApplicationDate, ErrValidation)
		}
		applicationDate = parsed
	}

	var application models.Application
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		lease := newLease(&property, req.TenantCognitoID, time.Now())
		if err := tx.Create(&lease).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", err)
		}

		application = models.Application{
			ApplicationDate: applicationDate,
			Status:          models.ApplicationStatusPending,
			PropertyID:      property.ID,
			TenantCognitoID: req.TenantCognitoID,
			Name:            req.Name,
			Email:           req.Email,
			PhoneNumber:     req.PhoneNumber,
			Message:         req.Message,
			LeaseID:         &lease.ID,
		}
		if err := tx.Create(&application).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Property").Preload("Tenant").Preload("Lease").
		First(&application, application.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &application, nil
}

// UpdateApplicationStatus transitions Pending -> Approved/Denied.
// Approved and Denied are terminal. The pending row is claimed with a
// conditional update so two concurrent decisions cannot both create a
// lease; the loser gets ErrAlreadyDecided.
func (s *ApplicationService) UpdateApplicationStatus(id int, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() || !status.Terminal() {
		return nil, fmt.Errorf("invalid target status %q: %w", status, ErrValidation)
	}

	var application models.Application
	if err := s.db.Preload("Property").First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
			Update("status", status)
		if result.Error != nil {
			return fmt.Errorf("failed to update application: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("application %d: %w", id, ErrAlreadyDecided)
		}

		if status != models.ApplicationStatusApproved {
			return nil
		}

		// Approval creates a fresh lease at current pricing and makes
		// the tenant a current resident of the property.
		lease := newLease(&application.Property, application.TenantCognitoID, time.Now())
		if err := tx.Create(&lease).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", err)
		}

		if err := tx.Exec(
			"INSERT INTO tenant_properties (tenant_cognito_id, property_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			application.TenantCognitoID, application.PropertyID,
		).Error; err != nil {
			return fmt.Errorf("failed to add resident: %w", err)
		}

		if err := tx.Model(&models.Application{}).
			Where("id = ?", id).
			Update("lease_id", lease.ID).Error; err != nil {
			return fmt.Errorf("failed to attach lease: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var refreshed models.Application
	if err := s.db.Preload("Property").Preload("Property.Location").
		Preload("Tenant").Preload("Lease").
		First(&refreshed, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &refreshed, nil
}

// ListApplications returns applications visible to the given user,
// enriched with resolved coordinates and the derived next payment date.
func (s *ApplicationService) ListApplications(userID, userType string) ([]models.ApplicationResponse, error) {
	query := s.db.Model(&models.Application{}).
		Preload("Property").Preload("Property.Location").Preload("Property.Manager").
		Preload("Tenant").Preload("Lease")

	// userId and userType come as a pair; one without the other is a
	// malformed filter, not an unfiltered listing.
	switch strings.ToLower(userType) {
	case "tenant":
		if userID == "" {
			return nil, fmt.Errorf("userId is required with userType: %w", ErrValidation)
		}
		query = query.Where("applications.tenant_cognito_id = ?", userID)
	case "manager":
		if userID == "" {
			return nil, fmt.Errorf("userId is required with userType: %w", ErrValidation)
		}
		query = query.Where(
			"applications.property_id IN (SELECT id FROM properties WHERE manager_cognito_id = ?)", userID,
		)
	case "":
		if userID != "" {
			return nil, fmt.Errorf("userType is required with userId: %w", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("invalid userType %q: %w", userType, ErrValidation)
	}

	var applications []models.Application
	if err := query.Order("applications.id").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	properties := make([]models.Property, 0, len(applications))
	for _, app := range applications {
		properties = append(properties, app.Property)
	}
	propertyResponses, err := attachCoordinates(s.db, properties)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ApplicationResponse, 0, len(applications))
	for i, app := range applications {
		response := models.ApplicationResponse{
			Application: app,
			Property:    propertyResponses[i],
			Manager:     app.Property.Manager,
		}

		// The most recent lease for this tenant+property pair anchors
		// the payment schedule; no lease, no payment date.
		var lease models.Lease
		err := s.db.Where("tenant_cognito_id = ? AND property_id = ?", app.TenantCognitoID, app.PropertyID).
			Order("start_date DESC").
			First(&lease).Error
		switch {
		case err == nil:
			next := NextPaymentDate(lease.StartDate, time.Now())
			response.NextPaymentDate = &next
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to fetch lease: %w", err)
		}

		responses = append(responses, response)
	}
	return responses, nil
}

// NextPaymentDate returns the first monthly anchor of a schedule
// starting at start that falls in a calendar month after today's. A
// lease started 2023-01-15 viewed on 2023-03-10 pays next on
// 2023-04-15.
func NextPaymentDate(start, today time.Time) time.Time {
	next := start
	for next.Year() < today.Year() ||
		(next.Year() == today.Year() && next.Month() <= today.Month()) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}
