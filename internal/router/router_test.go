package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hivenest/hivenest-backend/internal/config"
	"github.com/hivenest/hivenest-backend/internal/middleware"
	"github.com/hivenest/hivenest-backend/internal/models"
)

const testSecret = "test-secret"

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	// Every pooled connection would otherwise get its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&models.Location{},
		&models.Manager{},
		&models.Tenant{},
		&models.Property{},
		&models.Lease{},
		&models.Application{},
	))
	s.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: testSecret},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	s.router, err = Initialize(db, cfg)
	s.Require().NoError(err)
}

func (s *RouterTestSuite) token(role, subject string) string {
	claims := middleware.TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	return signed
}

func (s *RouterTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) seedProperty() models.Property {
	manager := models.Manager{CognitoID: "manager-1", Name: "Morgan Reyes", Email: "morgan@example.com"}
	s.Require().NoError(s.db.Create(&manager).Error)

	tenant := models.Tenant{CognitoID: "tenant-1", Name: "Jamie Park", Email: "jamie@example.com"}
	s.Require().NoError(s.db.Create(&tenant).Error)

	location := models.Location{Address: "12 Main St", City: "Springfield", Country: "USA"}
	s.Require().NoError(s.db.Create(&location).Error)

	property := models.Property{
		Name:             "Maple Court",
		PricePerMonth:    1500,
		SecurityDeposit:  500,
		Beds:             2,
		Baths:            1,
		SquareFeet:       850,
		PropertyType:     models.PropertyTypeApartment,
		LocationID:       location.ID,
		ManagerCognitoID: "manager-1",
	}
	s.Require().NoError(s.db.Create(&property).Error)
	return property
}

func (s *RouterTestSuite) TestHealthCheck() {
	w := s.request("GET", "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestSearchRejectsMalformedFilter() {
	w := s.request("GET", "/properties?priceMin=cheap", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestGetPropertyNotFound() {
	w := s.request("GET", "/properties/404", "", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Contains(response, "message")
}

func (s *RouterTestSuite) TestCreateApplicationRequiresAuth() {
	w := s.request("POST", "/applications", "", map[string]interface{}{})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestCreateApplicationRejectsManagerRole() {
	w := s.request("POST", "/applications", s.token("manager", "manager-1"), map[string]interface{}{})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestCreateApplication() {
	property := s.seedProperty()

	w := s.request("POST", "/applications", s.token("tenant", "tenant-1"), map[string]interface{}{
		"propertyId": property.ID,
		"name":       "Jamie Park",
		"email":      "jamie@example.com",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var application models.Application
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &application))

	s.Equal(models.ApplicationStatusPending, application.Status)
	s.Equal("tenant-1", application.TenantCognitoID)

	// The tentative lease carries the property's pricing over a one-year
	// term.
	s.Require().NotNil(application.Lease)
	s.Equal(1500.0, application.Lease.Rent)
	s.Equal(500.0, application.Lease.Deposit)
	s.Equal(application.Lease.StartDate.AddDate(1, 0, 0), application.Lease.EndDate)
}

func (s *RouterTestSuite) TestApplicationDecisionFlow() {
	property := s.seedProperty()

	w := s.request("POST", "/applications", s.token("tenant", "tenant-1"), map[string]interface{}{
		"propertyId": property.ID,
		"name":       "Jamie Park",
		"email":      "jamie@example.com",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created models.Application
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	// A tenant may not decide an application.
	w = s.request("PUT", "/applications/1/status", s.token("tenant", "tenant-1"),
		map[string]interface{}{"status": "Approved"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request("PUT", "/applications/1/status", s.token("manager", "manager-1"),
		map[string]interface{}{"status": "Approved"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var approved models.Application
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &approved))
	s.Equal(models.ApplicationStatusApproved, approved.Status)
	s.Require().NotNil(approved.LeaseID)
	s.NotEqual(*created.LeaseID, *approved.LeaseID)

	// The decision is terminal; a second attempt conflicts.
	w = s.request("PUT", "/applications/1/status", s.token("manager", "manager-1"),
		map[string]interface{}{"status": "Denied"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestTenantProfileFlow() {
	w := s.request("POST", "/tenants", s.token("tenant", "tenant-2"), map[string]interface{}{
		"cognitoId": "tenant-2",
		"name":      "Alex Kim",
		"email":     "alex@example.com",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request("GET", "/tenants/tenant-2", s.token("tenant", "tenant-2"), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tenant models.Tenant
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tenant))
	s.Equal("Alex Kim", tenant.Name)

	w = s.request("PUT", "/tenants/tenant-2", s.token("tenant", "tenant-2"),
		map[string]interface{}{"phoneNumber": "555-0199"})
	s.Require().Equal(http.StatusOK, w.Code)

	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tenant))
	s.Equal("555-0199", tenant.PhoneNumber)
}

func (s *RouterTestSuite) TestCreateTenantValidationErrors() {
	w := s.request("POST", "/tenants", s.token("tenant", "tenant-2"), map[string]interface{}{
		"cognitoId": "tenant-2",
		"name":      "Alex Kim",
		"email":     "not-an-email",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	// Field-level validation failures carry the structured shape.
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("Validation failed", response["message"])
	s.Require().Contains(response, "errors")

	errors, ok := response["errors"].([]interface{})
	s.Require().True(ok)
	s.Require().NotEmpty(errors)
	first, ok := errors[0].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("email", first["field"])
}

func (s *RouterTestSuite) TestListApplicationsDefaultsToCaller() {
	property := s.seedProperty()

	// Someone else's application must not leak into the caller's
	// default-scoped listing.
	application := models.Application{
		ApplicationDate: time.Now(),
		Status:          models.ApplicationStatusPending,
		PropertyID:      property.ID,
		TenantCognitoID: "tenant-1",
		Name:            "Jamie Park",
		Email:           "jamie@example.com",
	}
	s.Require().NoError(s.db.Create(&application).Error)

	w := s.request("GET", "/applications", s.token("tenant", "tenant-9"), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var responses []json.RawMessage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responses))
	s.Empty(responses)
}

func (s *RouterTestSuite) TestManagerRoutesRejectTenantRole() {
	w := s.request("GET", "/managers/manager-1", s.token("tenant", "tenant-1"), nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
