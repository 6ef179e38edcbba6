package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/config"
	"github.com/hivenest/hivenest-backend/internal/handlers"
	"github.com/hivenest/hivenest-backend/internal/middleware"
	"github.com/hivenest/hivenest-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	propertyService := services.NewPropertyService(db)
	tenantService := services.NewTenantService(db)
	managerService := services.NewManagerService(db)
	applicationService := services.NewApplicationService(db)
	leaseService := services.NewLeaseService(db)

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService, storageService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	managerHandler := handlers.NewManagerHandler(managerService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	leaseHandler := handlers.NewLeaseHandler(leaseService)

	auth := middleware.NewAuthenticator(cfg.JWT.SecretKey, middleware.ClaimRoleAuthorizer{})

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Property routes (search and detail are public)
	properties := r.Group("/properties")
	{
		properties.GET("", propertyHandler.GetProperties)
		properties.GET("/:id", propertyHandler.GetProperty)
		properties.POST("",
			auth.RequireRole(middleware.RoleManager),
			middleware.UploadRateLimit(),
			propertyHandler.CreateProperty,
		)
	}

	// Tenant routes
	tenants := r.Group("/tenants")
	tenants.Use(auth.RequireRole(middleware.RoleTenant))
	{
		tenants.POST("", tenantHandler.CreateTenant)
		tenants.GET("/:cognitoId", tenantHandler.GetTenant)
		tenants.PUT("/:cognitoId", tenantHandler.UpdateTenant)
		tenants.GET("/:cognitoId/current-residences", tenantHandler.GetCurrentResidences)
		tenants.POST("/:cognitoId/favorites/:propertyId", tenantHandler.AddFavorite)
		tenants.DELETE("/:cognitoId/favorites/:propertyId", tenantHandler.RemoveFavorite)
	}

	// Manager routes
	managers := r.Group("/managers")
	managers.Use(auth.RequireRole(middleware.RoleManager))
	{
		managers.POST("", managerHandler.CreateManager)
		managers.GET("/:cognitoId", managerHandler.GetManager)
		managers.PUT("/:cognitoId", managerHandler.UpdateManager)
		managers.GET("/:cognitoId/properties", managerHandler.GetManagerProperties)
	}

	// Application routes
	applications := r.Group("/applications")
	{
		applications.GET("", auth.RequireRole(middleware.RoleTenant, middleware.RoleManager), applicationHandler.ListApplications)
		applications.POST("", auth.RequireRole(middleware.RoleTenant), applicationHandler.CreateApplication)
		applications.PUT("/:id/status", auth.RequireRole(middleware.RoleManager), applicationHandler.UpdateApplicationStatus)
	}

	// Lease routes
	leases := r.Group("/leases")
	leases.Use(auth.RequireRole(middleware.RoleTenant, middleware.RoleManager))
	{
		leases.GET("", leaseHandler.ListLeases)
		leases.GET("/:id/payments", leaseHandler.GetLeasePayments)
	}

	return r, nil
}
