package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GET /tenants/:cognitoId
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.tenantService.GetTenant(c.Param("cognitoId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, tenant)
}

// POST /tenants
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req services.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, tenant)
}

// PUT /tenants/:cognitoId
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req services.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Param("cognitoId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, tenant)
}

// GET /tenants/:cognitoId/current-residences
func (h *TenantHandler) GetCurrentResidences(c *gin.Context) {
	properties, err := h.tenantService.GetCurrentResidences(c.Param("cognitoId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, properties)
}

// POST /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandler) AddFavorite(c *gin.Context) {
	propertyID, err := strconv.Atoi(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	tenant, err := h.tenantService.AddFavorite(c.Param("cognitoId"), propertyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, tenant)
}

// DELETE /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandler) RemoveFavorite(c *gin.Context) {
	propertyID, err := strconv.Atoi(c.Param("propertyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	tenant, err := h.tenantService.RemoveFavorite(c.Param("cognitoId"), propertyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, tenant)
}
