package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type ManagerHandler struct {
	managerService *services.ManagerService
}

func NewManagerHandler(managerService *services.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// GET /managers/:cognitoId
func (h *ManagerHandler) GetManager(c *gin.Context) {
	manager, err := h.managerService.GetManager(c.Param("cognitoId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, manager)
}

// POST /managers
func (h *ManagerHandler) CreateManager(c *gin.Context) {
	var req services.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	manager, err := h.managerService.CreateManager(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, manager)
}

// PUT /managers/:cognitoId
func (h *ManagerHandler) UpdateManager(c *gin.Context) {
	var req services.UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	manager, err := h.managerService.UpdateManager(c.Param("cognitoId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, manager)
}

// GET /managers/:cognitoId/properties
func (h *ManagerHandler) GetManagerProperties(c *gin.Context) {
	properties, err := h.managerService.GetManagerProperties(c.Param("cognitoId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, properties)
}
