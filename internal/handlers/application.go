package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// GET /applications?userId=&userType=
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID := c.Query("userId")
	userType := c.Query("userType")

	// Without an explicit filter the caller sees their own
	// applications, scoped by the role their token asserts.
	if userID == "" && userType == "" {
		if cognitoID, exists := utils.GetCognitoIDFromContext(c); exists {
			if role, hasRole := utils.GetUserRoleFromContext(c); hasRole {
				userID = cognitoID
				userType = role
			}
		}
	}

	applications, err := h.applicationService.ListApplications(userID, userType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, applications)
}

// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req services.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	// The applicant is the authenticated tenant unless the body names
	// one explicitly.
	if req.TenantCognitoID == "" {
		if cognitoID, exists := utils.GetCognitoIDFromContext(c); exists {
			req.TenantCognitoID = cognitoID
		}
	}

	application, err := h.applicationService.CreateApplication(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, application)
}

type updateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// PUT /applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID")
		return
	}

	var req updateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	application, err := h.applicationService.UpdateApplicationStatus(id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, application)
}
