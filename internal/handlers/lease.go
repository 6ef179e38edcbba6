package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type LeaseHandler struct {
	leaseService *services.LeaseService
}

func NewLeaseHandler(leaseService *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// GET /leases
func (h *LeaseHandler) ListLeases(c *gin.Context) {
	leases, err := h.leaseService.ListLeases()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, leases)
}

// GET /leases/:id/payments
func (h *LeaseHandler) GetLeasePayments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid lease ID")
		return
	}

	payments, err := h.leaseService.GetLeasePayments(id, time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, payments)
}
