package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

// handleServiceError maps service sentinels onto the HTTP error
// taxonomy. Validation failures that carry field errors keep the
// per-field shape; anything unrecognized is an unexpected failure:
// logged, never leaked to the client.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrAlreadyDecided):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(fieldErrors))
			return
		}
		utils.BadRequestResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Unexpected service error")
		utils.InternalErrorResponse(c, "")
	}
}
