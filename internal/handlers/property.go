package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hivenest/hivenest-backend/internal/models"
	"github.com/hivenest/hivenest-backend/internal/services"
	"github.com/hivenest/hivenest-backend/internal/utils"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	storageService  *services.StorageService
}

func NewPropertyHandler(propertyService *services.PropertyService, storageService *services.StorageService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		storageService:  storageService,
	}
}

// GET /properties
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	filters, err := services.ParsePropertyFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	properties, err := h.propertyService.SearchProperties(filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, properties)
}

// GET /properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.GetProperty(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, property)
}

// POST /properties (manager role, multipart form with photos)
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	managerID, exists := utils.GetCognitoIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	input := services.CreatePropertyInput{
		Name:              c.PostForm("name"),
		Description:       c.PostForm("description"),
		PropertyType:      models.PropertyType(c.PostForm("propertyType")),
		IsPetsAllowed:     c.PostForm("isPetsAllowed") == "true",
		IsParkingIncluded: c.PostForm("isParkingIncluded") == "true",
		Amenities:         splitFormList(c.PostForm("amenities")),
		Highlights:        splitFormList(c.PostForm("highlights")),
		ManagerCognitoID:  managerID,
		Address:           c.PostForm("address"),
		City:              c.PostForm("city"),
		State:             c.PostForm("state"),
		Country:           c.PostForm("country"),
		PostalCode:        c.PostForm("postalCode"),
	}

	var err error
	if input.PricePerMonth, err = parseFormFloat(c, "pricePerMonth"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.SecurityDeposit, err = parseFormFloat(c, "securityDeposit"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.ApplicationFee, err = parseFormFloat(c, "applicationFee"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.Beds, err = parseFormInt(c, "beds"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.Baths, err = parseFormFloat(c, "baths"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.SquareFeet, err = parseFormInt(c, "squareFeet"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.Latitude, err = parseFormFloat(c, "latitude"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if input.Longitude, err = parseFormFloat(c, "longitude"); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if form, err := c.MultipartForm(); err == nil {
		if photos := form.File["photos"]; len(photos) > 0 {
			urls, err := h.storageService.UploadPropertyPhotos(photos)
			if err != nil {
				utils.BadRequestResponse(c, err.Error())
				return
			}
			input.PhotoUrls = urls
		}
	}

	property, err := h.propertyService.CreateProperty(&input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, property)
}

func parseFormFloat(c *gin.Context, key string) (float64, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return value, nil
}

func parseFormInt(c *gin.Context, key string) (int, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return value, nil
}

func splitFormList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	return values
}
