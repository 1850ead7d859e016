package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PricingHandler handles pricing package HTTP requests
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

func packageInput(req *request.PricingPackageRequest) *service.PricingPackageInput {
	return &service.PricingPackageInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      enum.DurationType(req.Category),
		HourlyRate:    req.HourlyRate,
		PerMinuteRate: req.PerMinuteRate,
		IsDefault:     req.IsDefault,
		IsActive:      req.IsActive,
		SortOrder:     req.SortOrder,
	}
}

// Create handles creating a pricing package
func (h *PricingHandler) Create(c *gin.Context) {
	var req request.PricingPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pkg, err := h.pricingService.CreatePackage(c.Request.Context(), packageInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pricing package created successfully", pkg)
}

// Update handles updating a pricing package
func (h *PricingHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.PricingPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pkg, err := h.pricingService.UpdatePackage(c.Request.Context(), id, packageInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing package updated successfully", pkg)
}

// Delete handles deleting a pricing package
func (h *PricingHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeletePackage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing package deleted successfully", nil)
}

// Get handles getting a pricing package by ID
func (h *PricingHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	pkg, err := h.pricingService.GetPackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing package retrieved successfully", pkg)
}

// List handles listing pricing packages
func (h *PricingHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	packages, err := h.pricingService.ListPackages(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing packages retrieved successfully", packages)
}
