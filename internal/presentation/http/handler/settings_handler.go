package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetTax retrieves the tax configuration
func (h *SettingsHandler) GetTax(c *gin.Context) {
	settings, err := h.settingsService.GetTaxSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax settings retrieved successfully", settings)
}

// UpdateTax updates the tax configuration
func (h *SettingsHandler) UpdateTax(c *gin.Context) {
	var req request.TaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateTaxSettings(c.Request.Context(), &billing.TaxSettings{
		Enabled:       req.Enabled,
		Percentage:    *req.Percentage,
		Name:          req.Name,
		ApplyToTables: req.ApplyToTables,
		ApplyToFnb:    req.ApplyToFnb,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax settings updated successfully", settings)
}

// List retrieves every stored setting
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Get retrieves a setting by key
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting retrieved successfully", setting)
}

// Set stores a JSON value under a key
func (h *SettingsHandler) Set(c *gin.Context) {
	var req request.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "value is required")
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Setting saved successfully", setting)
}
