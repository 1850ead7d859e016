package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// StaffHandler handles staff HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func staffInput(req *request.StaffRequest) *service.StaffInput {
	return &service.StaffInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
		IsActive: req.IsActive,
	}
}

// Create handles creating a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), staffInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff created successfully", staff)
}

// Update handles updating a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, staffInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff updated successfully", staff)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff deleted successfully", nil)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staffService.ListStaff(c.Request.Context(), c.Query("active_only") == "true", c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}
