package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// TableHandler handles billiard table HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

func tableInput(req *request.TableRequest) *service.TableInput {
	return &service.TableInput{
		Name:             req.Name,
		Description:      req.Description,
		HourlyRate:       *req.HourlyRate,
		PerMinuteRate:    req.PerMinuteRate,
		PricingPackageID: req.PricingPackageID,
	}
}

// Create handles creating a table
func (h *TableHandler) Create(c *gin.Context) {
	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), tableInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created successfully", table)
}

// Update handles updating a table
func (h *TableHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), id, tableInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}

// Get handles getting a table with its active session
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved successfully", detail)
}

// List handles listing tables
func (h *TableHandler) List(c *gin.Context) {
	var filter request.TableFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TableFilterParams{
		ActiveOnly: filter.ActiveOnly,
		Search:     filter.Search,
	}
	if filter.Status != "" {
		status := enum.TableStatus(filter.Status)
		params.Status = &status
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved successfully", tables)
}

// UpdateStatus handles a manual status change (maintenance, reserved, available)
func (h *TableHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.TableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status must be one of available, maintenance, reserved")
		return
	}

	table, err := h.tableService.UpdateStatus(c.Request.Context(), id, enum.TableStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table status updated successfully", table)
}

// SetActive handles activating or deactivating a table
func (h *TableHandler) SetActive(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.TableActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_active is required")
		return
	}

	table, err := h.tableService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}
