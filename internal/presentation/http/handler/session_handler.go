package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles table session HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
	billingService *service.BillingService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, billingService *service.BillingService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		billingService: billingService,
	}
}

// Start handles starting a session on a table
// @Summary Start session
// @Description Occupy an available table and open an active session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body request.StartSessionRequest true "Session"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req request.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), &service.StartSessionInput{
		TableID:          req.TableID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		Mode:             enum.SessionMode(req.Mode),
		PlannedDuration:  req.PlannedDuration,
		PricingPackageID: req.PricingPackageID,
		StaffID:          staffOrCurrent(c, req.StaffID),
		Notes:            req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session started successfully", session)
}

// Move handles moving a session to another table
func (h *SessionHandler) Move(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.MoveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "new_table_id is required")
		return
	}

	session, err := h.sessionService.MoveTable(c.Request.Context(), id, req.NewTableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session moved successfully", session)
}

// UpdateDuration handles a manual duration override
func (h *SessionHandler) UpdateDuration(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.UpdateDuration(c.Request.Context(), id, enum.DurationType(req.DurationType), *req.ActualDuration)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session duration updated successfully", session)
}

// Recalculate handles re-billing a completed session
func (h *SessionHandler) Recalculate(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.billingService.RecalculateBilling(c.Request.Context(), id, *req.ActualDuration, enum.DurationType(req.DurationType))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Billing recalculated successfully", result)
}

// End handles ending a session and creating its payment
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.EndSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	result, err := h.billingService.EndSession(c.Request.Context(), id, staffOrCurrent(c, req.StaffID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session ended successfully", result)
}

// Cancel handles cancelling a session without billing
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.CancelSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	session, err := h.sessionService.CancelSession(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session cancelled successfully", session)
}

// Rate handles rating a completed session
func (h *SessionHandler) Rate(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.RateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "rating must be between 1 and 5")
		return
	}

	session, err := h.sessionService.RateSession(c.Request.Context(), id, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session rated successfully", session)
}

// Get handles getting a session by ID
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// ListActive handles listing running sessions
func (h *SessionHandler) ListActive(c *gin.Context) {
	sessions, err := h.sessionService.ListActiveSessions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active sessions retrieved successfully", sessions)
}

// List handles listing sessions
func (h *SessionHandler) List(c *gin.Context) {
	var filter request.SessionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SessionFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		TableID:    optionalUUID(filter.TableID),
		Search:     filter.Search,
	}
	if filter.Status != "" {
		status := enum.SessionStatus(filter.Status)
		params.Status = &status
	}
	params.StartDate, params.EndDate = dateRange(filter.StartDate, filter.EndDate)

	result, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved successfully", result)
}
