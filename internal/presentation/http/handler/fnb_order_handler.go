package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// FnbOrderHandler handles F&B order HTTP requests
type FnbOrderHandler struct {
	orderService *service.FnbOrderService
}

// NewFnbOrderHandler creates a new F&B order handler
func NewFnbOrderHandler(orderService *service.FnbOrderService) *FnbOrderHandler {
	return &FnbOrderHandler{orderService: orderService}
}

func orderLines(items []request.OrderItemRequest) []service.OrderLineInput {
	lines := make([]service.OrderLineInput, len(items))
	for i, item := range items {
		lines[i] = service.OrderLineInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		}
	}
	return lines
}

// Create handles creating an order, as a draft or straight onto a table
func (h *FnbOrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		Items:         orderLines(req.Items),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TableID:       req.TableID,
		StaffID:       staffOrCurrent(c, req.StaffID),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// UpdateDraft handles replacing the content of a draft order
func (h *FnbOrderHandler) UpdateDraft(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateDraft(c.Request.Context(), id, &service.UpdateDraftInput{
		Items:         orderLines(req.Items),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft order updated successfully", order)
}

// CancelDraft handles cancelling a draft order
func (h *FnbOrderHandler) CancelDraft(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft order cancelled successfully", order)
}

// AssignTable handles attaching a draft order to a table's active session
func (h *FnbOrderHandler) AssignTable(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.AssignTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "table_id is required")
		return
	}

	order, err := h.orderService.AssignToTable(c.Request.Context(), id, req.TableID, staffOrCurrent(c, req.StaffID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order assigned to table successfully", order)
}

// AssignTransaction handles attaching a draft order to a pending payment
func (h *FnbOrderHandler) AssignTransaction(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.AssignTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "transaction_id is required")
		return
	}

	order, err := h.orderService.AssignToPendingTransaction(c.Request.Context(), id, req.TransactionID, staffOrCurrent(c, req.StaffID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order assigned to transaction successfully", order)
}

// Checkout handles merging draft orders into one payment
func (h *FnbOrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.orderService.CheckoutDrafts(c.Request.Context(), &service.CheckoutDraftsInput{
		OrderIDs:       req.OrderIDs,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		StaffID:        staffOrCurrent(c, req.StaffID),
		PaymentMethods: req.PaymentMethods,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft orders checked out successfully", detail)
}

// ListDrafts handles listing draft orders
func (h *FnbOrderHandler) ListDrafts(c *gin.Context) {
	var filter request.DraftFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, err := h.orderService.ListDrafts(c.Request.Context(), filter.Search, filter.CustomerPhone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft orders retrieved successfully", orders)
}

// Get handles getting an order by ID
func (h *FnbOrderHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *FnbOrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.FnbOrderFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		TableID:    optionalUUID(filter.TableID),
		SessionID:  optionalUUID(filter.SessionID),
		PaymentID:  optionalUUID(filter.PaymentID),
	}
	if filter.Status != "" {
		status := enum.FnbOrderStatus(filter.Status)
		params.Status = &status
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}
