package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	billingService *service.BillingService
	receiptService *service.ReceiptService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(billingService *service.BillingService, receiptService *service.ReceiptService) *PaymentHandler {
	return &PaymentHandler{
		billingService: billingService,
		receiptService: receiptService,
	}
}

// UpdateStatus handles moving a payment to a new status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status must be one of pending, success, failed, cancelled")
		return
	}

	detail, err := h.billingService.UpdatePaymentStatus(c.Request.Context(), id, &service.UpdatePaymentStatusInput{
		Status:         enum.PaymentStatus(req.Status),
		PaymentMethods: req.PaymentMethods,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment status updated successfully", detail)
}

// Get handles getting a payment with its orders and session
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.billingService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", detail)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	var filter request.PaymentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PaymentFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Status != "" {
		status := enum.PaymentStatus(filter.Status)
		params.Status = &status
	}
	params.StartDate, params.EndDate = dateRange(filter.StartDate, filter.EndDate)

	result, err := h.billingService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// PrintReceipt handles sending a payment receipt to the hall printer
func (h *PaymentHandler) PrintReceipt(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.receiptService.Print(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}
